package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"jhpcic/internal/service/console"
	"jhpcic/internal/service/order/domain"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "用默认模板重置当前记录，档案与历史保留",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(c *console.Console) error {
				c.Data = domain.NewTemplate()
				c.GeneratedLink = ""
				c.ActiveTab = console.TabProposer
				fmt.Fprintf(cmd.OutOrStdout(), "新订单 %s\n", c.Data.OrderID)
				return nil
			})
		},
	}
}

func (a *app) tabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tab <proposer|insured|vehicle|project|generate|history>",
		Short: "切换页签，扫描按当前页签识别",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(c *console.Console) error {
				if err := c.SelectTab(console.Tab(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.ActiveTab.Label())
				return nil
			})
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <section.field> <value>",
		Short: "修改字段，例如 set proposer.mobile 13800138000",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, field, ok := strings.Cut(args[0], ".")
			if !ok {
				return errors.Wrapf(domain.ErrValidation, "expected section.field, got %q", args[0])
			}
			return a.edit(func(c *console.Console) error {
				return c.SetField(console.Section(section), field, args[1])
			})
		},
	}
}

func (a *app) coverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "编辑投保险种，总保费自动汇总",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "追加一个空险种",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(func(c *console.Console) error {
					c.AddCoverage()
					fmt.Fprintf(cmd.OutOrStdout(), "险种 #%d 已添加\n", len(c.Data.Project.Coverages)-1)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <index> <name|amount|deductible|premium> <value>",
			Short: "修改险种字段",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrapf(domain.ErrValidation, "invalid index %q", args[0])
				}
				return a.edit(func(c *console.Console) error {
					if err := c.SetCoverage(index, args[1], args[2]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "总保费 %s\n", c.Data.Project.Premium)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rm <index>",
			Short: "删除险种",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrapf(domain.ErrValidation, "invalid index %q", args[0])
				}
				return a.edit(func(c *console.Console) error {
					if err := c.RemoveCoverage(index); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "总保费 %s\n", c.Data.Project.Premium)
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) periodCmd() *cobra.Command {
	var end string
	cmd := &cobra.Command{
		Use:   "period [start]",
		Short: "设置保险期间，只给起保日期时终止日期为一年后减一天",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(c *console.Console) error {
				if len(args) == 1 {
					if err := c.SetStartDate(args[0]); err != nil {
						return err
					}
				}
				if end != "" {
					c.SetEndDate(end)
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.Data.Project.Period)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "单独修改终止日期 (YYYY-MM-DD)")
	return cmd
}

func (a *app) paidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paid <on|off>",
		Short: "生成链接时是否标记为已支付",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var paid bool
			switch args[0] {
			case "on", "true", "1":
				paid = true
			case "off", "false", "0":
			default:
				return errors.Wrapf(domain.ErrValidation, "expected on or off, got %q", args[0])
			}
			return a.edit(func(c *console.Console) error {
				c.SetPaidMode(paid)
				return nil
			})
		},
	}
}
