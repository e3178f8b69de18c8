package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jhpcic/internal/service/console"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "联系人与车辆档案",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "列出全部档案",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := console.LoadWorkspace(a.workspace)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "联系人:")
				for _, p := range c.PersonProfiles {
					fmt.Fprintf(out, "  %s  %s\n", p.ID, p.Address)
				}
				fmt.Fprintln(out, "车辆:")
				for _, v := range c.VehicleProfiles {
					fmt.Fprintf(out, "  %s  %s\n", v.ID, v.Brand)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "save-person <proposer|insured>",
			Short: "保存联系人，姓名与手机号相同时覆盖",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(func(c *console.Console) error {
					id, err := c.SavePersonProfile(console.Section(args[0]))
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "已保存联系人：%s\n", id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "load-person <id> <proposer|insured>",
			Short: "把联系人载入投保人或被保险人",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(func(c *console.Console) error {
					return c.LoadPersonProfile(args[0], console.Section(args[1]))
				})
			},
		},
		&cobra.Command{
			Use:   "save-vehicle",
			Short: "保存当前车辆，车牌号相同时覆盖",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(func(c *console.Console) error {
					id, err := c.SaveVehicleProfile()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "已保存车辆：%s\n", id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "load-vehicle <plate>",
			Short: "载入车辆档案",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(func(c *console.Console) error {
					return c.LoadVehicleProfile(args[0])
				})
			},
		},
	)
	return cmd
}
