package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jhpcic/internal/service/console"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "列出生成过的记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := console.LoadWorkspace(a.workspace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(c.History) == 0 {
				fmt.Fprintln(out, "暂无历史记录")
				return nil
			}
			for _, rec := range c.History {
				fmt.Fprintf(out, "%s  %s  %s  [%s]\n", rec.ID, rec.Timestamp, rec.Summary, rec.Data.Status)
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "load <id>",
		Short: "重新载入历史记录，生成新订单号并重置为待支付",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(c *console.Console) error {
				if err := c.LoadHistory(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "已载入，新订单 %s\n", c.Data.OrderID)
				return nil
			})
		},
	})
	return cmd
}
