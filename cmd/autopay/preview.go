package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"jhpcic/internal/service/buffer"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/wizard"
)

func (a *app) previewCmd() *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "preview <link>",
		Short: "模拟客户扫码：经过渡页跳转后加载记录并显示核对页",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil {
				return errors.Wrapf(domain.ErrBadRequest, "invalid link: %v", err)
			}
			out := cmd.OutOrStdout()

			arrived := make(chan string, 1)
			tr := buffer.Start(u.Query(), delay, func(target string) { arrived <- target })
			if tr == nil {
				fmt.Fprintln(out, "链接中没有 id 或 data 参数，停留在过渡页")
				return nil
			}
			defer tr.Stop()
			fmt.Fprintln(out, "正在安全跳转...")

			var target string
			select {
			case target = <-arrived:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			next, err := url.Parse(target)
			if err != nil {
				return err
			}

			wz, err := wizard.Load(cmd.Context(), next.Query(), a.storeClient())
			if err != nil {
				return errors.New(wizard.Message(err))
			}
			view := wz.View()
			fmt.Fprintf(out, "步骤: %s  预留手机号: %s\n", view.Step, view.MaskedMobile)
			printRecord(out, wz.Data())
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", buffer.Delay, "过渡页停留时长")
	return cmd
}
