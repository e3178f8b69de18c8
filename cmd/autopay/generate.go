package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"jhpcic/internal/pkg/httpclient"
	"jhpcic/internal/service/console"
	"jhpcic/internal/service/order/domain/port"
	"jhpcic/internal/service/order/infrastructure/adapter"
)

func (a *app) storeClient() port.OrderStoreClient {
	return adapter.NewOrderStoreHTTPAdapter(httpclient.NewClient(otel.Tracer(serviceName)), a.cfg.App.StoreBaseURL)
}

func (a *app) generateCmd() *cobra.Command {
	var (
		qrPath  string
		offline bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成客户扫码链接：优先保存到短链存储，失败时把记录编码进链接",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var store port.OrderStoreClient
			if !offline {
				store = a.storeClient()
			}
			return a.edit(func(c *console.Console) error {
				link, err := c.GenerateLink(cmd.Context(), store, console.LinkConfig{BaseURL: a.cfg.App.PublicBaseURL})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, link.URL)
				if link.Via == console.ViaToken {
					fmt.Fprintln(out, "(短链存储不可用，已使用离线链接)")
				}
				if qrPath != "" {
					if link.QR == nil {
						return errors.New("二维码生成失败")
					}
					if err := os.WriteFile(qrPath, link.QR, 0o644); err != nil {
						return errors.Wrapf(err, "write qr %s", qrPath)
					}
					fmt.Fprintf(out, "二维码已保存到 %s\n", qrPath)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "二维码 PNG 输出路径")
	cmd.Flags().BoolVar(&offline, "offline", false, "不访问短链存储，直接生成离线链接")
	return cmd
}
