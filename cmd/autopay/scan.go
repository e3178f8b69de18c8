package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"jhpcic/internal/service/console"
	"jhpcic/internal/service/order/domain/port"
	"jhpcic/internal/service/order/infrastructure/adapter"
)

const scanTimeout = 60 * time.Second

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "AI 识别证件图片，合并到当前页签（投保人、被保险人或车辆）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataURL, err := readDataURL(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
			defer cancel()

			extractor, err := a.extractor(ctx)
			if err != nil {
				return err
			}
			return a.edit(func(c *console.Console) error {
				fmt.Fprintln(cmd.OutOrStdout(), "AI 正在识别...")
				if err := c.Scan(ctx, extractor, dataURL); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "识别完成：%s\n", c.ActiveTab.Label())
				return nil
			})
		},
	}
}

func (a *app) extractor(ctx context.Context) (port.DocumentExtractor, error) {
	return adapter.NewGenAIExtractor(ctx, a.cfg.GenAI.APIKey, a.cfg.GenAI.Model, otel.Tracer(serviceName))
}

// readDataURL 读取图片文件并转换为 data URL
func readDataURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read image %s", path)
	}
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
