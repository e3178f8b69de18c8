// cmd/autopay/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"jhpcic/internal/pkg/bootstrap"
	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/pkg/tracing"
	"jhpcic/internal/service/console"
)

const serviceName = "autopay"

// app 在子命令之间共享配置与工作区路径
type app struct {
	workspace string
	cfg       *bootstrap.Config
	tp        *sdktrace.TracerProvider
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "autopay",
		Short:         "业务员录入控制台：编辑保单、保存档案、生成扫码链接",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Init(serviceName, cfg.App.LogLevel, true)
			a.tp, err = tracing.InitTracerProvider(serviceName, cfg.Infra.Jaeger.Endpoint)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.tp == nil {
				return nil
			}
			return a.tp.Shutdown(context.Background())
		},
	}
	root.PersistentFlags().StringVarP(&a.workspace, "workspace", "w", defaultWorkspace(), "工作区文件路径")

	root.AddCommand(
		a.initCmd(),
		a.showCmd(),
		a.tabCmd(),
		a.setCmd(),
		a.coverageCmd(),
		a.periodCmd(),
		a.paidCmd(),
		a.profileCmd(),
		a.scanCmd(),
		a.generateCmd(),
		a.historyCmd(),
		a.previewCmd(),
	)
	return root
}

func defaultWorkspace() string {
	if v := os.Getenv("AUTOPAY_WORKSPACE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "autopay.yaml"
	}
	return filepath.Join(home, ".jhpcic", "autopay.yaml")
}

// edit 读取工作区、执行修改并写回。fn 出错时不写回。
func (a *app) edit(fn func(c *console.Console) error) error {
	c, err := console.LoadWorkspace(a.workspace)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return console.SaveWorkspace(a.workspace, c)
}
