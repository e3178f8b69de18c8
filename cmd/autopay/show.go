package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jhpcic/internal/service/console"
	"jhpcic/internal/service/order/domain"
)

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示当前记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := console.LoadWorkspace(a.workspace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "页签: %s    生成为已支付: %v\n", c.ActiveTab.Label(), c.PaidMode)
			printRecord(out, c.Data)
			if c.GeneratedLink != "" {
				fmt.Fprintf(out, "\n上次生成的链接: %s\n", c.GeneratedLink)
			}
			return nil
		},
	}
}

func printPerson(out io.Writer, title string, p domain.Person) {
	fmt.Fprintf(out, "%s\n  姓名: %s\n  证件: %s %s\n  手机号: %s\n  地址: %s\n", title, p.Name, p.IDType, p.IDCard, p.Mobile, p.Address)
}

// printRecord 以核对页的格式输出记录
func printRecord(out io.Writer, d *domain.InsuranceData) {
	fmt.Fprintf(out, "订单号: %s  状态: %s\n", d.OrderID, d.Status)
	printPerson(out, "投保人", d.Proposer)
	printPerson(out, "被保险人", d.Insured)

	v := d.Vehicle
	fmt.Fprintf(out, "车辆信息\n  车牌号: %s\n  车架号: %s\n  发动机号: %s\n  品牌型号: %s\n  所有人: %s\n  初次登记: %s\n  整备质量: %s\n  核定载质量: %s\n",
		v.Plate, v.VIN, v.EngineNo, v.Brand, v.VehicleOwner, v.RegisterDate, v.CurbWeight, v.ApprovedLoad)

	fmt.Fprintf(out, "投保方案\n  地区: %s\n  期间: %s\n", d.Project.Region, d.Project.Period)
	for i, item := range d.Project.Coverages {
		fmt.Fprintf(out, "  #%d %s | 保额 %s | 免赔 %s | 保费 %s\n", i, item.Name, item.Amount, item.Deductible, item.Premium)
	}
	fmt.Fprintf(out, "  %s\n  总保费: ¥ %s\n", strings.Repeat("-", 30), d.Project.Premium)
}
