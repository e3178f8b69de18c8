// internal/service/order/domain/insurance.go
package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Status 定义了保单记录的支付状态
type Status string

const (
	StatusPending Status = "pending" // 待支付
	StatusPaid    Status = "paid"    // 已支付
)

// Valid 判断状态是否为已知取值
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Person 投保人 / 被保险人
type Person struct {
	Name    string `json:"name" yaml:"name"`
	IDType  string `json:"idType" yaml:"idType"` // 证件类型
	IDCard  string `json:"idCard" yaml:"idCard"` // 证件号
	Mobile  string `json:"mobile" yaml:"mobile"`
	Address string `json:"address" yaml:"address"`
}

// Vehicle 车辆信息
type Vehicle struct {
	Plate        string `json:"plate" yaml:"plate"`
	VIN          string `json:"vin" yaml:"vin"`
	EngineNo     string `json:"engineNo" yaml:"engineNo"`
	Brand        string `json:"brand" yaml:"brand"`
	VehicleOwner string `json:"vehicleOwner" yaml:"vehicleOwner"` // 机动车辆所有人
	RegisterDate string `json:"registerDate" yaml:"registerDate"` // 初次登记日期
	CurbWeight   string `json:"curbWeight" yaml:"curbWeight"`     // 整备质量
	ApprovedLoad string `json:"approvedLoad" yaml:"approvedLoad"` // 核定载质量
}

// CoverageItem 是投保方案中的一个险种
type CoverageItem struct {
	Name       string `json:"name" yaml:"name"`             // 投保险种
	Amount     string `json:"amount" yaml:"amount"`         // 保险金额/责任限额
	Deductible string `json:"deductible" yaml:"deductible"` // 绝对免赔率
	Premium    string `json:"premium" yaml:"premium"`       // 保险费
}

// Project 投保方案
type Project struct {
	Region    string         `json:"region" yaml:"region"`
	Period    string         `json:"period" yaml:"period"`   // "开始 至 结束"
	Premium   string         `json:"premium" yaml:"premium"` // 由 Coverages 汇总得出
	Coverages []CoverageItem `json:"coverages" yaml:"coverages"`
}

// Payment 支付页面引用
type Payment struct {
	AlipayURL string `json:"alipayUrl" yaml:"alipayUrl"`
	WechatURL string `json:"wechatUrl" yaml:"wechatUrl"`
}

// InsuranceData 是整个流程中流转的保单记录
type InsuranceData struct {
	OrderID   string  `json:"orderId" yaml:"orderId"`
	Status    Status  `json:"status" yaml:"status"`
	Proposer  Person  `json:"proposer" yaml:"proposer"`
	Insured   Person  `json:"insured" yaml:"insured"`
	Vehicle   Vehicle `json:"vehicle" yaml:"vehicle"`
	Project   Project `json:"project" yaml:"project"`
	Payment   Payment `json:"payment" yaml:"payment"`
	Signature string  `json:"signature,omitempty" yaml:"signature,omitempty"` // Base64 图片，当前流程不回写
}

// NewOrderID 生成一个展示用的订单号，不作为主键使用
func NewOrderID() string {
	return fmt.Sprintf("JH-%d", rand.IntN(100000))
}

// Clone 返回记录的深拷贝
func (d *InsuranceData) Clone() *InsuranceData {
	cp := *d
	if d.Project.Coverages != nil {
		cp.Project.Coverages = make([]CoverageItem, len(d.Project.Coverages))
		copy(cp.Project.Coverages, d.Project.Coverages)
	}
	return &cp
}

// IsPaid 判断记录是否已支付
func (d *InsuranceData) IsPaid() bool {
	return d.Status == StatusPaid
}

// MarkAsPaid 将记录置为已支付。状态只能从 pending 流转到 paid。
func (d *InsuranceData) MarkAsPaid() error {
	if d.Status != StatusPending {
		return errors.Wrapf(ErrInvalidTransition, "only pending records can be paid, current status is %q", d.Status)
	}
	d.Status = StatusPaid
	return nil
}

// Validate 检查记录结构是否可用
func (d *InsuranceData) Validate() error {
	if !d.Status.Valid() {
		return errors.Wrapf(ErrParseFailure, "unknown status %q", d.Status)
	}
	return nil
}

// RecomputePremium 按险种列表重新汇总总保费。对同一列表重复调用结果不变。
func (d *InsuranceData) RecomputePremium() {
	d.Project.Premium = TotalPremium(d.Project.Coverages)
}

// Summary 是历史记录中展示的摘要
func (d *InsuranceData) Summary() string {
	return d.Proposer.Name + " - " + d.Vehicle.Plate
}

// TotalPremium 计算险种保费之和，保留两位小数。
// 千分位逗号会被忽略，只取开头的十进制数字部分，没有数字的条目按 0 计。
func TotalPremium(coverages []CoverageItem) string {
	var total float64
	for _, item := range coverages {
		total += ParseAmount(item.Premium)
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// amountPrefix 匹配开头的十进制数，"4500.00元" 取 4500.00
var amountPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount 解析带千分位的金额字符串，失败返回 0。
// 十六进制、下划线分隔与 Inf/NaN 都不是十进制金额。
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	num := amountPrefix.FindString(s)
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v > maxAmount || v < -maxAmount {
		return 0
	}
	return v
}

// 超出该范围的值（包括 Inf）视为非法输入
const maxAmount = 1e15
