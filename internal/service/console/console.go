// Package console 是业务员录入控制台的状态与编排：六个页签的表单、联系人与车辆档案、
// 历史记录，以及优先走短链存储、失败时回退到令牌的链接生成。
package console

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// Tab 控制台页签
type Tab string

const (
	TabProposer Tab = "proposer"
	TabInsured  Tab = "insured"
	TabVehicle  Tab = "vehicle"
	TabProject  Tab = "project"
	TabGenerate Tab = "generate"
	TabHistory  Tab = "history"
)

// Tabs 按展示顺序列出全部页签
var Tabs = []Tab{TabProposer, TabInsured, TabVehicle, TabProject, TabGenerate, TabHistory}

// Label 返回页签标题
func (t Tab) Label() string {
	switch t {
	case TabProposer:
		return "1. 投保人"
	case TabInsured:
		return "2. 被保险人"
	case TabVehicle:
		return "3. 车辆信息"
	case TabProject:
		return "4. 投保方案"
	case TabGenerate:
		return "5. 生成链接"
	case TabHistory:
		return "6. 历史"
	}
	return string(t)
}

// Valid 判断是否为已知页签
func (t Tab) Valid() bool {
	for _, v := range Tabs {
		if v == t {
			return true
		}
	}
	return false
}

// Console 持有一条正在编辑的记录以及辅助列表。
// 除 Scan 的重入保护外，Console 不是并发安全的。
type Console struct {
	Data            *domain.InsuranceData `yaml:"data"`
	ActiveTab       Tab                   `yaml:"activeTab"`
	PaidMode        bool                  `yaml:"paidMode"`
	GeneratedLink   string                `yaml:"generatedLink,omitempty"`
	History         []HistoryRecord       `yaml:"history"`
	PersonProfiles  []PersonProfile       `yaml:"personProfiles"`
	VehicleProfiles []VehicleProfile      `yaml:"vehicleProfiles"`

	scanning atomic.Bool
	clock    func() time.Time
}

// New 以默认模板创建控制台
func New() *Console {
	return &Console{Data: domain.NewTemplate(), ActiveTab: TabProposer}
}

// SetClock 替换时间来源，测试中使用
func (c *Console) SetClock(now func() time.Time) { c.clock = now }

func (c *Console) now() time.Time {
	if c.clock != nil {
		return c.clock()
	}
	return time.Now()
}

// SelectTab 切换页签
func (c *Console) SelectTab(tab Tab) error {
	if !tab.Valid() {
		return errors.Wrapf(domain.ErrValidation, "unknown tab %q", tab)
	}
	c.ActiveTab = tab
	return nil
}

// SetPaidMode 设置生成链接时是否标记为已支付
func (c *Console) SetPaidMode(paid bool) { c.PaidMode = paid }

// Scanning 是否有识别请求在进行中
func (c *Console) Scanning() bool { return c.scanning.Load() }
