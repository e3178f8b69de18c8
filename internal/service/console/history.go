package console

import (
	"strconv"

	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// HistoryTimeLayout 历史记录的展示时间格式
const HistoryTimeLayout = "2006/1/2 15:04:05"

// HistoryRecord 每次生成链接时保存的快照
type HistoryRecord struct {
	ID        string                `yaml:"id" json:"id"`
	Timestamp string                `yaml:"timestamp" json:"timestamp"`
	Summary   string                `yaml:"summary" json:"summary"`
	Data      *domain.InsuranceData `yaml:"data" json:"data"`
}

// snapshot 把记录的深拷贝插入历史列表头部
func (c *Console) snapshot(payload *domain.InsuranceData) HistoryRecord {
	now := c.now()
	rec := HistoryRecord{
		ID:        c.nextHistoryID(now.UnixMilli()),
		Timestamp: now.Format(HistoryTimeLayout),
		Summary:   payload.Summary(),
		Data:      payload.Clone(),
	}
	c.History = append([]HistoryRecord{rec}, c.History...)
	return rec
}

// nextHistoryID 以毫秒时间戳为 ID，同一毫秒内重复时追加 -2、-3 ...
func (c *Console) nextHistoryID(ms int64) string {
	base := strconv.FormatInt(ms, 10)
	id := base
	for n := 2; c.hasHistory(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func (c *Console) hasHistory(id string) bool {
	for _, rec := range c.History {
		if rec.ID == id {
			return true
		}
	}
	return false
}

// LoadHistory 重新载入一条历史记录，生成新的订单号并重置为待支付
func (c *Console) LoadHistory(id string) error {
	for _, rec := range c.History {
		if rec.ID != id || rec.Data == nil {
			continue
		}
		fresh := rec.Data.Clone()
		fresh.OrderID = domain.NewOrderID()
		fresh.Status = domain.StatusPending
		c.Data = fresh
		c.GeneratedLink = ""
		c.ActiveTab = TabProposer
		return nil
	}
	return errors.Wrapf(domain.ErrNotFound, "history record %q", id)
}
