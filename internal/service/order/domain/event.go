package domain

import "time"

// OrderLinkIssued 是短链记录写入成功后发布的事件
type OrderLinkIssued struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Status    Status    `json:"status"`
	Summary   string    `json:"summary"`
	ExpiresAt time.Time `json:"expiresAt"`
	IssuedAt  time.Time `json:"issuedAt"`
}
