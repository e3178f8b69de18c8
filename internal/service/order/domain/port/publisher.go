package port

import (
	"context"

	"jhpcic/internal/service/order/domain"
)

// OrderEventPublisher 在短链记录写入成功后发布审计事件
type OrderEventPublisher interface {
	PublishLinkIssued(ctx context.Context, event *domain.OrderLinkIssued) error
}
