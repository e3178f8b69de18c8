package infrastructure

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"jhpcic/internal/pkg/mq"
	"jhpcic/internal/service/order/domain"
)

// LinkIssuedProducerAdapter 将短链签发事件写入 Kafka，实现 port.OrderEventPublisher
type LinkIssuedProducerAdapter struct {
	writer *kafka.Writer
}

func NewLinkIssuedProducerAdapter(writer *kafka.Writer) *LinkIssuedProducerAdapter {
	return &LinkIssuedProducerAdapter{writer: writer}
}

func (p *LinkIssuedProducerAdapter) PublishLinkIssued(ctx context.Context, event *domain.OrderLinkIssued) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to marshal link issued event")
		return err
	}

	if err := mq.ProduceMessage(ctx, p.writer, []byte(event.ID), eventBytes); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("order.id", event.ID).Msg("Failed to produce message to Kafka")
		return err
	}
	return nil
}

// Close 关闭底层的 Kafka writer
func (p *LinkIssuedProducerAdapter) Close() error {
	return p.writer.Close()
}

// NoopPublisher 在未配置 Kafka 时使用
type NoopPublisher struct{}

func (NoopPublisher) PublishLinkIssued(context.Context, *domain.OrderLinkIssued) error { return nil }
