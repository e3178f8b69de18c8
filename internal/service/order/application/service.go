// internal/service/order/application/service.go
package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
)

// OrderStoreService 负责短链记录的保存与读取
type OrderStoreService struct {
	bindings  port.KeyValueBindings
	config    StoreConfig
	tracer    trace.Tracer
	publisher port.OrderEventPublisher

	newID func() string
	now   func() time.Time
}

// Option 用于覆盖默认的依赖，主要在测试中使用
type Option func(*OrderStoreService)

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(s *OrderStoreService) { s.now = now }
}

// WithIDGenerator 替换标识符生成器
func WithIDGenerator(newID func() string) Option {
	return func(s *OrderStoreService) { s.newID = newID }
}

func NewOrderStoreService(bindings port.KeyValueBindings, config StoreConfig, tracer trace.Tracer, publisher port.OrderEventPublisher, opts ...Option) *OrderStoreService {
	if config.TTL <= 0 {
		config.TTL = domain.DefaultStoreTTL
	}
	s := &OrderStoreService{
		bindings:  bindings,
		config:    config,
		tracer:    tracer,
		publisher: publisher,
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save 生成新标识符，包装时间戳后写入 KV，并返回标识符
func (s *OrderStoreService) Save(ctx context.Context, data *domain.InsuranceData) (*SaveOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.SaveOrder")
	defer span.End()

	if data == nil {
		return nil, errors.Wrap(domain.ErrParseFailure, "request body is empty")
	}
	if err := data.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	kv, binding, err := s.bindings.Resolve(s.config.Binding, s.config.FallbackBinding)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store binding missing")
		logger.Ctx(ctx).Error().Err(err).Msg("Order store is not configured")
		return nil, err
	}

	now := s.now()
	record := domain.StoredOrder{
		ID:        s.newID(),
		Timestamp: now.UnixMilli(),
		Data:      *data,
	}
	span.SetAttributes(
		attribute.String("order.id", record.ID),
		attribute.String("order.status", string(data.Status)),
		attribute.String("store.binding", binding),
	)

	raw, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "marshal stored order")
	}

	if err := kv.Put(ctx, domain.StoreKey(record.ID), raw, s.config.TTL); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store write failed")
		logger.Ctx(ctx).Error().Err(err).Str("order.id", record.ID).Msg("Failed to write order")
		return nil, err
	}
	span.AddEvent("Order written to store.")

	event := &domain.OrderLinkIssued{
		ID:        record.ID,
		OrderID:   data.OrderID,
		Status:    data.Status,
		Summary:   data.Summary(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TTL),
	}
	if err := s.publisher.PublishLinkIssued(ctx, event); err != nil {
		// 事件只用于审计，发送失败不影响短链可用
		logger.Ctx(ctx).Warn().Err(err).Str("order.id", record.ID).Msg("Failed to publish link issued event")
	}

	logger.Ctx(ctx).Info().Str("order.id", record.ID).Str("binding", binding).Msg("Order saved")
	return &SaveOrderResponse{Success: true, ID: record.ID}, nil
}

// Get 按标识符读取记录，只返回其中的保单数据
func (s *OrderStoreService) Get(ctx context.Context, id string) (*domain.InsuranceData, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetOrder")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.Wrap(domain.ErrBadRequest, "Missing ID")
	}
	span.SetAttributes(attribute.String("order.id", id))

	kv, _, err := s.bindings.Resolve(s.config.Binding, s.config.FallbackBinding)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	raw, err := kv.Get(ctx, domain.StoreKey(id))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "store read failed")
		}
		return nil, err
	}

	var record domain.StoredOrder
	if err := json.Unmarshal(raw, &record); err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(domain.ErrParseFailure, "stored order %s: %v", id, err)
	}
	return &record.Data, nil
}
