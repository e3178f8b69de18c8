package console

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/codec"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
)

// DefaultSaveTimeout 保存到短链存储的最长等待时间，超时后改用令牌
const DefaultSaveTimeout = 3 * time.Second

// BufferPath 二维码落地的过渡页路由
const BufferPath = "/buffer"

// Via 链接携带记录的方式
type Via string

const (
	ViaStore Via = "store" // ?id= 引用
	ViaToken Via = "token" // ?data= 内联
)

// LinkConfig 链接生成参数
type LinkConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Link 是一次生成的结果
type Link struct {
	URL     string        `json:"url"`
	Via     Via           `json:"via"`
	ID      string        `json:"id,omitempty"`
	History HistoryRecord `json:"history"`
	QR      []byte        `json:"-"` // PNG
}

// GenerateLink 先把当前记录写入历史，再尝试保存到短链存储；
// 保存失败、超时或未配置存储时把记录编码进链接。最后渲染二维码。
func (c *Console) GenerateLink(ctx context.Context, store port.OrderStoreClient, cfg LinkConfig) (*Link, error) {
	payload := c.Data.Clone()
	payload.Status = domain.StatusPending
	if c.PaidMode {
		payload.Status = domain.StatusPaid
	}
	rec := c.snapshot(payload)

	base := strings.TrimRight(cfg.BaseURL, "/") + BufferPath
	link := &Link{History: rec}
	log := logger.Ctx(ctx)

	if store != nil {
		id, err := saveWithTimeout(ctx, store, payload, cfg.Timeout)
		if err == nil && id != "" {
			link.URL = base + "?" + url.Values{"id": {id}}.Encode()
			link.Via = ViaStore
			link.ID = id
		} else {
			log.Warn().Err(err).Msg("Order store save failed, falling back to token")
		}
	}

	if link.URL == "" {
		token, err := codec.Encode(payload)
		if err != nil {
			return nil, err
		}
		// 令牌只含 URL 安全字符，无需转义
		link.URL = base + "?data=" + token
		link.Via = ViaToken
	}
	c.GeneratedLink = link.URL

	qr, err := RenderQR(link.URL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render QR code")
	} else {
		link.QR = qr
	}
	return link, nil
}

type saveResult struct {
	id  string
	err error
}

// saveWithTimeout 在限定时间内等待存储返回，不论客户端是否响应取消
func saveWithTimeout(ctx context.Context, store port.OrderStoreClient, payload *domain.InsuranceData, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan saveResult, 1)
	go func() {
		id, err := store.Save(ctx, payload)
		done <- saveResult{id: id, err: err}
	}()

	select {
	case r := <-done:
		return r.id, r.err
	case <-ctx.Done():
		return "", errors.Wrapf(domain.ErrNetwork, "order store save: %v", ctx.Err())
	}
}
