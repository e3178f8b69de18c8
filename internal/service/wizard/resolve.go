package wizard

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/codec"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
)

// 加载失败时展示给客户的提示
const (
	MsgFetchFailed  = "无法获取保单信息，链接可能已过期或ID无效。"
	MsgDecodeFailed = "数据解析失败，请联系业务员重新生成链接"
	MsgMissingRef   = "链接无效，缺少保单参数"
)

// ResolveError 包装加载失败的原因，Message 可直接展示
type ResolveError struct {
	Message string
	Err     error
}

func (e *ResolveError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolve 根据链接参数加载记录。id 存在时从存储读取并忽略 data，否则解码 data 令牌。
func Resolve(ctx context.Context, query url.Values, store port.OrderStoreClient) (*domain.InsuranceData, error) {
	if id := query.Get("id"); id != "" {
		if store == nil {
			return nil, &ResolveError{Message: MsgFetchFailed, Err: errors.Wrap(domain.ErrConfigurationMissing, "order store client not configured")}
		}
		data, err := store.Get(ctx, id)
		if err != nil {
			logger.Ctx(ctx).Error().Err(err).Str("order.id", id).Msg("Failed to fetch record")
			return nil, &ResolveError{Message: MsgFetchFailed, Err: err}
		}
		return data, nil
	}
	if token := query.Get("data"); token != "" {
		data, err := codec.Decode(token)
		if err != nil {
			logger.Ctx(ctx).Error().Err(err).Msg("Failed to decode record token")
			return nil, &ResolveError{Message: MsgDecodeFailed, Err: err}
		}
		return data, nil
	}
	return nil, &ResolveError{Message: MsgMissingRef, Err: errors.Wrap(domain.ErrBadRequest, "neither id nor data present")}
}

// Load 解析记录并创建向导
func Load(ctx context.Context, query url.Values, store port.OrderStoreClient) (*Wizard, error) {
	data, err := Resolve(ctx, query, store)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// Message 把向导返回的错误转换为展示给客户的提示
func Message(err error) string {
	var re *ResolveError
	var mm *MobileMismatchError
	switch {
	case errors.As(err, &re):
		return re.Message
	case errors.As(err, &mm):
		return mm.Error()
	case errors.Is(err, ErrNotSigned):
		return "请先签名"
	case errors.Is(err, ErrMobileLength):
		return "请输入11位手机号"
	case errors.Is(err, ErrSessionNotFound):
		return "会话已过期，请重新扫码"
	}
	return err.Error()
}
