package adapter

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"jhpcic/internal/pkg/httpclient"
	"jhpcic/internal/service/order/domain"
)

const (
	savePath = "/api/save"
	getPath  = "/api/get"
)

// OrderStoreHTTPAdapter 通过 HTTP 调用短链存储服务，实现 port.OrderStoreClient
type OrderStoreHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

// NewOrderStoreHTTPAdapter 创建适配器，baseURL 形如 http://localhost:8788
func NewOrderStoreHTTPAdapter(client *httpclient.Client, baseURL string) *OrderStoreHTTPAdapter {
	return &OrderStoreHTTPAdapter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type saveResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// Save 调用 /api/save。任何非成功响应都视为失败，调用方据此走兜底路径。
func (a *OrderStoreHTTPAdapter) Save(ctx context.Context, data *domain.InsuranceData) (string, error) {
	var resp saveResponse
	if err := a.client.PostJSON(ctx, a.baseURL+savePath, data, &resp); err != nil {
		return "", classify(err)
	}
	if resp.ID == "" {
		return "", errors.Wrapf(domain.ErrNetwork, "save returned no id: %s", resp.Error)
	}
	return resp.ID, nil
}

// Get 调用 /api/get
func (a *OrderStoreHTTPAdapter) Get(ctx context.Context, id string) (*domain.InsuranceData, error) {
	if id == "" {
		return nil, errors.Wrap(domain.ErrBadRequest, "Missing ID")
	}
	var data domain.InsuranceData
	if err := a.client.GetJSON(ctx, a.baseURL+getPath, url.Values{"id": {id}}, &data); err != nil {
		return nil, classify(err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// classify 把传输层错误映射到领域错误分类
func classify(err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return errors.Wrap(domain.ErrNotFound, statusErr.Body)
		case http.StatusBadRequest:
			return errors.Wrap(domain.ErrBadRequest, statusErr.Body)
		}
	}
	return errors.Wrap(domain.ErrNetwork, err.Error())
}
