// internal/pkg/httpclient/client.go

package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// StatusError 表示下游返回了非 2xx 状态码
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client 是一个可追踪的、可注入的HTTP客户端
type Client struct {
	Tracer     trace.Tracer
	HTTPClient *http.Client
}

// NewClient 创建一个新的客户端实例。
// http.Client 不设置 Timeout，超时完全受控于每次请求传入的 context。
func NewClient(tracer trace.Tracer) *Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
	return &Client{
		Tracer:     tracer,
		HTTPClient: httpClient,
	}
}

// GetJSON 发送 GET 请求并把响应体解码到 out
func (c *Client) GetJSON(ctx context.Context, serviceURL string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, serviceURL, params, nil, out)
}

// PostJSON 以 JSON 格式发送 body，并把响应体解码到 out
func (c *Client) PostJSON(ctx context.Context, serviceURL string, body any, out any) error {
	return c.do(ctx, http.MethodPost, serviceURL, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, serviceURL string, params url.Values, body any, out any) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return err
	}
	spanName := fmt.Sprintf("call-%s", parsedURL.Path)

	ctx, span := c.Tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	downstreamURL := *parsedURL
	if len(params) > 0 {
		q := downstreamURL.Query()
		for key, values := range params {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		downstreamURL.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, downstreamURL.String(), reader)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	span.SetAttributes(
		attribute.String("http.url", downstreamURL.String()),
		attribute.String("http.method", method),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := &StatusError{URL: serviceURL, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode response from %s: %w", serviceURL, err)
	}
	return nil
}
