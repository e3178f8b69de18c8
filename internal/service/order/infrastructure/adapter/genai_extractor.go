package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/domain"
)

const (
	defaultGeminiModel = "gemini-3-flash-preview"
	defaultImageMIME   = "image/jpeg"

	personPrompt  = "这是一个投保人的证件照片。请提取其中的姓名、证件号、手机号（如果存在）和详细地址。请以 JSON 格式返回。"
	vehiclePrompt = "这是一个车辆行驶证或车辆照片。请提取车牌号、车架号(VIN)、发动机号、品牌型号、车辆所有人、初次登记日期。请以 JSON 格式返回。"
)

// contentGenerator 是 *genai.Models 中用到的方法
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIExtractor 使用 Gemini 多模态模型识别证件，实现 port.DocumentExtractor
type GenAIExtractor struct {
	models contentGenerator
	model  string
	tracer trace.Tracer
}

// NewGenAIExtractor 创建识别客户端
func NewGenAIExtractor(ctx context.Context, apiKey, model string, tracer trace.Tracer) (*GenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.Wrap(domain.ErrConfigurationMissing, "GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GenAI client")
	}
	return newGenAIExtractor(client.Models, model, tracer), nil
}

func newGenAIExtractor(models contentGenerator, model string, tracer trace.Tracer) *GenAIExtractor {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GenAIExtractor{models: models, model: model, tracer: tracer}
}

var personSchema = objectSchema(map[string]string{
	"name":    "",
	"idCard":  "",
	"mobile":  "",
	"address": "",
	"idType":  "证件类型，如：身份证",
})

var vehicleSchema = objectSchema(map[string]string{
	"plate":        "",
	"vin":          "",
	"engineNo":     "",
	"brand":        "",
	"vehicleOwner": "",
	"registerDate": "YYYY-MM-DD 格式",
	"curbWeight":   "",
	"approvedLoad": "",
})

func objectSchema(fields map[string]string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for name, desc := range fields {
		props[name] = &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

// ExtractPerson 识别投保人证件
func (e *GenAIExtractor) ExtractPerson(ctx context.Context, dataURL string) (*domain.Person, error) {
	var p domain.Person
	if err := e.extract(ctx, "person", dataURL, personPrompt, personSchema, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ExtractVehicle 识别行驶证或车辆照片
func (e *GenAIExtractor) ExtractVehicle(ctx context.Context, dataURL string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := e.extract(ctx, "vehicle", dataURL, vehiclePrompt, vehicleSchema, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (e *GenAIExtractor) extract(ctx context.Context, kind, dataURL, prompt string, schema *genai.Schema, out any) error {
	ctx, span := e.tracer.Start(ctx, "genai.Extract", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("document.kind", kind), attribute.String("genai.model", e.model))

	mime, image, err := ParseDataURL(dataURL)
	if err != nil {
		span.RecordError(err)
		return err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mime),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	resp, err := e.models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		span.RecordError(err)
		return errors.Wrapf(domain.ErrNetwork, "GenAI generate failed: %v", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = "{}"
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		span.RecordError(err)
		logger.Ctx(ctx).Warn().Err(err).Str("document.kind", kind).Msg("AI JSON parse error")
		return errors.Wrapf(domain.ErrParseFailure, "GenAI returned invalid JSON: %v", err)
	}
	return nil
}

// ParseDataURL 拆分 data URL，返回 MIME 类型与解码后的字节。
// 没有头部时整个字符串按 base64 处理，类型默认为 image/jpeg。
func ParseDataURL(dataURL string) (string, []byte, error) {
	mime, payload := defaultImageMIME, strings.TrimSpace(dataURL)
	if head, body, ok := strings.Cut(payload, ","); ok {
		payload = body
		head = strings.TrimPrefix(head, "data:")
		head = strings.TrimSuffix(head, ";base64")
		if head != "" {
			mime = head
		}
	}
	if payload == "" {
		return "", nil, errors.Wrap(domain.ErrValidation, "image is empty")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrapf(domain.ErrValidation, "image is not valid base64: %v", err)
	}
	return mime, data, nil
}
