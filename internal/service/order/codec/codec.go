// Package codec 把保单记录编码为可直接嵌入 URL 的令牌，作为短链存储不可用时的兜底传输方式。
package codec

import (
	"encoding/base64"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// tokenEncoding 使用 URL 安全字母表且不带填充，令牌放进查询参数无需再转义
var tokenEncoding = base64.RawURLEncoding

// 旧版链接由浏览器 btoa 生成，使用标准字母表并带填充
var legacyEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
}

// Encode 将记录序列化为令牌。失败时返回错误，不返回空令牌。
func Encode(data *domain.InsuranceData) (string, error) {
	if data == nil {
		return "", errors.Wrap(domain.ErrParseFailure, "encode nil record")
	}
	// 非法 UTF-8 会被序列化替换为 U+FFFD，解码后与原记录不一致
	if field, ok := invalidUTF8(reflect.ValueOf(*data), "record"); ok {
		return "", errors.Wrapf(domain.ErrParseFailure, "encode record: %s is not valid UTF-8", field)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrapf(domain.ErrParseFailure, "encode record: %v", err)
	}
	return tokenEncoding.EncodeToString(raw), nil
}

// Decode 是 Encode 的逆操作。令牌损坏或内容不是合法记录时返回 domain.ErrParseFailure。
func Decode(token string) (*domain.InsuranceData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.Wrap(domain.ErrParseFailure, "empty token")
	}

	raw, err := decodeBytes(token)
	if err != nil {
		return nil, err
	}

	var data domain.InsuranceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(domain.ErrParseFailure, "decode record: %v", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func decodeBytes(token string) ([]byte, error) {
	if raw, err := tokenEncoding.DecodeString(token); err == nil {
		return raw, nil
	}
	// 查询参数里的 '+' 可能已被解码成空格
	legacy := strings.ReplaceAll(token, " ", "+")
	for _, enc := range legacyEncodings {
		if raw, err := enc.DecodeString(legacy); err == nil {
			return raw, nil
		}
	}
	return nil, errors.Wrap(domain.ErrParseFailure, "token is not valid base64")
}

// invalidUTF8 返回第一个包含非法 UTF-8 的字符串字段路径
func invalidUTF8(v reflect.Value, path string) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return path, !utf8.ValidString(v.String())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f, ok := invalidUTF8(v.Field(i), path+"."+v.Type().Field(i).Name); ok {
				return f, true
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if f, ok := invalidUTF8(v.Index(i), path+"["+strconv.Itoa(i)+"]"); ok {
				return f, true
			}
		}
	}
	return "", false
}
