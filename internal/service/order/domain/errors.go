package domain

import "github.com/pkg/errors"

// 错误分类。调用方通过 errors.Is 判断类型，再决定提示用户或静默降级。
var (
	ErrConfigurationMissing = errors.New("store binding not configured")
	ErrNotFound             = errors.New("order not found or expired")
	ErrBadRequest           = errors.New("bad request")
	ErrParseFailure         = errors.New("malformed record")
	ErrNetwork              = errors.New("network failure")
	ErrValidation           = errors.New("validation failed")

	ErrInvalidTransition = errors.New("invalid state transition")
)
