package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// PeriodSeparator 连接保险期间的起止日期
	PeriodSeparator = " 至 "
	// DateLayout 是期间中日期的固定格式
	DateLayout = "2006-01-02"
)

// EndDateFor 返回一年期保单的结束日期：开始日期加一年再减一天
func EndDateFor(start string) (string, error) {
	t, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", errors.Wrapf(ErrValidation, "invalid start date %q", start)
	}
	return t.AddDate(1, 0, -1).Format(DateLayout), nil
}

// PeriodFromStart 根据开始日期生成完整的保险期间字符串
func PeriodFromStart(start string) (string, error) {
	end, err := EndDateFor(start)
	if err != nil {
		return "", err
	}
	return JoinPeriod(start, end), nil
}

// SplitPeriod 拆分期间字符串，缺失的部分返回空串
func SplitPeriod(period string) (start, end string) {
	parts := strings.SplitN(period, PeriodSeparator, 2)
	start = parts[0]
	if len(parts) == 2 {
		end = parts[1]
	}
	return start, end
}

// JoinPeriod 连接起止日期
func JoinPeriod(start, end string) string {
	return start + PeriodSeparator + end
}

// WithEndDate 替换期间的结束日期，保留原开始日期
func WithEndDate(period, end string) string {
	start, _ := SplitPeriod(period)
	return JoinPeriod(start, end)
}
