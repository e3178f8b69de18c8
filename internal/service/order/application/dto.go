// internal/service/order/application/dto.go
package application

import "time"

// SaveOrderResponse 是保存用例的输出
type SaveOrderResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// StoreConfig 描述短链存储的绑定方式
type StoreConfig struct {
	Binding         string        // 主绑定名
	FallbackBinding string        // 备用绑定名，主绑定缺失时使用
	TTL             time.Duration // 记录保留时长
}
