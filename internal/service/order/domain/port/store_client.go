package port

import (
	"context"

	"jhpcic/internal/service/order/domain"
)

// OrderStoreClient 是前端（控制台、客户向导）访问短链存储接口的出站端口
type OrderStoreClient interface {
	// Save 保存记录并返回新生成的标识符
	Save(ctx context.Context, data *domain.InsuranceData) (string, error)
	// Get 按标识符读取记录
	Get(ctx context.Context, id string) (*domain.InsuranceData, error)
}
