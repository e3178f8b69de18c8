package port

import (
	"context"

	"jhpcic/internal/service/order/domain"
)

// DocumentExtractor 是证件识别服务的出站端口。
// 输入为 data URL 编码的图片，返回的字段均为尽力识别，未识别的字段为空串。
type DocumentExtractor interface {
	// ExtractPerson 识别身份证件中的投保人信息
	ExtractPerson(ctx context.Context, dataURL string) (*domain.Person, error)
	// ExtractVehicle 识别行驶证或车辆照片中的车辆信息
	ExtractVehicle(ctx context.Context, dataURL string) (*domain.Vehicle, error)
}
