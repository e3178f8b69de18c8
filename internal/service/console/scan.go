package console

import (
	"context"

	"github.com/pkg/errors"

	"jhpcic/internal/pkg/logger"
	"jhpcic/internal/service/order/domain"
	"jhpcic/internal/service/order/domain/port"
)

// MsgScanFailed 识别失败时给业务员的提示
const MsgScanFailed = "AI 扫描失败，请检查网络或手动录入。"

var ErrScanInProgress = errors.Wrap(domain.ErrValidation, "scan already in progress")

// Scan 按当前页签识别证件图片并合并到对应分区，识别结果中为空的字段不覆盖原值。
// 失败时记录保持不变。
func (c *Console) Scan(ctx context.Context, extractor port.DocumentExtractor, dataURL string) error {
	if !c.scanning.CompareAndSwap(false, true) {
		return ErrScanInProgress
	}
	defer c.scanning.Store(false)

	log := logger.Ctx(ctx).With().Str("tab", string(c.ActiveTab)).Logger()
	switch c.ActiveTab {
	case TabProposer, TabInsured:
		got, err := extractor.ExtractPerson(ctx, dataURL)
		if err != nil {
			log.Warn().Err(err).Msg("Person scan failed")
			return errors.Wrap(err, MsgScanFailed)
		}
		p, _ := c.person(Section(c.ActiveTab))
		*p = domain.MergePerson(*p, *got)
	case TabVehicle:
		got, err := extractor.ExtractVehicle(ctx, dataURL)
		if err != nil {
			log.Warn().Err(err).Msg("Vehicle scan failed")
			return errors.Wrap(err, MsgScanFailed)
		}
		c.Data.Vehicle = domain.MergeVehicle(c.Data.Vehicle, *got)
	default:
		return errors.Wrapf(domain.ErrValidation, "tab %s does not accept scans", c.ActiveTab)
	}
	log.Info().Msg("Scan merged")
	return nil
}
