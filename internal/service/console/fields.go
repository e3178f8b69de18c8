package console

import (
	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// Section 记录中可编辑的分区
type Section string

const (
	SectionProposer Section = "proposer"
	SectionInsured  Section = "insured"
	SectionVehicle  Section = "vehicle"
	SectionProject  Section = "project"
)

func personFields(p *domain.Person) map[string]*string {
	return map[string]*string{
		"name":    &p.Name,
		"idType":  &p.IDType,
		"idCard":  &p.IDCard,
		"mobile":  &p.Mobile,
		"address": &p.Address,
	}
}

func vehicleFields(v *domain.Vehicle) map[string]*string {
	return map[string]*string{
		"plate":        &v.Plate,
		"vin":          &v.VIN,
		"engineNo":     &v.EngineNo,
		"brand":        &v.Brand,
		"vehicleOwner": &v.VehicleOwner,
		"registerDate": &v.RegisterDate,
		"curbWeight":   &v.CurbWeight,
		"approvedLoad": &v.ApprovedLoad,
	}
}

func coverageFields(item *domain.CoverageItem) map[string]*string {
	return map[string]*string{
		"name":       &item.Name,
		"amount":     &item.Amount,
		"deductible": &item.Deductible,
		"premium":    &item.Premium,
	}
}

// person 返回分区对应的人员记录
func (c *Console) person(section Section) (*domain.Person, error) {
	switch section {
	case SectionProposer:
		return &c.Data.Proposer, nil
	case SectionInsured:
		return &c.Data.Insured, nil
	}
	return nil, errors.Wrapf(domain.ErrValidation, "section %q is not a person", section)
}

// SetField 修改某个分区的字段，字段名与 JSON 键一致。
// 总保费由险种汇总得出，不能直接修改。
func (c *Console) SetField(section Section, field, value string) error {
	var fields map[string]*string
	switch section {
	case SectionProposer, SectionInsured:
		p, _ := c.person(section)
		fields = personFields(p)
	case SectionVehicle:
		fields = vehicleFields(&c.Data.Vehicle)
	case SectionProject:
		fields = map[string]*string{
			"region": &c.Data.Project.Region,
			"period": &c.Data.Project.Period,
		}
	default:
		return errors.Wrapf(domain.ErrValidation, "unknown section %q", section)
	}
	ptr, ok := fields[field]
	if !ok {
		return errors.Wrapf(domain.ErrValidation, "unknown field %s.%s", section, field)
	}
	*ptr = value
	return nil
}

// SetCoverage 修改第 index 个险种的字段
func (c *Console) SetCoverage(index int, field, value string) error {
	if err := c.checkCoverageIndex(index); err != nil {
		return err
	}
	ptr, ok := coverageFields(&c.Data.Project.Coverages[index])[field]
	if !ok {
		return errors.Wrapf(domain.ErrValidation, "unknown coverage field %q", field)
	}
	*ptr = value
	c.Data.RecomputePremium()
	return nil
}

// AddCoverage 在末尾追加一个空险种
func (c *Console) AddCoverage() {
	c.Data.Project.Coverages = append(c.Data.Project.Coverages, domain.CoverageItem{Deductible: "/", Premium: "0.00"})
	c.Data.RecomputePremium()
}

// RemoveCoverage 删除第 index 个险种，其余顺序不变
func (c *Console) RemoveCoverage(index int) error {
	if err := c.checkCoverageIndex(index); err != nil {
		return err
	}
	cov := c.Data.Project.Coverages
	c.Data.Project.Coverages = append(cov[:index:index], cov[index+1:]...)
	c.Data.RecomputePremium()
	return nil
}

func (c *Console) checkCoverageIndex(index int) error {
	if index < 0 || index >= len(c.Data.Project.Coverages) {
		return errors.Wrapf(domain.ErrValidation, "coverage index %d out of range", index)
	}
	return nil
}

// SetStartDate 设置起保日期，终止日期自动计算为一年后减一天。空值不做任何修改。
func (c *Console) SetStartDate(start string) error {
	if start == "" {
		return nil
	}
	period, err := domain.PeriodFromStart(start)
	if err != nil {
		return err
	}
	c.Data.Project.Period = period
	return nil
}

// SetEndDate 单独修改终止日期，保留起保日期
func (c *Console) SetEndDate(end string) {
	c.Data.Project.Period = domain.WithEndDate(c.Data.Project.Period, end)
}
