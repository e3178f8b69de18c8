package console

import (
	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// PersonProfile 联系人档案，键为 姓名-手机号
type PersonProfile struct {
	ID            string `yaml:"id" json:"id"`
	domain.Person `yaml:",inline"`
}

// VehicleProfile 车辆档案，键为车牌号
type VehicleProfile struct {
	ID             string `yaml:"id" json:"id"`
	domain.Vehicle `yaml:",inline"`
}

// SavePersonProfile 把分区中的人员保存为档案，键相同时原位替换
func (c *Console) SavePersonProfile(from Section) (string, error) {
	p, err := c.person(from)
	if err != nil {
		return "", err
	}
	if p.Name == "" || p.Mobile == "" {
		return "", errors.Wrap(domain.ErrValidation, "请至少填写名称和手机号才能保存")
	}
	profile := PersonProfile{ID: p.Name + "-" + p.Mobile, Person: *p}
	for i := range c.PersonProfiles {
		if c.PersonProfiles[i].ID == profile.ID {
			c.PersonProfiles[i] = profile
			return profile.ID, nil
		}
	}
	c.PersonProfiles = append(c.PersonProfiles, profile)
	return profile.ID, nil
}

// LoadPersonProfile 用档案整体覆盖目标分区
func (c *Console) LoadPersonProfile(id string, to Section) error {
	p, err := c.person(to)
	if err != nil {
		return err
	}
	for _, profile := range c.PersonProfiles {
		if profile.ID == id {
			*p = profile.Person
			return nil
		}
	}
	return errors.Wrapf(domain.ErrNotFound, "person profile %q", id)
}

// SaveVehicleProfile 保存当前车辆为档案
func (c *Console) SaveVehicleProfile() (string, error) {
	v := c.Data.Vehicle
	if v.Plate == "" {
		return "", errors.Wrap(domain.ErrValidation, "请填写车牌号才能保存")
	}
	profile := VehicleProfile{ID: v.Plate, Vehicle: v}
	for i := range c.VehicleProfiles {
		if c.VehicleProfiles[i].ID == profile.ID {
			c.VehicleProfiles[i] = profile
			return profile.ID, nil
		}
	}
	c.VehicleProfiles = append(c.VehicleProfiles, profile)
	return profile.ID, nil
}

// LoadVehicleProfile 用档案覆盖车辆信息
func (c *Console) LoadVehicleProfile(id string) error {
	for _, profile := range c.VehicleProfiles {
		if profile.ID == id {
			c.Data.Vehicle = profile.Vehicle
			return nil
		}
	}
	return errors.Wrapf(domain.ErrNotFound, "vehicle profile %q", id)
}
