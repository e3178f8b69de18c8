package console

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"jhpcic/internal/service/order/domain"
)

// LoadWorkspace 读取本地工作区文件，文件不存在时返回新的控制台
func LoadWorkspace(path string) (*Console, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read workspace %s", path)
	}
	c := &Console{}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, errors.Wrapf(err, "parse workspace %s", path)
	}
	if c.Data == nil {
		c.Data = domain.NewTemplate()
	}
	// 手工编辑的文件里可能有空记录
	history := c.History[:0]
	for _, rec := range c.History {
		if rec.Data != nil {
			history = append(history, rec)
		}
	}
	c.History = history
	if !c.ActiveTab.Valid() {
		c.ActiveTab = TabProposer
	}
	c.Data.RecomputePremium()
	return c, nil
}

// SaveWorkspace 把控制台状态写回文件
func SaveWorkspace(path string, c *Console) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal workspace")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create workspace dir for %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, raw, 0o600), "write workspace %s", path)
}
