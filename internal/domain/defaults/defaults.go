// Package defaults saqlangan snapshot bo'lmaganda ishlatiladigan boshlang'ich
// ma'lumotlar to'plami.
package defaults

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

//go:embed seed.yaml
var seedYAML []byte

// DataSet boshlang'ich kolleksiyalar
type DataSet struct {
	Vehicles   []entity.Vehicle   `yaml:"vehicles"`
	Categories []string           `yaml:"categories"`
	Content    entity.SiteContent `yaml:"content"`
	Events     []entity.Event     `yaml:"events"`
}

// Load har chaqiruvda yangi nusxa qaytaradi
func Load() (*DataSet, error) {
	var ds DataSet
	if err := yaml.Unmarshal(seedYAML, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &ds, nil
}

// MustLoad embed qilingan fayl buzilgan bo'lsa panic
func MustLoad() *DataSet {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}
