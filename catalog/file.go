package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type fileFormat struct {
	Version string   `yaml:"version"`
	Brands  []string `yaml:"brands"`
}

// LoadFile reads a catalog from YAML:
//
//	version: "2024-01"
//	brands:
//	  - Maruti
//	  - Hyundai
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var f fileFormat
	if err := yaml.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(f.Version, f.Brands)
}

// WriteFile stores the catalog as YAML.
func (c *Catalog) WriteFile(path string) error {
	payload, err := yaml.Marshal(fileFormat{Version: c.version, Brands: c.brands})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
