// Package config loads config.yaml, applies .env and CARPRICE_* overrides and
// validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Model   ModelConfig   `yaml:"model"`
	Catalog CatalogConfig `yaml:"catalog"`
	Pricing PricingConfig `yaml:"pricing"`
}

type HTTPConfig struct {
	Port         int           `yaml:"port" env:"CARPRICE_HTTP_PORT" validate:"min=1,max=65535"`
	Timeout      time.Duration `yaml:"timeout" env:"CARPRICE_HTTP_TIMEOUT" validate:"gt=0"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"CARPRICE_HTTP_MAX_BODY_BYTES" validate:"gt=0"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"CARPRICE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" env:"CARPRICE_LOG_FORMAT" validate:"oneof=json console"`
	File       string `yaml:"file" env:"CARPRICE_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

type ModelConfig struct {
	Type      string        `yaml:"type" env:"CARPRICE_MODEL_TYPE" validate:"oneof=linear decision_tree random_forest remote"`
	Path      string        `yaml:"path" env:"CARPRICE_MODEL_PATH" validate:"required_unless=Type remote"`
	Endpoint  string        `yaml:"endpoint" env:"CARPRICE_MODEL_ENDPOINT" validate:"required_if=Type remote"`
	Timeout   time.Duration `yaml:"timeout" env:"CARPRICE_MODEL_TIMEOUT" validate:"gte=0"`
	CacheSize int           `yaml:"cache_size" env:"CARPRICE_MODEL_CACHE_SIZE" validate:"gte=0"`
	Watch     bool          `yaml:"watch" env:"CARPRICE_MODEL_WATCH"`
}

type CatalogConfig struct {
	Source  string `yaml:"source" env:"CARPRICE_CATALOG_SOURCE" validate:"oneof=yaml sqlite dataset"`
	Path    string `yaml:"path" env:"CARPRICE_CATALOG_PATH" validate:"required"`
	Version string `yaml:"version" env:"CARPRICE_CATALOG_VERSION"`
	Column  string `yaml:"column" env:"CARPRICE_CATALOG_COLUMN"`
}

type PricingConfig struct {
	Rate float64 `yaml:"rate" env:"CARPRICE_PRICING_RATE" validate:"gt=0"`
}

// Default returns the settings used for anything config.yaml leaves out.
func Default() *Config {
	return &Config{
		Http: HTTPConfig{
			Port:         8080,
			Timeout:      30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Model: ModelConfig{
			Type:    "random_forest",
			Path:    "data/model.json",
			Timeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source: "yaml",
			Path:   "data/brands.yaml",
			Column: "name",
		},
		Pricing: PricingConfig{
			Rate: 0.012,
		},
	}
}

// Load reads path (a missing file is not an error), then .env, then the
// environment.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(config); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
