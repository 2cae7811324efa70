package main

import (
	"context"
	"fmt"

	"carprice/catalog"
	"carprice/config"
	"carprice/db"
	"carprice/logging"
	"carprice/ml"
	"carprice/predict"
	"carprice/pricing"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func loadSettings(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, error) {
	switch cfg.Source {
	case "yaml":
		return catalog.LoadFile(cfg.Path)
	case "sqlite":
		store, err := db.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadCatalog(ctx, cfg.Version)
	case "dataset":
		version := cfg.Version
		if version == "" {
			version = "dataset"
		}
		return catalog.LoadDataset(cfg.Path, cfg.Column, version)
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}
}

func loadModel(cfg config.ModelConfig) (ml.Regressor, error) {
	model, err := ml.LoadModel(ml.LoadOptions{
		Type:     cfg.Type,
		Path:     cfg.Path,
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize > 0 {
		return ml.NewCachedRegressor(model, cfg.CacheSize)
	}
	return model, nil
}

// buildService constructs the process-wide collaborators once.
func buildService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*predict.Service, error) {
	cat, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load brand catalog: %w", err)
	}
	logger.Info("brand catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.String("version", cat.Version()),
		zap.Int("brands", cat.Len()),
	)

	model, err := loadModel(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded", zap.String("type", cfg.Model.Type), zap.Int("cache_size", cfg.Model.CacheSize))

	converter, err := pricing.NewConverterFromFloat(cfg.Pricing.Rate)
	if err != nil {
		return nil, err
	}
	return predict.NewService(model, cat, converter, logger)
}

func watchModel(ctx context.Context, cfg config.ModelConfig, logger *zap.Logger) {
	if !cfg.Watch || cfg.Type == ml.TypeRemote {
		return
	}
	err := ml.WatchArtifact(ctx, cfg.Path,
		func(event fsnotify.Event) {
			logger.Warn("model artifact changed on disk; restart to serve it",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)
		},
		func(err error) {
			logger.Error("model watcher failed", zap.Error(err))
		},
	)
	if err != nil {
		logger.Warn("model watcher disabled", zap.Error(err))
	}
}
