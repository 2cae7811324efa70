package ml

import (
	"errors"
	"fmt"
	"time"
)

const (
	TypeLinear       = "linear"
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
	TypeRemote       = "remote"
)

// LoadOptions selects and locates a model artifact.
type LoadOptions struct {
	Type     string
	Path     string
	Endpoint string
	Timeout  time.Duration
}

func LoadModel(opts LoadOptions) (Regressor, error) {
	switch opts.Type {
	case TypeLinear:
		model := &LinearRegressor{}
		if err := model.Load(opts.Path); err != nil {
			return nil, fmt.Errorf("load linear model %s: %w", opts.Path, err)
		}
		return model, nil
	case TypeDecisionTree:
		model := &RegressionTree{}
		if err := model.Load(opts.Path); err != nil {
			return nil, fmt.Errorf("load decision tree %s: %w", opts.Path, err)
		}
		return model, nil
	case TypeRandomForest:
		model := &RandomForest{}
		if err := model.Load(opts.Path); err != nil {
			return nil, fmt.Errorf("load random forest %s: %w", opts.Path, err)
		}
		return model, nil
	case TypeRemote:
		return NewRemoteRegressor(opts.Endpoint, opts.Timeout)
	default:
		return nil, errors.New("unsupported model type")
	}
}
