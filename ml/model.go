package ml

import (
	"context"
	"errors"
)

var (
	ErrFeatureMismatch = errors.New("feature order mismatch")
	ErrNotLoaded       = errors.New("model not loaded")
)

// Regressor turns one feature vector into a price in the training currency.
// Implementations must be safe for concurrent use once loaded.
type Regressor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// RegressorFunc adapts a plain function to Regressor.
type RegressorFunc func(ctx context.Context, features FeatureVector) (float64, error)

func (f RegressorFunc) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	return f(ctx, features)
}
