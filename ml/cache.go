package ml

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedRegressor memoizes predictions by feature vector. Only valid for
// deterministic models, which every supported artifact is.
type CachedRegressor struct {
	next  Regressor
	cache *lru.Cache[FeatureVector, float64]
}

func NewCachedRegressor(next Regressor, size int) (*CachedRegressor, error) {
	cache, err := lru.New[FeatureVector, float64](size)
	if err != nil {
		return nil, err
	}
	return &CachedRegressor{next: next, cache: cache}, nil
}

func (c *CachedRegressor) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	if value, ok := c.cache.Get(features); ok {
		return value, nil
	}
	value, err := c.next.Predict(ctx, features)
	if err != nil {
		return 0, err
	}
	c.cache.Add(features, value)
	return value, nil
}

// Len reports how many vectors are cached.
func (c *CachedRegressor) Len() int {
	return c.cache.Len()
}
