// Package catalog holds the versioned brand table that maps brand names to
// the numeric index the price model was trained with.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownBrand = errors.New("unknown brand")

// Catalog is immutable once built and safe to share between requests.
type Catalog struct {
	version string
	brands  []string
	index   map[string]int
}

// New builds a catalog. Brand order defines the index: brands[0] is 1.
func New(version string, brands []string) (*Catalog, error) {
	if strings.TrimSpace(version) == "" {
		return nil, errors.New("catalog version is required")
	}
	if len(brands) == 0 {
		return nil, errors.New("catalog has no brands")
	}
	c := &Catalog{
		version: version,
		brands:  make([]string, len(brands)),
		index:   make(map[string]int, len(brands)),
	}
	for i, brand := range brands {
		if brand == "" {
			return nil, fmt.Errorf("brand at position %d is empty", i)
		}
		if prev, ok := c.index[brand]; ok {
			return nil, fmt.Errorf("brand %q listed twice (positions %d and %d)", brand, prev-1, i)
		}
		c.brands[i] = brand
		c.index[brand] = i + 1
	}
	return c, nil
}

func (c *Catalog) Version() string {
	return c.version
}

func (c *Catalog) Len() int {
	return len(c.brands)
}

// Brands returns the brands in index order.
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// Index returns the 1-based position of brand. Matching is exact.
func (c *Catalog) Index(brand string) (int, error) {
	idx, ok := c.index[brand]
	if !ok {
		return 0, fmt.Errorf("%w %q in catalog %s", ErrUnknownBrand, brand, c.version)
	}
	return idx, nil
}
