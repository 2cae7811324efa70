package ml

import (
	"fmt"
)

// FeatureCount is the width of the vector every model consumes.
const FeatureCount = 11

// FeatureVector is the ordered model input. The position of each value is a
// contract with the trained artifact: reordering silently corrupts estimates.
type FeatureVector [FeatureCount]float64

// CarFeatures holds the coerced form values for one car.
type CarFeatures struct {
	Year         int
	Mileage      float64
	MaxPower     float64
	Engine       float64
	BrandIndex   int
	Transmission int
	SellerType   int
	Fuel         int
	Owner        int
	KmDriven     float64
	Seats        int
}

var featureNames = [FeatureCount]string{
	"year",
	"mileage",
	"max_power",
	"engine",
	"brand_index",
	"transmission",
	"seller_type",
	"fuel",
	"owner",
	"km_driven",
	"seats",
}

// FeatureNames returns the feature names in vector order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, featureNames[:])
	return names
}

// Vector lays the features out in model order.
func (c CarFeatures) Vector() FeatureVector {
	return FeatureVector{
		float64(c.Year),
		c.Mileage,
		c.MaxPower,
		c.Engine,
		float64(c.BrandIndex),
		float64(c.Transmission),
		float64(c.SellerType),
		float64(c.Fuel),
		float64(c.Owner),
		c.KmDriven,
		float64(c.Seats),
	}
}

// Map returns the vector keyed by feature name.
func (v FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, FeatureCount)
	for i, name := range featureNames {
		out[name] = v[i]
	}
	return out
}

// checkFeatureOrder verifies that an artifact which declares its feature
// names was trained on the same ordering. Artifacts without names are trusted.
func checkFeatureOrder(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != FeatureCount {
		return fmt.Errorf("%w: artifact declares %d features, want %d", ErrFeatureMismatch, len(names), FeatureCount)
	}
	for i, name := range names {
		if name != featureNames[i] {
			return fmt.Errorf("%w: position %d is %q, want %q", ErrFeatureMismatch, i, name, featureNames[i])
		}
	}
	return nil
}
