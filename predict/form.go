package predict

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"carprice/catalog"
	"carprice/ml"
)

const (
	FieldYear         = "year"
	FieldMileage      = "mileage"
	FieldMaxPower     = "max_power"
	FieldEngine       = "engine"
	FieldBrand        = "brand"
	FieldTransmission = "transmission"
	FieldSellerType   = "seller_type"
	FieldFuel         = "fuel"
	FieldOwner        = "owner"
	FieldKmDriven     = "km_driven"
	FieldSeats        = "seats"
)

// Fields lists the form fields in the order the page shows them.
func Fields() []string {
	return []string{
		FieldYear, FieldMileage, FieldMaxPower, FieldEngine, FieldBrand,
		FieldTransmission, FieldSellerType, FieldFuel, FieldOwner,
		FieldKmDriven, FieldSeats,
	}
}

// ParseForm coerces submitted strings into model features. It does no range
// checking: codes outside the dropdown values are passed to the model as-is.
func ParseForm(values url.Values, cat *catalog.Catalog) (ml.CarFeatures, error) {
	var (
		car ml.CarFeatures
		err error
	)
	get := func(field string) (string, error) {
		raw, ok := values[field]
		if !ok || len(raw) == 0 {
			return "", &InputError{Field: field, Reason: "field is required"}
		}
		return raw[0], nil
	}
	integer := func(field string, dst *int) {
		if err != nil {
			return
		}
		var raw string
		if raw, err = get(field); err == nil {
			*dst, err = parseInteger(field, raw)
		}
	}
	measure := func(field string, dst *float64) {
		if err != nil {
			return
		}
		var raw string
		if raw, err = get(field); err == nil {
			*dst, err = parseMeasure(field, raw)
		}
	}

	integer(FieldYear, &car.Year)
	measure(FieldMileage, &car.Mileage)
	measure(FieldMaxPower, &car.MaxPower)
	measure(FieldEngine, &car.Engine)
	if err == nil {
		var brand string
		if brand, err = get(FieldBrand); err == nil {
			car.BrandIndex, err = brandIndex(cat, brand)
		}
	}
	integer(FieldTransmission, &car.Transmission)
	integer(FieldSellerType, &car.SellerType)
	integer(FieldFuel, &car.Fuel)
	integer(FieldOwner, &car.Owner)
	measure(FieldKmDriven, &car.KmDriven)
	integer(FieldSeats, &car.Seats)

	if err != nil {
		return ml.CarFeatures{}, err
	}
	return car, nil
}

// parseInteger accepts a base-10 integer with optional surrounding spaces.
func parseInteger(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InputError{Field: field, Value: raw, Reason: "not a valid integer", Err: err}
	}
	return v, nil
}

// parseMeasure reads values such as "18.5 km/l" or "1,200 cc": everything after
// the first whitespace-separated token is dropped and thousands separators are
// removed before parsing.
func parseMeasure(field, raw string) (float64, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return 0, &InputError{Field: field, Value: raw, Reason: "no numeric value"}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tokens[0], ",", ""), 64)
	if err != nil {
		return 0, &InputError{Field: field, Value: raw, Reason: "not a valid number", Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Value: raw, Reason: "not a finite number"}
	}
	return v, nil
}

func brandIndex(cat *catalog.Catalog, brand string) (int, error) {
	idx, err := cat.Index(brand)
	if err != nil {
		return 0, &InputError{Field: FieldBrand, Value: brand, Reason: "not in brand catalog " + cat.Version(), Err: err}
	}
	return idx, nil
}
