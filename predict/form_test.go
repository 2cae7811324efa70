package predict

import (
	"errors"
	"net/url"
	"testing"

	"carprice/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New("test", []string{"Maruti", "Hyundai", "Honda"})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func validForm() url.Values {
	return url.Values{
		FieldYear:         {"2015"},
		FieldMileage:      {"20 kmpl"},
		FieldMaxPower:     {"85 bhp"},
		FieldEngine:       {"1200 cc"},
		FieldBrand:        {"Maruti"},
		FieldTransmission: {"1"},
		FieldSellerType:   {"1"},
		FieldFuel:         {"2"},
		FieldOwner:        {"1"},
		FieldKmDriven:     {"40,000 km"},
		FieldSeats:        {"5"},
	}
}

func TestParseMeasure(t *testing.T) {
	cases := map[string]float64{
		"18.5 km/l":  18.5,
		"1,200 cc":   1200,
		"1,200":      1200,
		"  74 bhp ":  74,
		"40,000 km":  40000,
		"23.4":       23.4,
		"1,248 CC x": 1248,
	}
	for raw, want := range cases {
		got, err := parseMeasure(FieldEngine, raw)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %v want %v", raw, got, want)
		}
	}
}

func TestParseMeasureRejects(t *testing.T) {
	for _, raw := range []string{"bad input", "", "   ", "km 18", "NaN kmpl", "inf"} {
		_, err := parseMeasure(FieldMileage, raw)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("%q: expected InputError, got %v", raw, err)
			continue
		}
		if inputErr.Field != FieldMileage {
			t.Errorf("%q: unexpected field %s", raw, inputErr.Field)
		}
	}
}

func TestParseIsIdempotent(t *testing.T) {
	for _, raw := range []string{"18.5 km/l", "1,200 cc", "0"} {
		first, err1 := parseMeasure(FieldMileage, raw)
		second, err2 := parseMeasure(FieldMileage, raw)
		if err1 != nil || err2 != nil || first != second {
			t.Errorf("%q: %v/%v %v/%v", raw, first, err1, second, err2)
		}
	}
}

func TestParseInteger(t *testing.T) {
	if v, err := parseInteger(FieldYear, " 2015 "); err != nil || v != 2015 {
		t.Fatalf("unexpected result: %v %v", v, err)
	}
	for _, raw := range []string{"abc", "20.5", "", "5 seats"} {
		if _, err := parseInteger(FieldSeats, raw); !IsInputError(err) {
			t.Errorf("%q: expected InputError, got %v", raw, err)
		}
	}
}

func TestParseForm(t *testing.T) {
	car, err := ParseForm(validForm(), testCatalog(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if car.Year != 2015 || car.Mileage != 20 || car.MaxPower != 85 || car.Engine != 1200 {
		t.Fatalf("unexpected numeric fields: %+v", car)
	}
	if car.BrandIndex != 1 {
		t.Fatalf("first catalog brand must map to 1, got %d", car.BrandIndex)
	}
	if car.KmDriven != 40000 || car.Seats != 5 || car.Fuel != 2 {
		t.Fatalf("unexpected fields: %+v", car)
	}
}

func TestParseFormUnknownBrand(t *testing.T) {
	form := validForm()
	form.Set(FieldBrand, "Tesla")
	_, err := ParseForm(form, testCatalog(t))

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if inputErr.Field != FieldBrand || !errors.Is(err, catalog.ErrUnknownBrand) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseFormMissingField(t *testing.T) {
	form := validForm()
	form.Del(FieldSeats)
	_, err := ParseForm(form, testCatalog(t))

	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Field != FieldSeats {
		t.Fatalf("expected InputError for seats, got %v", err)
	}
}

func TestMessageBuckets(t *testing.T) {
	input := &InputError{Field: FieldYear, Value: "abc", Reason: "not a valid integer"}
	if got := Message(input); got != `Input error: year: not a valid integer (got "abc")` {
		t.Fatalf("unexpected message: %s", got)
	}
	unexpected := &UnexpectedError{Err: errors.New("boom")}
	if got := Message(unexpected); got != "An unexpected error occurred: boom" {
		t.Fatalf("unexpected message: %s", got)
	}
	if Kind(input) != "input" || Kind(unexpected) != "unexpected" {
		t.Fatal("unexpected kinds")
	}
}
