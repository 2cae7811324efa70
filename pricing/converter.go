// Package pricing converts model output (INR) into the display currency.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultRate is 1 INR in USD.
var DefaultRate = decimal.RequireFromString("0.012")

// Converter applies a fixed INR→USD rate.
type Converter struct {
	rate    decimal.Decimal
	printer *message.Printer
}

func NewConverter(rate decimal.Decimal) (*Converter, error) {
	if !rate.IsPositive() {
		return nil, errors.New("conversion rate must be positive")
	}
	return &Converter{
		rate:    rate,
		printer: message.NewPrinter(language.English),
	}, nil
}

// NewConverterFromFloat takes the rate as configured in YAML.
func NewConverterFromFloat(rate float64) (*Converter, error) {
	return NewConverter(decimal.NewFromFloat(rate))
}

func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// Convert multiplies without rounding.
func (c *Converter) Convert(inr float64) decimal.Decimal {
	return decimal.NewFromFloat(inr).Mul(c.rate)
}

// Amount renders usd with exactly two decimals, e.g. "12000.00".
func (c *Converter) Amount(usd decimal.Decimal) string {
	return usd.StringFixed(2)
}

// Display renders usd with digit grouping, e.g. "12,000.00".
func (c *Converter) Display(usd decimal.Decimal) string {
	rounded, _ := usd.Round(2).Float64()
	return c.printer.Sprint(number.Decimal(rounded, number.Scale(2)))
}
