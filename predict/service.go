// Package predict turns a submitted car form into a converted price estimate.
package predict

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"carprice/catalog"
	"carprice/ml"
	"carprice/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result is one estimate. It lives for a single request.
type Result struct {
	Features ml.CarFeatures
	PriceINR float64
	PriceUSD decimal.Decimal
	// Amount is PriceUSD rounded to cents, Display the same with grouping.
	Amount  string
	Display string
}

// Service holds the process-wide, read-only collaborators of the form.
type Service struct {
	model     ml.Regressor
	catalog   *catalog.Catalog
	converter *pricing.Converter
	logger    *zap.Logger
}

func NewService(model ml.Regressor, cat *catalog.Catalog, converter *pricing.Converter, logger *zap.Logger) (*Service, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if cat == nil {
		return nil, errors.New("brand catalog is required")
	}
	if converter == nil {
		return nil, errors.New("currency converter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{model: model, catalog: cat, converter: converter, logger: logger}, nil
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Estimate parses values, runs inference and converts the price. Exactly one
// of the returned values is non-nil; errors are *InputError or
// *UnexpectedError.
func (s *Service) Estimate(ctx context.Context, values url.Values) (*Result, error) {
	car, err := ParseForm(values, s.catalog)
	if err != nil {
		s.logger.Debug("rejected form input", zap.Error(err))
		return nil, err
	}

	priceINR, err := s.infer(ctx, car.Vector())
	if err != nil {
		s.logger.Warn("inference failed", zap.Error(err))
		return nil, err
	}

	usd := s.converter.Convert(priceINR)
	result := &Result{
		Features: car,
		PriceINR: priceINR,
		PriceUSD: usd,
		Amount:   s.converter.Amount(usd),
		Display:  s.converter.Display(usd),
	}
	s.logger.Debug("estimated price",
		zap.Int("year", car.Year),
		zap.Int("brand_index", car.BrandIndex),
		zap.Float64("price_inr", priceINR),
		zap.String("price_usd", result.Amount),
	)
	return result, nil
}

func (s *Service) infer(ctx context.Context, features ml.FeatureVector) (price float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedError{Err: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return 0, &UnexpectedError{Err: fmt.Errorf("request cancelled: %w", err)}
	}
	price, err = s.model.Predict(ctx, features)
	if err != nil {
		return 0, &UnexpectedError{Err: fmt.Errorf("inference failed: %w", err)}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &UnexpectedError{Err: errors.New("model returned a non-finite price")}
	}
	return price, nil
}
