package ml

import (
    "context"
    "encoding/json"
    "fmt"
    "os"
)

// LinearRegressor is intercept + coefficients·features.
type LinearRegressor struct {
    Features     []string  `json:"features,omitempty"`
    Intercept    float64   `json:"intercept"`
    Coefficients []float64 `json:"coefficients"`
}

func (lr *LinearRegressor) Predict(ctx context.Context, features FeatureVector) (float64, error) {
    if len(lr.Coefficients) == 0 {
        return 0, ErrNotLoaded
    }
    if len(lr.Coefficients) != FeatureCount {
        return 0, fmt.Errorf("%w: %d coefficients", ErrFeatureMismatch, len(lr.Coefficients))
    }
    sum := lr.Intercept
    for i, coef := range lr.Coefficients {
        sum += coef * features[i]
    }
    return sum, nil
}

func (lr *LinearRegressor) Load(path string) error {
    payload, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    var model LinearRegressor
    if err := json.Unmarshal(payload, &model); err != nil {
        return fmt.Errorf("decode linear model: %w", err)
    }
    if err := checkFeatureOrder(model.Features); err != nil {
        return err
    }
    if len(model.Coefficients) != FeatureCount {
        return fmt.Errorf("%w: %d coefficients", ErrFeatureMismatch, len(model.Coefficients))
    }
    *lr = model
    return nil
}
