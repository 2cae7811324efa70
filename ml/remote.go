package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultRemoteTimeout = 10 * time.Second

// RemoteRegressor calls an inference sidecar that hosts the trained model,
// for artifacts that cannot be evaluated in-process.
type RemoteRegressor struct {
	endpoint string
	client   *http.Client
}

type remoteRequest struct {
	FeatureNames []string    `json:"feature_names"`
	Instances    [][]float64 `json:"instances"`
}

type remoteResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

func NewRemoteRegressor(endpoint string, timeout time.Duration) (*RemoteRegressor, error) {
	if endpoint == "" {
		return nil, errors.New("remote model endpoint is required")
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteRegressor{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *RemoteRegressor) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	body, err := json.Marshal(remoteRequest{
		FeatureNames: FeatureNames(),
		Instances:    [][]float64{features[:]},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inference service request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload remoteResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && payload.Error != "" {
			return 0, fmt.Errorf("inference service returned status %d: %s", resp.StatusCode, payload.Error)
		}
		return 0, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("failed to decode inference response: %w", decodeErr)
	}
	if len(payload.Predictions) != 1 {
		return 0, fmt.Errorf("inference service returned %d predictions, want 1", len(payload.Predictions))
	}
	return payload.Predictions[0], nil
}
