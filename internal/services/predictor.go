package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mediassist/mediassist-api/internal/matching"
)

// PredictorService calls the external disease-prediction model. It is the
// primary predictor; on any failure the caller switches to matching.Fallback.
type PredictorService struct {
	baseURL string
	client  *http.Client
}

func NewPredictorService(baseURL string) *PredictorService {
	return &PredictorService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Predict posts the symptom list to the model API and returns its guess.
func (s *PredictorService) Predict(ctx context.Context, symptoms []string) (*matching.Prediction, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("%w: predictor URL not configured", ErrUpstreamUnavailable)
	}

	body, err := json.Marshal(map[string][]string{"symptoms": symptoms})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var prediction matching.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return &prediction, nil
}
