package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketplace-service/internal/config"
	"marketplace-service/internal/models"

	"github.com/goccy/go-json"
)

// ErrComparisonUnavailable is the generic failure surfaced to users; the
// underlying cause is logged, never exposed.
var ErrComparisonUnavailable = fmt.Errorf("comparison service unavailable")

// ComparisonService calls the third-party policy comparison API. One call
// per change of the selected policy set; no retry, no backoff. A failure
// surfaces as a full-section error state and the user retries by reopening
// the selection.
type ComparisonService struct {
	baseURL string
	client  *http.Client
}

func NewComparisonService(cfg config.ComparisonAPIConfig) *ComparisonService {
	return &ComparisonService{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Compare fetches the side-by-side feature comparison for the named
// policies. Policy names are lower-cased on the wire.
func (s *ComparisonService) Compare(ctx context.Context, policyNames []string) (*models.ComparisonResponse, error) {
	if len(policyNames) == 0 {
		return nil, fmt.Errorf("no policies selected for comparison")
	}

	lowered := make([]string, len(policyNames))
	for i, name := range policyNames {
		lowered[i] = strings.ToLower(name)
	}

	body, err := json.Marshal(models.ComparisonRequest{PolicyNames: lowered})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comparison request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/compare", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("Comparison API call failed", "error", err)
		return nil, ErrComparisonUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Error("Comparison API returned non-2xx",
			"status", resp.StatusCode, "body", string(payload))
		return nil, ErrComparisonUnavailable
	}

	var comparison models.ComparisonResponse
	if err := json.NewDecoder(resp.Body).Decode(&comparison); err != nil {
		slog.Error("Failed to decode comparison response", "error", err)
		return nil, ErrComparisonUnavailable
	}

	return &comparison, nil
}
