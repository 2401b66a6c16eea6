package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-service/internal/config"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestCompare_LowercasesNamesAndDecodesResponse(t *testing.T) {
	var received struct {
		PolicyNames []string `json:"policy_names"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/compare", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"policy_comparison": {
				"healthsecure individual": {"pre_hospitalization_days": 60, "covers_maternity": false},
				"familyshield floater": {"pre_hospitalization_days": 90, "covers_maternity": true}
			},
			"ai_analysis": "FamilyShield offers broader family cover."
		}`))
	}))
	defer server.Close()

	service := NewComparisonService(config.ComparisonAPIConfig{BaseURL: server.URL})

	result, err := service.Compare(context.Background(), []string{"HealthSecure Individual", "FamilyShield Floater"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"healthsecure individual", "familyshield floater"}, received.PolicyNames)
	assert.Len(t, result.PolicyComparison, 2)
	assert.Equal(t, 90, result.PolicyComparison["familyshield floater"].PreHospitalizationDays)
	assert.True(t, result.PolicyComparison["familyshield floater"].CoversMaternity)
	assert.Equal(t, "FamilyShield offers broader family cover.", result.AIAnalysis)
}

func TestCompare_ServerErrorSurfacesAsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewComparisonService(config.ComparisonAPIConfig{BaseURL: server.URL})

	result, err := service.Compare(context.Background(), []string{"A", "B"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrComparisonUnavailable)
}

func TestCompare_ConnectionFailureSurfacesAsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	service := NewComparisonService(config.ComparisonAPIConfig{BaseURL: server.URL})

	result, err := service.Compare(context.Background(), []string{"A", "B"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrComparisonUnavailable)
}

func TestCompare_MalformedBodySurfacesAsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	service := NewComparisonService(config.ComparisonAPIConfig{BaseURL: server.URL})

	_, err := service.Compare(context.Background(), []string{"A", "B"})

	assert.ErrorIs(t, err, ErrComparisonUnavailable)
}

func TestCompare_EmptySelectionRejectedLocally(t *testing.T) {
	service := NewComparisonService(config.ComparisonAPIConfig{BaseURL: "http://unused"})

	_, err := service.Compare(context.Background(), nil)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrComparisonUnavailable)
}
