package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/engine"
	"github.com/payvista/finhealth/internal/model"
)

func testRouter(limiter *rate.Limiter) http.Handler {
	cfg := &config.Config{
		Validation: config.ValidationConfig{
			MinRecords:          3,
			MinPlausibleIncome:  1_000,
			MaxPlausibleIncome:  10_000_000,
			VolatilityThreshold: 0.5,
			OutlierSigma:        3,
		},
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return newRouter(engine.New(cfg), limiter, []string{"*"})
}

func recordsJSON(n int) string {
	var b strings.Builder
	b.WriteString(`{"records":[`)
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"timestamp":%q,"gross_income":50000,"tax":10000,"other_deductions":2500,"retirement_contribution":5000}`,
			base.AddDate(0, i, 0).Format(time.RFC3339))
	}
	b.WriteString(`]}`)
	return b.String()
}

func TestServeHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeValidate(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(recordsJSON(3)))
	testRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.CanProceed)
}

func TestServeAnalyze(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(recordsJSON(12)))
	testRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.AnalysisComplete, result.Status)
	assert.Len(t, result.HealthScore.Categories, 5)
}

func TestServeAnalyzeInsufficientData(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(recordsJSON(2)))
	testRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.AnalysisInsufficientData, result.Status)
	assert.Equal(t, 50.0, result.HealthScore.OverallScore)
}

func TestServeAnalyzeBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"records":`},
		{"no records", `{"records":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tt.body))
			testRouter(nil).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServeRateLimit(t *testing.T) {
	router := testRouter(rate.NewLimiter(rate.Limit(0.001), 1))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
