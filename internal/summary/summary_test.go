package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/trendpulse/internal/domain"
)

func TestClient_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/summarize", r.URL.Path)

		var req summarizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Quantum Chips", req.Title)
		assert.Equal(t, domain.CategoryViral, req.Category)

		_ = json.NewEncoder(w).Encode(summarizeResponse{Summary: "Quantum chips are everywhere."})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got := client.Summarize(context.Background(), "Quantum Chips", domain.CategoryViral)
	assert.Equal(t, "Quantum chips are everywhere.", got)
}

func TestClient_DisabledReturnsFallback(t *testing.T) {
	client := NewClient("")
	got := client.Summarize(context.Background(), "Anything", domain.CategoryNews)
	assert.Equal(t, Fallback, got)
}

func TestClient_ServerErrorReturnsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got := client.Summarize(context.Background(), "Broken", domain.CategoryNews)
	assert.Equal(t, Fallback, got)
}

func TestClient_EmptySummaryReturnsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(summarizeResponse{Summary: "   "})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got := client.Summarize(context.Background(), "Empty", domain.CategoryNews)
	assert.Equal(t, Fallback, got)
}

func TestClient_UnreachableReturnsFallback(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	got := client.Summarize(context.Background(), "Nowhere", domain.CategoryNews)
	assert.Equal(t, Fallback, got)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	for range 10 {
		got := client.Summarize(context.Background(), "Flaky", domain.CategoryNews)
		assert.Equal(t, Fallback, got)
	}

	// After five consecutive failures the breaker opens and short-circuits
	// the remaining calls without touching the upstream.
	assert.Equal(t, int64(5), calls.Load())
}
