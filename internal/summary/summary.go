// Package summary provides the client boundary to the external AI summarizer.
//
// The summarizer is best-effort: every failure path (disabled, breaker open,
// transport error, bad status, empty body) yields the fallback string, never
// an error. Trend creation must not depend on a flaky upstream.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/trendpulse/trendpulse/internal/domain"
	"github.com/trendpulse/trendpulse/internal/metrics"
)

// Fallback is returned whenever no summary could be obtained.
const Fallback = "No summary available."

const requestTimeout = 10 * time.Second

// Summarizer produces a human-readable explanation for a trend.
type Summarizer interface {
	Summarize(ctx context.Context, title string, category domain.Category) string
}

// Client calls an external HTTP summarizer guarded by a circuit breaker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

var _ Summarizer = (*Client)(nil)

// NewClient creates a summarizer client. An empty baseURL disables the
// client; Summarize then returns the fallback immediately.
func NewClient(baseURL string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "summarizer",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, _, to gobreaker.State) {
			metrics.SummarizerBreakerState.Set(breakerStateValue(to))
			slog.Info("Summarizer circuit breaker state changed", "state", to.String())
		},
	})

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		breaker:    breaker,
	}
}

type summarizeRequest struct {
	Title    string          `json:"title"`
	Category domain.Category `json:"category"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize obtains an AI summary for a trend, or the fallback string.
func (c *Client) Summarize(ctx context.Context, title string, category domain.Category) string {
	if c.baseURL == "" {
		metrics.SummarizerRequestsTotal.WithLabelValues("fallback").Inc()
		return Fallback
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.call(ctx, title, category)
	})
	if err != nil {
		slog.Warn("Summarizer call failed, using fallback", "title", title, "error", err)
		metrics.SummarizerRequestsTotal.WithLabelValues("fallback").Inc()
		return Fallback
	}

	metrics.SummarizerRequestsTotal.WithLabelValues("ok").Inc()
	return result.(string)
}

func (c *Client) call(ctx context.Context, title string, category domain.Category) (string, error) {
	body, err := json.Marshal(summarizeRequest{Title: title, Category: category})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed summarizeResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", fmt.Errorf("summarizer returned empty summary")
	}

	return parsed.Summary, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
