package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/trendpulse/internal/domain"
)

func TestError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{RateLimitedError("slow down"), http.StatusTooManyRequests},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), "type %s", tc.err.Type)
	}
}

func TestError_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ExternalError("summarizer unavailable", cause)

	assert.Contains(t, err.Error(), "external")
	assert.Contains(t, err.Error(), "summarizer unavailable")
	assert.Contains(t, err.Error(), "root cause")
	assert.ErrorIs(t, err, cause)
}

func TestError_WithContext(t *testing.T) {
	err := ValidationError("bad category").WithContext("category", "memes")

	resp := err.ToResponse()
	assert.Equal(t, "bad category", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "memes", resp.Context["category"])
}

func TestAsStructuredError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, AsStructuredError(nil))
	})

	t.Run("passthrough", func(t *testing.T) {
		original := NotFoundError("missing")
		assert.Same(t, original, AsStructuredError(original))
	})

	t.Run("wrapped structured error", func(t *testing.T) {
		original := ValidationError("bad")
		wrapped := fmt.Errorf("handler: %w", original)
		assert.Same(t, original, AsStructuredError(wrapped))
	})

	t.Run("domain not found sentinel", func(t *testing.T) {
		got := AsStructuredError(fmt.Errorf("lookup: %w", domain.ErrTrendNotFound))
		require.NotNil(t, got)
		assert.Equal(t, TypeNotFound, got.Type)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		got := AsStructuredError(fmt.Errorf("weird failure"))
		require.NotNil(t, got)
		assert.Equal(t, TypeInternal, got.Type)
	})
}
