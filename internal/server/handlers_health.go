package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness reports ready once the hub actor is responsive. The store
// is in-memory, so there is no backend to probe.
func (s *Server) handleReadiness(c echo.Context) error {
	if s.hub.ClientCount() < 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "hub",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
