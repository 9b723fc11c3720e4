package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/trendpulse/trendpulse/internal/domain"
	apperrors "github.com/trendpulse/trendpulse/internal/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Subscribers are anonymous; there is no origin to pin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleListTrends(c echo.Context) error {
	category := domain.Category(c.QueryParam("category"))
	region := c.QueryParam("region")

	list, err := s.app.ListTrends(c.Request().Context(), category, region)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetTrend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.ValidationError("id must be an integer")
	}

	trend, err := s.app.GetTrend(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trend)
}

func (s *Server) handleCreateTrend(c echo.Context) error {
	if !s.limiter.Allow() {
		return apperrors.RateLimitedError("too many submissions, slow down")
	}

	var draft domain.TrendDraft
	if err := c.Bind(&draft); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	trend, err := s.app.CreateTrend(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trend)
}

// handleWebSocket upgrades the connection, registers it with the hub, and
// then drains inbound frames until the client goes away. Subscriber input is
// not interpreted, only discarded.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("Failed to upgrade websocket", "error", err)
		return nil
	}

	id, err := s.hub.Register(conn)
	if err != nil {
		slog.Warn("Failed to register subscriber", "error", err)
		// Connection already closed by the hub on rejection.
		return nil
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(id)
	return nil
}
