package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Trend query and submission API
	s.echo.GET("/api/trends", s.handleListTrends)
	s.echo.GET("/api/trends/:id", s.handleGetTrend)
	s.echo.POST("/api/trends", s.handleCreateTrend)

	// Subscriber connection endpoint
	s.echo.GET("/ws", s.handleWebSocket)
}
