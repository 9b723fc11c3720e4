// Package server wires the HTTP surface: REST trend queries, the submission
// intake, the websocket subscribe endpoint, and observability routes.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/trendpulse/trendpulse/internal/app"
	"github.com/trendpulse/trendpulse/internal/config"
	apperrors "github.com/trendpulse/trendpulse/internal/errors"
	"github.com/trendpulse/trendpulse/internal/hub"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       *app.Service
	hub       *hub.Hub
	limiter   *rate.Limiter
	startTime time.Time
}

func NewServer(cfg *config.Config, appSvc *app.Service, h *hub.Hub) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       appSvc,
		hub:       h,
		limiter:   rate.NewLimiter(rate.Limit(cfg.SubmissionRate), cfg.SubmissionBurst),
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
