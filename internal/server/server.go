package server

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/context"

	"github.com/nexusai/newsnexus/internal/apperr"
	mw "github.com/nexusai/newsnexus/pkg/middleware"
	pkgserver "github.com/nexusai/newsnexus/pkg/server"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg     *Config
	checker pkgserver.HealthChecker
}

func New(cfg *Config, checker pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		Echo:    e,
		cfg:     cfg,
		checker: checker,
	}

	s.setupMiddlewares()
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler()
	s.Echo.GET("/health", s.healthHandler)

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
}

func (s *Server) healthHandler(c echo.Context) error {
	status := "ok"
	code := http.StatusOK
	if s.checker != nil && !s.checker.Healthy(c.Request().Context()) {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Start serves until SIGINT, then drains with a bounded shutdown.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.Echo.Logger.Fatal(err)
		return err
	}
	return nil
}
