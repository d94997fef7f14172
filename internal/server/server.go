// Package server serves study metrics and event recording over an HTTP
// JSON API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

// Options are the dependencies of the API. Recorder may be nil for
// read-only stores, in which case write endpoints answer 501.
type Options struct {
	Store          eventstore.Store
	Recorder       eventstore.Recorder
	Generator      *report.Generator
	Tracker        *goals.Tracker
	AllowedOrigins []string
	DisableReqLogs bool
	Debug          bool
}

// Server is the echo application. It implements http.Handler so it can be
// wrapped by h2c and served by a plain http.Server.
type Server struct {
	opts Options
	app  *echo.Echo
}

var _ http.Handler = (*Server)(nil)

// New creates a Server with every route registered.
func New(opts Options) *Server {
	s := &Server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug
	s.app.HTTPErrorHandler = httpErrorHandler

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger())
	}
	s.app.Use(middleware.Recover())
	if len(s.opts.AllowedOrigins) > 0 {
		s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
			MaxAge:       3600,
		}))
	}

	s.app.GET("/healthz", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	v1 := s.app.Group("/v1")
	api := &metricsAPI{
		store:     s.opts.Store,
		recorder:  s.opts.Recorder,
		generator: s.opts.Generator,
		tracker:   s.opts.Tracker,
	}
	api.register(v1)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
				slog.Default().LogAttrs(ctx.Request().Context(), slog.LevelWarn, "request failed", attrs...)
				return nil
			}
			slog.Default().LogAttrs(ctx.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}
