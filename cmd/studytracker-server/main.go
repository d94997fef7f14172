package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/studytracker/internal/bootstrap"
	"github.com/at-ishikawa/studytracker/internal/config"
	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
	"github.com/at-ishikawa/studytracker/internal/server"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "studytracker-server",
		Short:         "Study metrics HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func run(ctx context.Context) error {
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("cfg.Location() > %w", err)
	}

	handler, backend, err := newHandler(ctx, cfg, loc)
	if err != nil {
		return err
	}
	app.AddShutdownHook("store", func(context.Context) error {
		return backend.Close()
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("store", cfg.Store.Driver),
			slog.String("timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func newHandler(ctx context.Context, cfg *config.Config, loc *time.Location) (*server.Server, eventstore.Backend, error) {
	defaults, err := goals.FromConfig(cfg.Goals)
	if err != nil {
		return nil, eventstore.Backend{}, fmt.Errorf("goals.FromConfig() > %w", err)
	}
	book, err := goals.NewBook(defaults)
	if err != nil {
		return nil, eventstore.Backend{}, fmt.Errorf("goals.NewBook() > %w", err)
	}

	backend, err := eventstore.Open(ctx, *cfg, cfg.Server.StartupPingAttempts)
	if err != nil {
		return nil, eventstore.Backend{}, fmt.Errorf("eventstore.Open() > %w", err)
	}

	return server.New(server.Options{
		Store:          backend.Store,
		Recorder:       backend.Recorder,
		Generator:      report.NewGenerator(backend.Store, loc),
		Tracker:        goals.NewTracker(backend.Store, book, loc),
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		Debug:          debugMode,
	}), backend, nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
