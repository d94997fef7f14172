package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studytracker/internal/apiclient"
	"github.com/at-ishikawa/studytracker/internal/cli"
	"github.com/at-ishikawa/studytracker/internal/config"
	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

// storePingAttempts is low because the CLI should fail fast.
const storePingAttempts = 1

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch storeDriver {
	case "":
	case config.StoreDriverDB, config.StoreDriverYAML:
		cfg.Store.Driver = storeDriver
	default:
		return nil, fmt.Errorf("--store must be %s or %s, got %q", config.StoreDriverDB, config.StoreDriverYAML, storeDriver)
	}
	if cfg.Store.Driver == config.StoreDriverYAML && cfg.Store.YAMLFile == "" {
		return nil, errors.New("store.yaml_file is required for the yaml store")
	}
	return cfg, nil
}

// parseAsOf returns the clock for --as-of. A bare date means the end of
// that day in loc.
func parseAsOf(value string, loc *time.Location) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		endOfDay := t.AddDate(0, 0, 1).Add(-time.Second)
		return func() time.Time { return endOfDay }, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("--as-of must be YYYY-MM-DD or RFC3339: %w", err)
	}
	return func() time.Time { return t }, nil
}

// workspace is everything a command needs. backend is only opened when
// the command reads or writes the local store.
type workspace struct {
	cfg       *config.Config
	loc       *time.Location
	now       func() time.Time
	backend   eventstore.Backend
	generator *report.Generator
	tracker   *goals.Tracker
	remote    *apiclient.Client
}

func openWorkspace(ctx context.Context, needStore bool) (*workspace, error) {
	if serverURL != "" && asOf != "" {
		return nil, errors.New("--as-of only applies to the local store and cannot be used with --server")
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("cfg.Location() > %w", err)
	}
	now, err := parseAsOf(asOf, loc)
	if err != nil {
		return nil, err
	}
	defaults, err := goals.FromConfig(cfg.Goals)
	if err != nil {
		return nil, fmt.Errorf("goals.FromConfig() > %w", err)
	}
	book, err := goals.NewBook(defaults)
	if err != nil {
		return nil, fmt.Errorf("goals.NewBook() > %w", err)
	}

	w := &workspace{cfg: cfg, loc: loc, now: now}
	if serverURL != "" {
		w.remote = apiclient.NewClient(serverURL, apiclient.DefaultTimeout)
	}
	if !needStore {
		return w, nil
	}

	w.backend, err = eventstore.Open(ctx, *cfg, storePingAttempts)
	if err != nil {
		return nil, fmt.Errorf("eventstore.Open() > %w", err)
	}
	w.generator = report.NewGenerator(w.backend.Store, loc).WithClock(now)
	w.tracker = goals.NewTracker(w.backend.Store, book, loc).WithClock(now)
	return w, nil
}

func (w *workspace) Close() {
	if err := w.backend.Close(); err != nil {
		slog.Default().Error("failed to close the store", slog.Any("error", err))
	}
}

// source reads from the server when --server is set.
func (w *workspace) source() cli.ReportSource {
	if w.remote != nil {
		return w.remote
	}
	return cli.LocalSource{Generator: w.generator, Tracker: w.tracker}
}

func (w *workspace) recorder() (eventstore.Recorder, error) {
	if w.backend.Recorder == nil {
		return nil, fmt.Errorf("the %s store is read-only; use --store %s", w.cfg.Store.Driver, config.StoreDriverDB)
	}
	return w.backend.Recorder, nil
}

// userName is best effort; reports render without it.
func (w *workspace) userName(ctx context.Context) string {
	if w.backend.Store == nil {
		return ""
	}
	user, err := w.backend.Store.User(ctx, userID)
	if err != nil {
		slog.Default().Debug("user name is unavailable", slog.Int64("user", userID), slog.Any("error", err))
		return ""
	}
	return user.Name
}

// dateRange is a pair of inclusive YYYY-MM-DD flags.
type dateRange struct {
	from string
	to   string
}

func (r *dateRange) addFlags(fs *pflag.FlagSet, what string) {
	fs.StringVar(&r.from, "from", "", "first day of the "+what+" (YYYY-MM-DD)")
	fs.StringVar(&r.to, "to", "", "last day of the "+what+" (YYYY-MM-DD, inclusive)")
}

func (r dateRange) isSet() bool {
	return r.from != "" || r.to != ""
}

// interval converts the range into a half-open interval. Missing ends
// default to defaultFrom and defaultFrom+defaultDays.
func (r dateRange) interval(loc *time.Location, defaultFrom time.Time, defaultDays int) (eventstore.Interval, error) {
	from := defaultFrom
	if r.from != "" {
		t, err := time.ParseInLocation(time.DateOnly, r.from, loc)
		if err != nil {
			return eventstore.Interval{}, fmt.Errorf("--from: %w", err)
		}
		from = t
	}
	end := from.AddDate(0, 0, defaultDays)
	if r.to != "" {
		t, err := time.ParseInLocation(time.DateOnly, r.to, loc)
		if err != nil {
			return eventstore.Interval{}, fmt.Errorf("--to: %w", err)
		}
		end = t.AddDate(0, 0, 1)
	}
	return eventstore.NewInterval(from, end)
}

func parseTimestamp(value string, loc *time.Location, now func() time.Time) (time.Time, error) {
	if value == "" {
		return now().In(loc), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q must be YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339", value)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
