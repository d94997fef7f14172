package eventstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytracker/internal/config"
	"github.com/at-ishikawa/studytracker/internal/database"
)

// startupPingDelay is the pause between database pings at startup.
const startupPingDelay = time.Second

// Backend is the store selected by configuration. Recorder is nil when
// the driver is read-only, and DB is nil unless the driver is db.
type Backend struct {
	Store    Store
	Recorder Recorder
	DB       *sqlx.DB
}

// Open builds the configured store. For the db driver it waits until the
// database answers a ping, up to pingAttempts times.
func Open(ctx context.Context, cfg config.Config, pingAttempts uint) (Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverYAML:
		return Backend{Store: NewYAMLStore(cfg.Store.YAMLFile)}, nil
	case config.StoreDriverDB, "":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return Backend{}, unavailable("database.Open", err)
		}
		if err := database.WaitReady(ctx, db, pingAttempts, startupPingDelay); err != nil {
			_ = db.Close()
			return Backend{}, unavailable("database.WaitReady", err)
		}
		store := NewDBStore(db)
		return Backend{Store: store, Recorder: store, DB: db}, nil
	}
	return Backend{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Close releases the database handle, if any.
func (b Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
