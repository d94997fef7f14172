package database

import (
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

// Migrator applies the embedded SQL migrations with goose.
type Migrator struct {
	db  *sqlx.DB
	dir string
}

// NewMigrator creates a Migrator reading migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("mysql"); err != nil {
		return nil, fmt.Errorf("goose.SetDialect() > %w", err)
	}
	return &Migrator{db: db, dir: dir}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	if err := goose.Up(m.db.DB, m.dir); err != nil {
		return fmt.Errorf("goose.Up() > %w", err)
	}
	return nil
}

// Down rolls back the latest migration.
func (m *Migrator) Down() error {
	if err := goose.Down(m.db.DB, m.dir); err != nil {
		return fmt.Errorf("goose.Down() > %w", err)
	}
	return nil
}

// Status logs the state of every migration.
func (m *Migrator) Status() error {
	if err := goose.Status(m.db.DB, m.dir); err != nil {
		return fmt.Errorf("goose.Status() > %w", err)
	}
	return nil
}
