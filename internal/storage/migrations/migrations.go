// Package migrations embeds the goose schema migrations for both SQL
// backends and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dialect selects a migration set.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration of the given dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var gooseDialect string
	switch dialect {
	case Postgres:
		gooseDialect = "pgx"
	case SQLite:
		gooseDialect = "sqlite3"
	default:
		return fmt.Errorf("unknown migration dialect %q", dialect)
	}

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(dialect)); err != nil {
		return fmt.Errorf("run %s migrations: %w", dialect, err)
	}
	return nil
}
