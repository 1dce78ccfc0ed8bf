package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/dbx"
	"github.com/dmitrijs2005/factkeeper/internal/filex"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// bindFunc builds the adapter and key/value store over a DBTX, which is
// either the pool or an open transaction.
type bindFunc func(db dbx.DBTX) (Adapter, KV)

// SQLManager is a Manager over a database/sql pool.
type SQLManager struct {
	db   *sql.DB
	bind bindFunc
}

func (m *SQLManager) Store() Adapter {
	a, _ := m.bind(m.db)
	return a
}

func (m *SQLManager) Values() KV {
	_, kv := m.bind(m.db)
	return kv
}

// WithinTx runs fn inside one database transaction.
func (m *SQLManager) WithinTx(ctx context.Context, fn TxFunc) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		a, kv := m.bind(tx)
		return fn(ctx, a, kv)
	})
}

func (m *SQLManager) Close() error {
	return m.db.Close()
}

// NewLocalManager opens the SQLite file named by dsn and stores both
// collections as JSON arrays in its kv table. The facts collection starts
// out as seed.
func NewLocalManager(ctx context.Context, dsn, prefix string, seed []models.Fact) (*SQLManager, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrations.Up(ctx, db, migrations.SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}

	return newLocalSQLManager(db, prefix, seed, time.Now), nil
}

func newLocalSQLManager(db *sql.DB, prefix string, seed []models.Fact, now func() time.Time) *SQLManager {
	return &SQLManager{
		db: db,
		bind: func(conn dbx.DBTX) (Adapter, KV) {
			kv := withPrefix(newSQLiteKV(conn), prefix)
			return newLocalAdapter(kv, seed, now), kv
		},
	}
}

// NewRemoteManager connects to PostgreSQL through pgx and runs the schema
// migrations.
func NewRemoteManager(ctx context.Context, dsn, prefix string) (*SQLManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrations.Up(ctx, db, migrations.Postgres); err != nil {
		_ = db.Close()
		return nil, err
	}

	return newRemoteSQLManager(db, prefix), nil
}

func newRemoteSQLManager(db *sql.DB, prefix string) *SQLManager {
	return &SQLManager{
		db: db,
		bind: func(conn dbx.DBTX) (Adapter, KV) {
			return NewPostgresAdapter(conn), withPrefix(newPostgresKV(conn), prefix)
		},
	}
}
