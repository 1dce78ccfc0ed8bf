package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/dbx"
)

// sqlKV is a key/value table reachable through a DBTX.
type sqlKV struct {
	db       dbx.DBTX
	getQuery string
	setQuery string
}

func newSQLiteKV(db dbx.DBTX) *sqlKV {
	return &sqlKV{
		db:       db,
		getQuery: `SELECT value FROM kv WHERE key = ?`,
		setQuery: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	}
}

func newPostgresKV(db dbx.DBTX) *sqlKV {
	return &sqlKV{
		db:       db,
		getQuery: `SELECT value FROM settings WHERE key = $1`,
		setQuery: `INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	}
}

func (r *sqlKV) GetValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value[%s]: %w", key, err)
	}
	return value, nil
}

func (r *sqlKV) SetValue(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.setQuery, key, value); err != nil {
		return fmt.Errorf("failed to set value[%s]: %w", key, err)
	}
	return nil
}

// namespacedKV prefixes every key.
type namespacedKV struct {
	next   KV
	prefix string
}

func withPrefix(next KV, prefix string) KV {
	return &namespacedKV{next: next, prefix: prefix}
}

func (n *namespacedKV) GetValue(ctx context.Context, key string) ([]byte, error) {
	return n.next.GetValue(ctx, common.NamespacedKey(n.prefix, key))
}

func (n *namespacedKV) SetValue(ctx context.Context, key string, value []byte) error {
	return n.next.SetValue(ctx, common.NamespacedKey(n.prefix, key), value)
}

// memKV is a map guarded by a mutex.
type memKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{values: map[string][]byte{}}
}

func (m *memKV) GetValue(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) SetValue(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) snapshot() *memKV {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make(map[string][]byte, len(m.values))
	for k, v := range m.values {
		cp[k] = v
	}
	return &memKV{values: cp}
}

func (m *memKV) restore(from *memKV) {
	from.mu.RLock()
	defer from.mu.RUnlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = from.values
}
