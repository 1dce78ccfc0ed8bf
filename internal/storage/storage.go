// Package storage is the persistence adapter for facts and submissions.
//
// Two collections exist: published facts and pending submissions. Every
// backend exposes them through Adapter and keeps small JSON values (admin
// password, visitor reactions) behind KV. A Manager hands out both and can
// run a function against a transactional pair.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/models"
)

// Collection names a record collection.
type Collection string

const (
	CollectionFacts       Collection = "facts"
	CollectionSubmissions Collection = "submitted_facts"
)

func (c Collection) key() (string, error) {
	switch c {
	case CollectionFacts:
		return common.KeyFacts, nil
	case CollectionSubmissions:
		return common.KeySubmissions, nil
	}
	return "", fmt.Errorf("unknown collection %q", string(c))
}

// Adapter reads and writes record collections.
type Adapter interface {
	// List returns every record of the collection.
	List(ctx context.Context, c Collection) ([]models.Record, error)
	// Get returns one record or common.ErrorNotFound.
	Get(ctx context.Context, c Collection, id string) (*models.Record, error)
	// Put replaces the whole collection.
	Put(ctx context.Context, c Collection, records []models.Record) error
	// Insert adds one record. A duplicate id yields common.ErrorAlreadyExists.
	Insert(ctx context.Context, c Collection, r models.Record) error
	// Replace overwrites the record with r.ID or returns common.ErrorNotFound.
	Replace(ctx context.Context, c Collection, r models.Record) error
	// Remove deletes a record and reports whether it existed.
	Remove(ctx context.Context, c Collection, id string) (bool, error)
}

// KV stores opaque values under string keys.
type KV interface {
	// GetValue returns (nil, nil) when the key is absent.
	GetValue(ctx context.Context, key string) ([]byte, error)
	SetValue(ctx context.Context, key string, value []byte) error
}

// TxFunc runs against a transactional adapter and key/value store.
type TxFunc func(ctx context.Context, store Adapter, values KV) error

// Manager vends the adapter and key/value store of one backend.
type Manager interface {
	Store() Adapter
	Values() KV
	// WithinTx runs fn so that all its writes land together or not at all.
	WithinTx(ctx context.Context, fn TxFunc) error
	Close() error
}
