// Package storagetest provides storage doubles for tests of packages built
// on storage.Manager.
package storagetest

import (
	"context"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
)

// Failing is a Manager whose every operation returns Err.
type Failing struct {
	Err error
}

func (f Failing) Store() storage.Adapter { return failingAdapter(f) }
func (f Failing) Values() storage.KV     { return failingAdapter(f) }
func (f Failing) Close() error           { return nil }

func (f Failing) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	return fn(ctx, failingAdapter(f), failingAdapter(f))
}

type failingAdapter struct {
	Err error
}

func (a failingAdapter) List(context.Context, storage.Collection) ([]models.Record, error) {
	return nil, a.Err
}

func (a failingAdapter) Get(context.Context, storage.Collection, string) (*models.Record, error) {
	return nil, a.Err
}

func (a failingAdapter) Put(context.Context, storage.Collection, []models.Record) error {
	return a.Err
}

func (a failingAdapter) Insert(context.Context, storage.Collection, models.Record) error {
	return a.Err
}

func (a failingAdapter) Replace(context.Context, storage.Collection, models.Record) error {
	return a.Err
}

func (a failingAdapter) Remove(context.Context, storage.Collection, string) (bool, error) {
	return false, a.Err
}

func (a failingAdapter) GetValue(context.Context, string) ([]byte, error) {
	return nil, a.Err
}

func (a failingAdapter) SetValue(context.Context, string, []byte) error {
	return a.Err
}

// FailOn wraps a Manager and makes the named adapter operations fail with
// Err. Operation names are the Adapter method names ("Insert", "Remove"...).
type FailOn struct {
	storage.Manager
	Ops map[string]bool
	Err error
}

func (f *FailOn) Store() storage.Adapter {
	return &selectiveAdapter{next: f.Manager.Store(), ops: f.Ops, err: f.Err}
}

func (f *FailOn) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	return f.Manager.WithinTx(ctx, func(ctx context.Context, s storage.Adapter, kv storage.KV) error {
		return fn(ctx, &selectiveAdapter{next: s, ops: f.Ops, err: f.Err}, kv)
	})
}

type selectiveAdapter struct {
	next storage.Adapter
	ops  map[string]bool
	err  error
}

func (s *selectiveAdapter) List(ctx context.Context, c storage.Collection) ([]models.Record, error) {
	if s.ops["List"] {
		return nil, s.err
	}
	return s.next.List(ctx, c)
}

func (s *selectiveAdapter) Get(ctx context.Context, c storage.Collection, id string) (*models.Record, error) {
	if s.ops["Get"] {
		return nil, s.err
	}
	return s.next.Get(ctx, c, id)
}

func (s *selectiveAdapter) Put(ctx context.Context, c storage.Collection, records []models.Record) error {
	if s.ops["Put"] {
		return s.err
	}
	return s.next.Put(ctx, c, records)
}

func (s *selectiveAdapter) Insert(ctx context.Context, c storage.Collection, r models.Record) error {
	if s.ops["Insert"] {
		return s.err
	}
	return s.next.Insert(ctx, c, r)
}

func (s *selectiveAdapter) Replace(ctx context.Context, c storage.Collection, r models.Record) error {
	if s.ops["Replace"] {
		return s.err
	}
	return s.next.Replace(ctx, c, r)
}

func (s *selectiveAdapter) Remove(ctx context.Context, c storage.Collection, id string) (bool, error) {
	if s.ops["Remove"] {
		return false, s.err
	}
	return s.next.Remove(ctx, c, id)
}
