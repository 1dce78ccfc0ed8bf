package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/models"
)

// localAdapter keeps each collection as one JSON array inside a KV. Row
// operations read the whole array, change it and write it back.
type localAdapter struct {
	kv   KV
	seed []models.Fact
	now  func() time.Time
}

func newLocalAdapter(kv KV, seed []models.Fact, now func() time.Time) *localAdapter {
	return &localAdapter{kv: kv, seed: seed, now: now}
}

// load returns the stored array, writing the initial contents first when the
// key has never been set.
func (a *localAdapter) load(ctx context.Context, c Collection) ([]models.Record, error) {
	key, err := c.key()
	if err != nil {
		return nil, err
	}

	raw, err := a.kv.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		initial := a.initial(c)
		if err := a.save(ctx, c, initial); err != nil {
			return nil, err
		}
		return initial, nil
	}

	var records []models.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

func (a *localAdapter) initial(c Collection) []models.Record {
	records := []models.Record{}
	if c != CollectionFacts {
		return records
	}
	ts := a.now().UTC()
	for _, f := range a.seed {
		r := f.Record()
		if r.CreatedAt.IsZero() {
			r.CreatedAt = ts
		}
		r.Approved = true
		records = append(records, r)
	}
	return records
}

func (a *localAdapter) save(ctx context.Context, c Collection, records []models.Record) error {
	key, err := c.key()
	if err != nil {
		return err
	}
	if records == nil {
		records = []models.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return a.kv.SetValue(ctx, key, raw)
}

func (a *localAdapter) List(ctx context.Context, c Collection) ([]models.Record, error) {
	return a.load(ctx, c)
}

func (a *localAdapter) Get(ctx context.Context, c Collection, id string) (*models.Record, error) {
	records, err := a.load(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (a *localAdapter) Put(ctx context.Context, c Collection, records []models.Record) error {
	return a.save(ctx, c, records)
}

func (a *localAdapter) Insert(ctx context.Context, c Collection, r models.Record) error {
	records, err := a.load(ctx, c)
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.ID == r.ID {
			return fmt.Errorf("%s %s: %w", c, r.ID, common.ErrorAlreadyExists)
		}
	}
	return a.save(ctx, c, append(records, r))
}

func (a *localAdapter) Replace(ctx context.Context, c Collection, r models.Record) error {
	records, err := a.load(ctx, c)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == r.ID {
			records[i] = r
			return a.save(ctx, c, records)
		}
	}
	return common.ErrorNotFound
}

func (a *localAdapter) Remove(ctx context.Context, c Collection, id string) (bool, error) {
	records, err := a.load(ctx, c)
	if err != nil {
		return false, err
	}
	kept := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	return true, a.save(ctx, c, kept)
}
