// Package facts is the fact repository: the only entry point the
// transports use to read and change published facts and pending
// submissions.
package facts

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
)

// Repository reads degrade to an empty result when storage fails; writes
// return common.ErrorOperationFailed wrapped around the cause.
type Repository struct {
	manager storage.Manager
	logger  logging.Logger
	now     func() time.Time
	newID   func() (string, error)
	intn    func(n int) int
}

func NewRepository(manager storage.Manager, logger logging.Logger) *Repository {
	return &Repository{
		manager: manager,
		logger:  logger.With("module", "facts"),
		now:     time.Now,
		newID:   models.NewID,
		intn:    rand.IntN,
	}
}

func failed(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorOperationFailed, err)
}

func newestFirst(records []models.Record) {
	slices.SortStableFunc(records, func(a, b models.Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func (r *Repository) published(ctx context.Context) []models.Fact {
	records, err := r.manager.Store().List(ctx, storage.CollectionFacts)
	if err != nil {
		r.logger.Error(ctx, "list facts failed", "error", err)
		return []models.Fact{}
	}
	newestFirst(records)

	out := make([]models.Fact, 0, len(records))
	for _, rec := range records {
		out = append(out, models.FactFromRecord(rec))
	}
	return out
}

// ListPublished returns every published fact, newest first.
func (r *Repository) ListPublished(ctx context.Context) []models.Fact {
	return r.published(ctx)
}

// ListPublishedByCategory returns published facts whose category equals
// category exactly.
func (r *Repository) ListPublishedByCategory(ctx context.Context, category string) []models.Fact {
	all := r.published(ctx)
	out := make([]models.Fact, 0, len(all))
	for _, f := range all {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Get returns one published fact.
func (r *Repository) Get(ctx context.Context, id string) (*models.Fact, error) {
	rec, err := r.manager.Store().Get(ctx, storage.CollectionFacts, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, failed(err)
	}
	f := models.FactFromRecord(*rec)
	return &f, nil
}

// Search matches term case-insensitively against text and category. An
// empty term matches everything.
func (r *Repository) Search(ctx context.Context, term string) []models.Fact {
	all := r.published(ctx)
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}
	out := make([]models.Fact, 0, len(all))
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Text), term) || strings.Contains(strings.ToLower(f.Category), term) {
			out = append(out, f)
		}
	}
	return out
}

// Random picks one published fact, optionally within category. excludeID is
// skipped unless it is the only candidate.
func (r *Repository) Random(ctx context.Context, category, excludeID string) (*models.Fact, error) {
	var pool []models.Fact
	if category == "" {
		pool = r.published(ctx)
	} else {
		pool = r.ListPublishedByCategory(ctx, category)
	}
	if len(pool) == 0 {
		return nil, common.ErrorNotFound
	}

	if excludeID != "" && len(pool) > 1 {
		filtered := make([]models.Fact, 0, len(pool))
		for _, f := range pool {
			if f.ID != excludeID {
				filtered = append(filtered, f)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	f := pool[r.intn(len(pool))]
	return &f, nil
}

// Create publishes a new fact.
func (r *Repository) Create(ctx context.Context, in models.FactInput) (*models.Fact, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := r.newID()
	if err != nil {
		return nil, failed(err)
	}
	f := models.Fact{
		ID:          id,
		Text:        in.Text,
		Category:    in.Category,
		SubmittedBy: in.SubmittedBy,
		Source:      in.Source,
		CreatedAt:   r.now().UTC(),
		Approved:    true,
	}

	if err := r.manager.Store().Insert(ctx, storage.CollectionFacts, f.Record()); err != nil {
		r.logger.Error(ctx, "create fact failed", "error", err)
		return nil, failed(err)
	}
	r.logger.Info(ctx, "fact created", "fact_id", f.ID, "category", f.Category)
	return &f, nil
}

// Update merges patch into the fact with id. The merged fact is validated
// before anything is written.
func (r *Repository) Update(ctx context.Context, id string, patch models.FactPatch) (*models.Fact, error) {
	var updated models.Fact
	err := r.manager.WithinTx(ctx, func(ctx context.Context, s storage.Adapter, _ storage.KV) error {
		rec, err := s.Get(ctx, storage.CollectionFacts, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(models.FactFromRecord(*rec))
		if err := models.ValidateFact(updated); err != nil {
			return err
		}
		return s.Replace(ctx, storage.CollectionFacts, updated.Record())
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		r.logger.Error(ctx, "update fact failed", "fact_id", id, "error", err)
		return nil, failed(err)
	}
	r.logger.Info(ctx, "fact updated", "fact_id", id)
	return &updated, nil
}

// Delete removes a published fact. Deleting a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	removed, err := r.manager.Store().Remove(ctx, storage.CollectionFacts, id)
	if err != nil {
		r.logger.Error(ctx, "delete fact failed", "fact_id", id, "error", err)
		return failed(err)
	}
	if removed {
		r.logger.Info(ctx, "fact deleted", "fact_id", id)
	}
	return nil
}

// Import replaces every published fact with facts. Facts without an id get
// a fresh one; zero timestamps become now.
func (r *Repository) Import(ctx context.Context, facts []models.Fact) error {
	ts := r.now().UTC()
	records := make([]models.Record, 0, len(facts))
	seen := make(map[string]struct{}, len(facts))
	for i, f := range facts {
		f = f.Normalize()
		if err := models.ValidateFact(f); err != nil {
			return fmt.Errorf("fact #%d: %w", i+1, err)
		}
		if f.ID == "" {
			id, err := r.newID()
			if err != nil {
				return failed(err)
			}
			f.ID = id
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", common.ErrorValidation, f.ID)
		}
		seen[f.ID] = struct{}{}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = ts
		}
		f.Approved = true
		records = append(records, f.Record())
	}

	if err := r.manager.Store().Put(ctx, storage.CollectionFacts, records); err != nil {
		r.logger.Error(ctx, "import facts failed", "error", err)
		return failed(err)
	}
	r.logger.Info(ctx, "facts imported", "count", len(records))
	return nil
}

// ListPending returns every submission awaiting moderation, newest first.
func (r *Repository) ListPending(ctx context.Context) []models.SubmittedFact {
	records, err := r.manager.Store().List(ctx, storage.CollectionSubmissions)
	if err != nil {
		r.logger.Error(ctx, "list submissions failed", "error", err)
		return []models.SubmittedFact{}
	}
	newestFirst(records)

	out := make([]models.SubmittedFact, 0, len(records))
	for _, rec := range records {
		out = append(out, models.SubmittedFromRecord(rec))
	}
	return out
}

// Submit records a public suggestion as pending.
func (r *Repository) Submit(ctx context.Context, in models.SubmissionInput) (*models.SubmittedFact, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := r.newID()
	if err != nil {
		return nil, failed(err)
	}
	s := models.SubmittedFact{
		ID:          id,
		Text:        in.Text,
		Category:    in.Category,
		SubmittedBy: in.SubmittedBy,
		Source:      in.Source,
		CreatedAt:   r.now().UTC(),
	}

	if err := r.manager.Store().Insert(ctx, storage.CollectionSubmissions, s.Record()); err != nil {
		r.logger.Error(ctx, "submit fact failed", "error", err)
		return nil, failed(err)
	}
	r.logger.Info(ctx, "fact submitted", "submission_id", s.ID, "state", models.StatePending)
	return &s, nil
}
