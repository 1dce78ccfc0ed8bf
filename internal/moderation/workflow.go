// Package moderation promotes or discards pending submissions.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
)

type Workflow struct {
	manager storage.Manager
	logger  logging.Logger
	newID   func() (string, error)
}

func NewWorkflow(manager storage.Manager, logger logging.Logger) *Workflow {
	return &Workflow{
		manager: manager,
		logger:  logger.With("module", "moderation"),
		newID:   models.NewID,
	}
}

// Approve publishes the submission with id under a fresh fact id and removes
// it from the pending collection. Both writes commit together.
func (w *Workflow) Approve(ctx context.Context, id string) (*models.Fact, error) {
	var published models.Fact
	err := w.manager.WithinTx(ctx, func(ctx context.Context, s storage.Adapter, _ storage.KV) error {
		rec, err := s.Get(ctx, storage.CollectionSubmissions, id)
		if err != nil {
			return err
		}
		sub := models.SubmittedFromRecord(*rec)

		factID, err := w.newID()
		if err != nil {
			return err
		}
		published = models.Fact{
			ID:          factID,
			Text:        sub.Text,
			Category:    sub.Category,
			SubmittedBy: sub.SubmittedBy,
			Source:      sub.Source,
			CreatedAt:   sub.CreatedAt,
			Approved:    true,
		}

		if err := s.Insert(ctx, storage.CollectionFacts, published.Record()); err != nil {
			return err
		}
		if _, err := s.Remove(ctx, storage.CollectionSubmissions, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		w.logger.Error(ctx, "approve failed", "submission_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorOperationFailed, err)
	}

	w.logger.Info(ctx, "submission moderated",
		"submission_id", id, "fact_id", published.ID,
		"from", models.StatePending, "to", models.StatePublished)
	return &published, nil
}

// Reject discards the submission with id. Rejecting a missing id is not an
// error.
func (w *Workflow) Reject(ctx context.Context, id string) error {
	removed, err := w.manager.Store().Remove(ctx, storage.CollectionSubmissions, id)
	if err != nil {
		w.logger.Error(ctx, "reject failed", "submission_id", id, "error", err)
		return fmt.Errorf("%w: %w", common.ErrorOperationFailed, err)
	}
	if removed {
		w.logger.Info(ctx, "submission moderated",
			"submission_id", id, "from", models.StatePending, "to", models.StateRejected)
	}
	return nil
}
