// Package reactions tracks per-visitor bookmarks, likes and dislikes.
package reactions

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
)

// State lists the fact ids a visitor has reacted to.
type State struct {
	Bookmarks []string `json:"bookmarks"`
	Liked     []string `json:"liked"`
	Disliked  []string `json:"disliked"`
}

type Service struct {
	manager storage.Manager
	logger  logging.Logger
}

func NewService(manager storage.Manager, logger logging.Logger) *Service {
	return &Service{manager: manager, logger: logger.With("module", "reactions")}
}

func key(name, visitor string) string {
	return common.NamespacedKey("", name, visitor)
}

func checkVisitor(visitor string) error {
	if strings.TrimSpace(visitor) == "" {
		return fmt.Errorf("%w: visitor id is required", common.ErrorValidation)
	}
	return nil
}

func readSet(ctx context.Context, kv storage.KV, k string) ([]string, error) {
	raw, err := kv.GetValue(ctx, k)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	if raw == nil {
		return ids, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", k, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func writeSet(ctx context.Context, kv storage.KV, k string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return kv.SetValue(ctx, k, raw)
}

func toggle(ids []string, id string) ([]string, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1), false
	}
	return append(ids, id), true
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

func readState(ctx context.Context, kv storage.KV, visitor string) (State, error) {
	var st State
	var err error
	if st.Bookmarks, err = readSet(ctx, kv, key(common.KeyBookmarks, visitor)); err != nil {
		return State{}, err
	}
	if st.Liked, err = readSet(ctx, kv, key(common.KeyLiked, visitor)); err != nil {
		return State{}, err
	}
	if st.Disliked, err = readSet(ctx, kv, key(common.KeyDisliked, visitor)); err != nil {
		return State{}, err
	}
	return st, nil
}

func writeState(ctx context.Context, kv storage.KV, visitor string, st State) error {
	if err := writeSet(ctx, kv, key(common.KeyBookmarks, visitor), st.Bookmarks); err != nil {
		return err
	}
	if err := writeSet(ctx, kv, key(common.KeyLiked, visitor), st.Liked); err != nil {
		return err
	}
	return writeSet(ctx, kv, key(common.KeyDisliked, visitor), st.Disliked)
}

func (s *Service) update(ctx context.Context, visitor, factID string, change func(*State)) (State, error) {
	if err := checkVisitor(visitor); err != nil {
		return State{}, err
	}
	if strings.TrimSpace(factID) == "" {
		return State{}, fmt.Errorf("%w: fact id is required", common.ErrorValidation)
	}

	var st State
	err := s.manager.WithinTx(ctx, func(ctx context.Context, _ storage.Adapter, kv storage.KV) error {
		var err error
		if st, err = readState(ctx, kv, visitor); err != nil {
			return err
		}
		change(&st)
		return writeState(ctx, kv, visitor, st)
	})
	if err != nil {
		s.logger.Error(ctx, "update reactions failed", "visitor", visitor, "fact_id", factID, "error", err)
		return State{}, fmt.Errorf("%w: %w", common.ErrorOperationFailed, err)
	}
	return st, nil
}

// ToggleBookmark adds or removes factID from the visitor's bookmarks.
func (s *Service) ToggleBookmark(ctx context.Context, visitor, factID string) (State, error) {
	return s.update(ctx, visitor, factID, func(st *State) {
		st.Bookmarks, _ = toggle(st.Bookmarks, factID)
	})
}

// ToggleLike flips the like on factID. Liking clears a dislike.
func (s *Service) ToggleLike(ctx context.Context, visitor, factID string) (State, error) {
	return s.update(ctx, visitor, factID, func(st *State) {
		var added bool
		st.Liked, added = toggle(st.Liked, factID)
		if added {
			st.Disliked = without(st.Disliked, factID)
		}
	})
}

// ToggleDislike flips the dislike on factID. Disliking clears a like.
func (s *Service) ToggleDislike(ctx context.Context, visitor, factID string) (State, error) {
	return s.update(ctx, visitor, factID, func(st *State) {
		var added bool
		st.Disliked, added = toggle(st.Disliked, factID)
		if added {
			st.Liked = without(st.Liked, factID)
		}
	})
}

// State returns the visitor's reactions. Storage failures degrade to an
// empty state.
func (s *Service) State(ctx context.Context, visitor string) (State, error) {
	if err := checkVisitor(visitor); err != nil {
		return State{}, err
	}
	st, err := readState(ctx, s.manager.Values(), visitor)
	if err != nil {
		s.logger.Error(ctx, "read reactions failed", "visitor", visitor, "error", err)
		return State{Bookmarks: []string{}, Liked: []string{}, Disliked: []string{}}, nil
	}
	return st, nil
}

// Bookmarked keeps the facts of published that the visitor bookmarked, in
// the order given.
func (s *Service) Bookmarked(ctx context.Context, visitor string, published []models.Fact) ([]models.Fact, error) {
	st, err := s.State(ctx, visitor)
	if err != nil {
		return nil, err
	}
	out := make([]models.Fact, 0, len(st.Bookmarks))
	for _, f := range published {
		if slices.Contains(st.Bookmarks, f.ID) {
			out = append(out, f)
		}
	}
	return out, nil
}
