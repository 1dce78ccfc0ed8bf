package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/facts"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/reactions"
	"github.com/dmitrijs2005/factkeeper/internal/trivia"
)

const maxBodyBytes = 64 << 10

type handlers struct {
	facts     *facts.Repository
	reactions *reactions.Service
	trivia    *trivia.Builder
	logger    logging.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handlers) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /facts", h.listFacts)
	mux.HandleFunc("POST /facts/submit", h.submitFact)
	mux.HandleFunc("GET /facts/random", h.randomFact)
	mux.HandleFunc("GET /facts/search", h.searchFacts)
	mux.HandleFunc("GET /categories", h.categories)
	mux.HandleFunc("GET /trivia", h.triviaRound)
	mux.HandleFunc("GET /reactions", h.reactionState)
	mux.HandleFunc("GET /bookmarks", h.bookmarks)
	mux.HandleFunc("POST /facts/{id}/bookmark", h.react(h.reactions.ToggleBookmark))
	mux.HandleFunc("POST /facts/{id}/like", h.react(h.reactions.ToggleLike))
	mux.HandleFunc("POST /facts/{id}/dislike", h.react(h.reactions.ToggleDislike))
	mux.HandleFunc("GET /healthz", h.health)
	return mux
}

func (h *handlers) listFacts(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, h.facts.ListPublishedByCategory(r.Context(), category))
		return
	}
	writeJSON(w, http.StatusOK, h.facts.ListPublished(r.Context()))
}

func (h *handlers) submitFact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in models.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(in.Text) == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.SubmittedBy) == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	sub, err := h.facts.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.logger.Debug(r.Context(), "submission rejected", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to submit fact")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *handlers) randomFact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := h.facts.Random(r.Context(), q.Get("category"), q.Get("exclude"))
	if err != nil {
		writeError(w, http.StatusNotFound, "No facts available")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *handlers) searchFacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facts.Search(r.Context(), r.URL.Query().Get("q")))
}

func (h *handlers) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}

func (h *handlers) triviaRound(w http.ResponseWriter, r *http.Request) {
	var pool []models.Fact
	if category := r.URL.Query().Get("category"); category != "" {
		pool = h.facts.ListPublishedByCategory(r.Context(), category)
	} else {
		pool = h.facts.ListPublished(r.Context())
	}
	writeJSON(w, http.StatusOK, h.trivia.NewRound(pool))
}

func visitor(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(common.VisitorHeaderName))
}

func (h *handlers) reactionState(w http.ResponseWriter, r *http.Request) {
	st, err := h.reactions.State(r.Context(), visitor(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing "+common.VisitorHeaderName+" header")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handlers) bookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := h.reactions.Bookmarked(r.Context(), visitor(r), h.facts.ListPublished(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing "+common.VisitorHeaderName+" header")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type toggleFunc func(ctx context.Context, visitor, factID string) (reactions.State, error)

func (h *handlers) react(toggle toggleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := visitor(r)
		if v == "" {
			writeError(w, http.StatusBadRequest, "Missing "+common.VisitorHeaderName+" header")
			return
		}
		st, err := toggle(r.Context(), v, r.PathValue("id"))
		if err != nil {
			if errors.Is(err, common.ErrorValidation) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to update reactions")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
