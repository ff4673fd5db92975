package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/store"
	"github.com/emart/inventory/internal/workflow"
)

// EntriesHandler handles workflow entry endpoints.
type EntriesHandler struct {
	DB     *sql.DB
	Engine *workflow.Engine
}

type reviewRequest struct {
	Decision string `json:"decision"`
}

// Submit handles POST /api/entries.
func (h *EntriesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var draft model.EntryDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Engine.Submit(r.Context(), GetSession(r.Context()), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, entry)
}

// Review handles POST /api/entries/{id}/review.
func (h *EntriesHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Engine.Review(r.Context(), GetSession(r.Context()), id, req.Decision)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Pending handles GET /api/entries/pending.
func (h *EntriesHandler) Pending(w http.ResponseWriter, r *http.Request) {
	entries := []model.Entry{}
	for entry, err := range h.Engine.Pending(r.Context()) {
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to list pending entries")
			return
		}
		entries = append(entries, entry)
	}
	jsonResponse(w, http.StatusOK, entries)
}

// List handles GET /api/entries.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListEntries(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
