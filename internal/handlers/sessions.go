package handlers

import (
	"errors"
	"net/http"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

// HandleBooks lists the session's books as JSON, or searches them when term is given.
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := h.readSession(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	query := r.URL.Query()
	if !query.Has("term") {
		h.writeJSON(w, session.Collection.List())
		return
	}

	field, err := books.ParseField(query.Get("field"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	found, err := session.Collection.Search(field, query.Get("term"))
	if errors.Is(err, books.ErrValidation) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, found)
}

// HandleStats reports the session's statistics as JSON.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := h.readSession(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	h.writeJSON(w, session.Collection.Statistics())
}
