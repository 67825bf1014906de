package handlers

import (
	"net/http"
)

var views = map[string]bool{
	"add":    true,
	"remove": true,
	"search": true,
	"list":   true,
	"stats":  true,
	"save":   true,
}

// HandleIndex renders the library page. ?view= picks the sidebar action.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := h.sessionOrError(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	view := r.URL.Query().Get("view")
	if !views[view] {
		view = "list"
	}
	h.render(w, session, pageData{View: view}, http.StatusOK)
}
