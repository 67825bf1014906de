package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

// HandleAdd adds the book described by the add form.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.sessionOrError(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	form := addForm{
		Title:  r.PostFormValue("title"),
		Author: r.PostFormValue("author"),
		Year:   r.PostFormValue("year"),
		Genre:  r.PostFormValue("genre"),
		Read:   r.PostFormValue("read") != "",
	}

	year, err := books.ParseYear(form.Year)
	if err == nil {
		var book books.Book
		book, err = session.Collection.Add(form.Title, form.Author, year, form.Genre, form.Read)
		if err == nil {
			slog.Info("Book added", "session_id", session.ID, "title", book.Title)
			h.redirect(w, r, session, "list", fmt.Sprintf("Added '%s'.", book.Title))
			return
		}
	}

	h.render(w, session, pageData{View: "add", Form: form, Error: err.Error()}, http.StatusBadRequest)
}

// HandleRemove removes the first book with the submitted title.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.sessionOrError(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	title := r.PostFormValue("title")
	book, err := session.Collection.Remove(title)
	switch {
	case errors.Is(err, books.ErrNotFound):
		h.render(w, session, pageData{View: "remove", Error: fmt.Sprintf("'%s' not found in the library.", title)}, http.StatusNotFound)
	case err != nil:
		h.render(w, session, pageData{View: "remove", Error: "Please enter a title."}, http.StatusBadRequest)
	default:
		slog.Info("Book removed", "session_id", session.ID, "title", book.Title)
		h.redirect(w, r, session, "list", fmt.Sprintf("Removed '%s'.", book.Title))
	}
}

// HandleSearch shows the search form, and its results once a term is submitted.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	data := pageData{View: "search", Field: query.Get("field"), Term: query.Get("term")}
	if !query.Has("term") {
		h.render(w, session, data, http.StatusOK)
		return
	}

	field, err := books.ParseField(data.Field)
	if err == nil {
		data.Results, err = session.Collection.Search(field, data.Term)
	}
	if err != nil {
		data.Error = err.Error()
		h.render(w, session, data, http.StatusBadRequest)
		return
	}

	data.Searched = true
	h.render(w, session, data, http.StatusOK)
}

// HandleSave writes the session's collection over the library file.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := h.sessionOrError(w, r)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	if err := h.library.Save(session.Collection); err != nil {
		slog.Error("Failed to save library", "session_id", session.ID, "err", err)
		h.render(w, session, pageData{View: "save", Error: "Error saving library: " + err.Error()}, http.StatusInternalServerError)
		return
	}

	session.SavedAt = time.Now()
	h.redirect(w, r, session, "save", "Library saved to file.")
}
