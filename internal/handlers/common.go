package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
	"github.com/lehigh-university-libraries/bookshelf/internal/models"
	"github.com/lehigh-university-libraries/bookshelf/internal/storage"
)

const sessionCookie = "bookshelf_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"inc":   func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/index.html"))

type Handler struct {
	sessionStore *storage.SessionStore
	library      *storage.File
}

func New(library *storage.File) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		library:      library,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers

// cookieSessionID returns the session id the browser sent, or "" when it
// sent none or something that is not one of ours.
func cookieSessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// session returns the caller's library session, starting one from the
// library file when the browser has none yet.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*models.LibrarySession, error) {
	sessionID := cookieSessionID(r)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, created, err := h.sessionStore.GetOrCreate(sessionID, func() (*models.LibrarySession, error) {
		return h.newSession(sessionID)
	})
	if err != nil {
		return nil, err
	}

	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	touch(session)
	return session, nil
}

func touch(session *models.LibrarySession) {
	session.Lock()
	session.LastSeen = time.Now()
	session.Unlock()
}

func (h *Handler) newSession(sessionID string) (*models.LibrarySession, error) {
	collection, warnings, err := h.library.Load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.LibrarySession{
		ID:         sessionID,
		Collection: collection,
		Warnings:   len(warnings),
		CreatedAt:  now,
		LastSeen:   now,
	}
	if len(warnings) > 0 {
		session.Flash = "Skipped " + humanize.Comma(int64(len(warnings))) + " invalid line(s) in the library file."
	}

	slog.Info("Session created", "session_id", sessionID, "books", collection.Len(), "skipped", len(warnings))
	return session, nil
}

func (h *Handler) sessionOrError(w http.ResponseWriter, r *http.Request) (*models.LibrarySession, bool) {
	session, err := h.session(w, r)
	if err != nil {
		h.writeError(w, "Unable to load library: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

// readSession serves read-only API calls. A browser with a live session reads
// its own copy; any other caller reads the library file and keeps no session.
func (h *Handler) readSession(w http.ResponseWriter, r *http.Request) (*models.LibrarySession, bool) {
	if sessionID := cookieSessionID(r); sessionID != "" {
		if session, ok := h.sessionStore.Get(sessionID); ok {
			touch(session)
			return session, true
		}
	}

	collection, _, err := h.library.Load()
	if err != nil {
		h.writeError(w, "Unable to load library: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return &models.LibrarySession{Collection: collection}, true
}

// ExpireSessions drops sessions idle for longer than maxIdle. Their unsaved
// changes are lost.
func (h *Handler) ExpireSessions(maxIdle time.Duration) int {
	expired := h.sessionStore.Expire(maxIdle, time.Now())
	for _, id := range expired {
		slog.Info("Session expired", "session_id", id, "idle_limit", maxIdle)
	}
	if len(expired) > 0 {
		slog.Debug("Expired idle sessions", "expired", len(expired), "remaining", h.sessionStore.Len())
	}
	return len(expired)
}

// SweepSessions calls ExpireSessions every interval until ctx is done.
func (h *Handler) SweepSessions(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.ExpireSessions(maxIdle)
		}
	}
}

// pageData is everything index.html renders. One view is shown at a time.
type pageData struct {
	View        string
	Flash       string
	Error       string
	LibraryFile string
	SavedAgo    string

	Books    []books.Book
	Stats    books.Stats
	Form     addForm
	Field    string
	Term     string
	Results  []books.Book
	Searched bool
}

type addForm struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Read   bool
}

// render draws the page for session. Caller holds the session lock.
func (h *Handler) render(w http.ResponseWriter, session *models.LibrarySession, data pageData, code int) {
	data.Flash = session.TakeFlash()
	data.LibraryFile = h.library.Path()
	data.Books = session.Collection.List()
	data.Stats = session.Collection.Statistics()
	if !session.SavedAt.IsZero() {
		data.SavedAgo = humanize.Time(session.SavedAt)
	}
	if data.Field == "" {
		data.Field = books.FieldTitle.String()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("Unable to render page", "err", err)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, session *models.LibrarySession, view, flash string) {
	session.Flash = flash
	http.Redirect(w, r, "/?view="+view, http.StatusSeeOther)
}
