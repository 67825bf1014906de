package storage

import (
	"sync"
	"time"

	"github.com/lehigh-university-libraries/bookshelf/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.LibrarySession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.LibrarySession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.LibrarySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// GetOrCreate returns the session for sessionID, calling create to build it when absent.
// create runs at most once per id.
func (s *SessionStore) GetOrCreate(sessionID string, create func() (*models.LibrarySession, error)) (*models.LibrarySession, bool, error) {
	if session, ok := s.Get(sessionID); ok {
		return session, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session, false, nil
	}
	session, err := create()
	if err != nil {
		return nil, false, err
	}
	s.sessions[sessionID] = session
	return session, true, nil
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Expire drops sessions not seen since now minus maxIdle and returns their ids.
// A session locked by a request in flight is in use and stays.
func (s *SessionStore) Expire(maxIdle time.Duration, now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for id, session := range s.sessions {
		if !session.TryLock() {
			continue
		}
		idle := now.Sub(session.LastSeen)
		session.Unlock()

		if idle > maxIdle {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}
