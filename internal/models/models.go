package models

import (
	"sync"
	"time"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

// LibrarySession is one browser's working copy of the library.
// Lock the session before touching Collection or Flash.
type LibrarySession struct {
	sync.Mutex `json:"-"`

	ID         string            `json:"id"`
	Collection *books.Collection `json:"-"`
	Flash      string            `json:"flash,omitempty"`
	Warnings   int               `json:"warnings"`
	CreatedAt  time.Time         `json:"created_at"`
	LastSeen   time.Time         `json:"last_seen"`
	SavedAt    time.Time         `json:"saved_at,omitempty"`
}

// TakeFlash returns the pending message and clears it. Caller holds the lock.
func (s *LibrarySession) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}
