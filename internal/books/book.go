package books

import (
	"fmt"
	"strconv"
	"strings"
)

// Book is a single record in the collection.
type Book struct {
	Title      string `json:"title" yaml:"title"`
	Author     string `json:"author" yaml:"author"`
	Year       int    `json:"year" yaml:"year"`
	Genre      string `json:"genre" yaml:"genre"`
	ReadStatus bool   `json:"read" yaml:"read"`
}

// Status renders the read flag for display.
func (b Book) Status() string {
	if b.ReadStatus {
		return "Read"
	}
	return "Unread"
}

// String formats the book the way both shells list it.
func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d) - %s - %s", b.Title, b.Author, b.Year, b.Genre, b.Status())
}

// Field selects which attribute Search matches against.
type Field int

const (
	FieldTitle Field = iota + 1
	FieldAuthor
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	default:
		return "unknown"
	}
}

// ParseField accepts "title" or "author" in any case.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "author":
		return FieldAuthor, nil
	default:
		return 0, ErrInvalidField
	}
}

// ParseYear parses a publication year. Any whole number is accepted.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, required("year")
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: year must be a whole number, got %q", ErrValidation, s)
	}
	return year, nil
}

// ParseReadStatus reports whether a Yes/No answer means the book has been read.
func ParseReadStatus(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}
