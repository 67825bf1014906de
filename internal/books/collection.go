package books

import "strings"

// Collection is an ordered list of books. Insertion order is kept and is
// what shells use for numbering. It is not safe for concurrent use; callers
// serving several clients hold their own lock.
type Collection struct {
	books []Book
}

// Stats summarizes a collection.
type Stats struct {
	Total       int     `json:"total" yaml:"total"`
	Read        int     `json:"read" yaml:"read"`
	PercentRead float64 `json:"percent_read" yaml:"percent_read"`
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add validates and appends a book. Title, author and genre are stored trimmed.
func (c *Collection) Add(title, author string, year int, genre string, read bool) (Book, error) {
	book := Book{
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Year:       year,
		Genre:      strings.TrimSpace(genre),
		ReadStatus: read,
	}

	switch {
	case book.Title == "":
		return Book{}, required("title")
	case book.Author == "":
		return Book{}, required("author")
	case book.Genre == "":
		return Book{}, required("genre")
	}

	c.books = append(c.books, book)
	return book, nil
}

// Remove deletes the first book whose title equals title, ignoring case.
func (c *Collection) Remove(title string) (Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Book{}, required("title")
	}

	for i, book := range c.books {
		if strings.EqualFold(book.Title, title) {
			c.books = append(c.books[:i], c.books[i+1:]...)
			return book, nil
		}
	}
	return Book{}, ErrNotFound
}

// Search returns books whose field contains term, ignoring case, in collection order.
// No matches yields an empty slice and a nil error.
func (c *Collection) Search(field Field, term string) ([]Book, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, required("search term")
	}
	if field != FieldTitle && field != FieldAuthor {
		return nil, ErrInvalidField
	}

	matches := []Book{}
	for _, book := range c.books {
		value := book.Title
		if field == FieldAuthor {
			value = book.Author
		}
		if strings.Contains(strings.ToLower(value), term) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}

// List returns a copy of every book in order.
func (c *Collection) List() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Len returns the number of books.
func (c *Collection) Len() int {
	return len(c.books)
}

// Statistics counts the books and the share marked as read.
func (c *Collection) Statistics() Stats {
	stats := Stats{Total: len(c.books)}
	for _, book := range c.books {
		if book.ReadStatus {
			stats.Read++
		}
	}
	if stats.Total > 0 {
		stats.PercentRead = float64(stats.Read) / float64(stats.Total) * 100
	}
	return stats
}
