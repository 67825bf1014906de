// Package menu implements the numbered text menu over a book collection.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Saver persists the collection when the user picks "Save and exit".
type Saver interface {
	Save(collection *books.Collection) error
}

// Menu reads choices from in and writes prompts and results to out.
type Menu struct {
	collection *books.Collection
	saver      Saver
	out        io.Writer
	in         io.Reader

	lines chan string
	done  chan struct{}
}

// New returns a menu over collection.
func New(collection *books.Collection, saver Saver, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		collection: collection,
		saver:      saver,
		in:         in,
		out:        out,
	}
}

// Run loops until the user saves and exits, input ends, or ctx is cancelled.
// Only option 6 writes the library file.
//
// Input is read on a separate goroutine. When ctx is cancelled Run closes in
// if it is an io.Closer, which ends that goroutine; any other reader leaves it
// blocked in Read until the reader returns.
func (m *Menu) Run(ctx context.Context) error {
	m.lines = make(chan string)
	m.done = make(chan struct{})
	defer func() {
		if ctx.Err() != nil {
			m.closeInput()
		}
	}()
	defer close(m.done)
	go m.readLines()

	m.println(headingStyle.Render("📚 Personal Library Manager"))
	m.println("Welcome to your personal library! Manage your book collection with ease.")

	for {
		m.printMenu()

		choice, err := m.prompt(ctx, "Choose an option (1-6): ")
		if err != nil {
			return m.stopped(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.addBook(ctx)
		case "2":
			err = m.removeBook(ctx)
		case "3":
			err = m.searchBooks(ctx)
		case "4":
			m.displayAll()
		case "5":
			m.displayStatistics()
		case "6":
			if err := m.saver.Save(m.collection); err != nil {
				m.fail("Error saving library: %v", err)
				continue
			}
			m.ok("Library saved to file.")
			m.println("👋 Goodbye!")
			return nil
		default:
			m.fail("Invalid choice. Please select a valid option.")
		}
		if err != nil {
			return m.stopped(err)
		}
	}
}

func (m *Menu) printMenu() {
	m.println()
	m.println(headingStyle.Render("Menu:"))
	m.println("1. Add a Book")
	m.println("2. Remove a Book")
	m.println("3. Search for a Book")
	m.println("4. Display All Books")
	m.println("5. Display Statistics")
	m.println("6. Save and Exit")
}

// stopped turns end of input and interruption into a clean exit.
func (m *Menu) stopped(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		m.println()
		m.println("Input closed, exiting without saving.")
		slog.Debug("Menu input closed")
		return nil
	case errors.Is(err, context.Canceled):
		m.println()
		m.println("Interrupted, exiting without saving.")
		return nil
	default:
		return err
	}
}

func (m *Menu) addBook(ctx context.Context) error {
	m.println()
	m.println(headingStyle.Render("📖 Add a Book"))

	answers := make([]string, 0, 5)
	for _, question := range []string{
		"Enter the book title: ",
		"Enter the author's name: ",
		"Enter the publication year: ",
		"Enter the genre: ",
		"Have you read this book? (Yes/No): ",
	} {
		answer, err := m.prompt(ctx, question)
		if err != nil {
			return err
		}
		answers = append(answers, answer)
	}

	year, err := books.ParseYear(answers[2])
	if err != nil {
		m.fail("%v", err)
		return nil
	}

	book, err := m.collection.Add(answers[0], answers[1], year, answers[3], books.ParseReadStatus(answers[4]))
	if err != nil {
		m.fail("Please fill in all fields (%v).", err)
		return nil
	}

	slog.Debug("Book added", "title", book.Title)
	m.ok("Book added successfully!")
	return nil
}

func (m *Menu) removeBook(ctx context.Context) error {
	m.println()
	m.println(headingStyle.Render("❌ Remove a Book"))

	title, err := m.prompt(ctx, "Enter the title of the book to remove: ")
	if err != nil {
		return err
	}

	book, err := m.collection.Remove(title)
	switch {
	case errors.Is(err, books.ErrNotFound):
		m.fail("'%s' not found in the library.", strings.TrimSpace(title))
	case errors.Is(err, books.ErrValidation):
		m.fail("Please enter a title.")
	case err != nil:
		return err
	default:
		m.ok(fmt.Sprintf("'%s' removed successfully!", book.Title))
	}
	return nil
}

func (m *Menu) searchBooks(ctx context.Context) error {
	m.println()
	m.println(headingStyle.Render("🔍 Search for a Book"))

	by, err := m.prompt(ctx, "Search by (Title/Author): ")
	if err != nil {
		return err
	}
	field, err := books.ParseField(by)
	if err != nil {
		m.fail("Please search by Title or Author.")
		return nil
	}

	term, err := m.prompt(ctx, fmt.Sprintf("Enter the %s: ", field))
	if err != nil {
		return err
	}

	found, err := m.collection.Search(field, term)
	if err != nil {
		m.fail("Please enter a search term.")
		return nil
	}
	if len(found) == 0 {
		m.fail("No matching books found.")
		return nil
	}

	m.println("📚 Matching Books:")
	m.printBooks(found)
	return nil
}

func (m *Menu) displayAll() {
	m.println()
	m.println(headingStyle.Render("📚 Your Library"))

	all := m.collection.List()
	if len(all) == 0 {
		m.println("No books in the library.")
		return
	}
	m.printBooks(all)
}

func (m *Menu) displayStatistics() {
	m.println()
	m.println(headingStyle.Render("📊 Library Statistics"))

	stats := m.collection.Statistics()
	if stats.Total == 0 {
		m.println("No books in the library.")
		return
	}

	m.println(fmt.Sprintf("📖 Total books: %s", humanize.Comma(int64(stats.Total))))
	m.println(fmt.Sprintf("📈 Percentage read: %.1f%%", stats.PercentRead))
}

func (m *Menu) printBooks(list []books.Book) {
	for i, book := range list {
		m.println(fmt.Sprintf("%d. %s", i+1, book))
	}
}

// readLines feeds m.lines until input ends or Run returns.
func (m *Menu) readLines() {
	defer close(m.lines)
	scanner := bufio.NewScanner(m.in)
	for scanner.Scan() {
		select {
		case m.lines <- scanner.Text():
		case <-m.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case <-m.done:
		default:
			slog.Error("Unable to read menu input", "err", err)
		}
	}
}

func (m *Menu) closeInput() {
	closer, ok := m.in.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Debug("Unable to close menu input", "err", err)
	}
}

func (m *Menu) prompt(ctx context.Context, question string) (string, error) {
	fmt.Fprint(m.out, question)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}

func (m *Menu) ok(msg string) {
	m.println(okStyle.Render("✅ " + msg))
}

func (m *Menu) fail(format string, args ...any) {
	m.println(errStyle.Render("❌ " + fmt.Sprintf(format, args...)))
}
