package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

const (
	delimiter   = ","
	fieldCount  = 5
	readToken   = "True"
	unreadToken = "False"

	// Lines are short records; longer ones are skipped, not buffered.
	maxLineSize = 1024 * 1024

	// Part of an oversized line kept for its warning.
	previewSize = 80
)

// Reasons a line is skipped on load.
var (
	ErrFieldCount   = errors.New("expected 5 comma-separated fields")
	ErrInvalidYear  = errors.New("year is not a whole number")
	ErrMissingField = errors.New("title, author and genre must not be empty")
	ErrLineTooLong  = errors.New("line exceeds 1 MiB")
)

// LineWarning describes a line that was skipped while loading.
type LineWarning struct {
	Line int
	Text string
	Err  error
}

func (w LineWarning) Error() string {
	return fmt.Sprintf("line %d: %v: %q", w.Line, w.Err, w.Text)
}

func (w LineWarning) Unwrap() error {
	return w.Err
}

// Load reads a library file. A missing file yields an empty collection.
// Malformed lines are skipped and reported; I/O failures abort the load.
func Load(path string) (*books.Collection, []LineWarning, error) {
	collection := books.NewCollection()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No library file found, starting with an empty library", "path", path)
		return collection, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library file: %w", err)
	}
	defer file.Close()

	var warnings []LineWarning
	reader := bufio.NewReader(file)

	for lineNum := 1; ; lineNum++ {
		raw, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading library file: %w", err)
		}

		line := strings.TrimSpace(raw)
		if line == "" && !tooLong {
			continue
		}

		reason := ErrLineTooLong
		if !tooLong {
			reason = parseLine(collection, line)
		}
		if reason != nil {
			slog.Warn("Skipping invalid line in library file", "path", path, "line", lineNum, "text", line, "reason", reason)
			warnings = append(warnings, LineWarning{Line: lineNum, Text: line, Err: reason})
		}
	}

	slog.Debug("Library loaded", "path", path, "books", collection.Len(), "skipped", len(warnings))
	return collection, warnings, nil
}

// readLine returns the next line without its line ending. A line longer than
// maxLineSize is drained and reported as tooLong with only a short preview.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}

		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineSize {
				tooLong = true
				buf = buf[:previewSize]
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func parseLine(collection *books.Collection, line string) error {
	parts := strings.Split(line, delimiter)
	if len(parts) != fieldCount {
		return ErrFieldCount
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return ErrInvalidYear
	}

	if _, err := collection.Add(parts[0], parts[1], year, parts[3], parts[4] == readToken); err != nil {
		return ErrMissingField
	}
	return nil
}

// Save overwrites path with one line per book. Fields are written as-is;
// a comma inside a field will split that record on the next load.
func Save(path string, collection *books.Collection) error {
	var buf bytes.Buffer
	for _, book := range collection.List() {
		buf.WriteString(formatLine(book))
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}

	slog.Info("Library saved", "path", path, "books", collection.Len())
	return nil
}

func formatLine(book books.Book) string {
	status := unreadToken
	if book.ReadStatus {
		status = readToken
	}
	return strings.Join([]string{
		book.Title,
		book.Author,
		strconv.Itoa(book.Year),
		book.Genre,
		status,
	}, delimiter)
}

// File is a library file shared by several sessions. Loads and saves are serialized.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the file under the lock.
func (f *File) Load() (*books.Collection, []LineWarning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Load(f.path)
}

// Save writes the collection under the lock. The last save wins.
func (f *File) Save(collection *books.Collection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Save(f.path, collection)
}
