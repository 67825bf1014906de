// Package export writes a book collection in formats other tools can read.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
	"github.com/lehigh-university-libraries/bookshelf/internal/dataset"
)

// Formats lists the accepted --format values.
var Formats = []string{"text", "json", "csv", "yaml", "parquet"}

// Document is the YAML layout: a header plus every book.
type Document struct {
	Summary Summary      `yaml:"summary"`
	Books   []books.Book `yaml:"books"`
}

// Summary describes the exported library.
type Summary struct {
	Source     string      `yaml:"source"`
	ExportedAt string      `yaml:"exportedat"`
	Stats      books.Stats `yaml:"stats"`
}

// Write renders collection to w in format. source names the library file.
func Write(w io.Writer, format, source string, collection *books.Collection) error {
	switch format {
	case "text":
		return writeText(w, collection)
	case "json":
		return writeJSON(w, collection)
	case "csv":
		return writeCSV(w, collection)
	case "yaml":
		return writeYAML(w, source, collection)
	case "parquet":
		return writeParquet(w, collection)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeText(w io.Writer, collection *books.Collection) error {
	list := collection.List()
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No books in the library.")
		return err
	}

	for i, book := range list {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, book); err != nil {
			return err
		}
	}

	stats := collection.Statistics()
	_, err := fmt.Fprintf(w, "\nTotal books: %d\nPercentage read: %.1f%%\n", stats.Total, stats.PercentRead)
	return err
}

func writeJSON(w io.Writer, collection *books.Collection) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(collection.List())
}

func writeCSV(w io.Writer, collection *books.Collection) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Title", "Author", "Year", "Genre", "Read"}); err != nil {
		return err
	}

	for _, book := range collection.List() {
		row := []string{
			book.Title,
			book.Author,
			strconv.Itoa(book.Year),
			book.Genre,
			strconv.FormatBool(book.ReadStatus),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeYAML(w io.Writer, source string, collection *books.Collection) error {
	doc := Document{
		Summary: Summary{
			Source:     source,
			ExportedAt: time.Now().Format("2006-01-02_15-04-05"),
			Stats:      collection.Statistics(),
		},
		Books: collection.List(),
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeParquet(w io.Writer, collection *books.Collection) error {
	list := collection.List()
	rows := make([]dataset.Row, 0, len(list))
	for _, book := range list {
		rows = append(rows, dataset.RowFromBook(book))
	}

	writer := parquet.NewGenericWriter[dataset.Row](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
