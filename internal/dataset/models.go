package dataset

import (
	"log/slog"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
)

// Row is one book in a JSONL or Parquet dataset.
type Row struct {
	Title  string `json:"title" parquet:"title"`
	Author string `json:"author" parquet:"author"`
	Year   int64  `json:"year" parquet:"year"`
	Genre  string `json:"genre" parquet:"genre"`
	Read   bool   `json:"read" parquet:"read"`
}

// RowFromBook converts a book into a dataset row.
func RowFromBook(b books.Book) Row {
	return Row{
		Title:  b.Title,
		Author: b.Author,
		Year:   int64(b.Year),
		Genre:  b.Genre,
		Read:   b.ReadStatus,
	}
}

// ImportResult counts what Import did with a batch of rows.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import adds every valid row to collection. Rows the collection rejects are
// logged and counted, not fatal.
func Import(collection *books.Collection, rows []Row) ImportResult {
	var result ImportResult
	for i, row := range rows {
		if _, err := collection.Add(row.Title, row.Author, int(row.Year), row.Genre, row.Read); err != nil {
			slog.Warn("Skipping dataset row", "row", i+1, "title", row.Title, "reason", err)
			result.Skipped++
			continue
		}
		result.Added++
	}
	return result
}
