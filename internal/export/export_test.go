package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bookshelf/internal/books"
	"github.com/lehigh-university-libraries/bookshelf/internal/dataset"
)

func sample(t *testing.T) *books.Collection {
	t.Helper()
	c := books.NewCollection()
	_, err := c.Add("The Hobbit", "J.R.R. Tolkien", 1937, "Fantasy", true)
	require.NoError(t, err)
	_, err = c.Add("Dune, Messiah", "Frank Herbert", 1969, "SF", false)
	require.NoError(t, err)
	return c
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "text", "library.txt", sample(t)))

	out := buf.String()
	assert.Contains(t, out, "1. The Hobbit by J.R.R. Tolkien (1937) - Fantasy - Read")
	assert.Contains(t, out, "2. Dune, Messiah by Frank Herbert (1969) - SF - Unread")
	assert.Contains(t, out, "Percentage read: 50.0%")

	buf.Reset()
	require.NoError(t, Write(&buf, "text", "library.txt", books.NewCollection()))
	assert.Equal(t, "No books in the library.\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	c := sample(t)
	require.NoError(t, Write(&buf, "json", "library.txt", c))

	var decoded []books.Book
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, c.List(), decoded)
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", "library.txt", sample(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Title", "Author", "Year", "Genre", "Read"},
		{"The Hobbit", "J.R.R. Tolkien", "1937", "Fantasy", "true"},
		{"Dune, Messiah", "Frank Herbert", "1969", "SF", "false"},
	}, records)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	c := sample(t)
	require.NoError(t, Write(&buf, "yaml", "library.txt", c))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "library.txt", doc.Summary.Source)
	assert.Equal(t, books.Stats{Total: 2, Read: 1, PercentRead: 50}, doc.Summary.Stats)
	assert.Equal(t, c.List(), doc.Books)
}

func TestWriteParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.parquet")
	file, err := os.Create(path)
	require.NoError(t, err)

	c := sample(t)
	require.NoError(t, Write(file, "parquet", "library.txt", c))
	require.NoError(t, file.Close())

	rows, err := dataset.NewLoader(path).Load()
	require.NoError(t, err)

	imported := books.NewCollection()
	assert.Equal(t, dataset.ImportResult{Added: 2}, dataset.Import(imported, rows))
	assert.Equal(t, c.List(), imported.List())
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xml", "library.txt", sample(t)))
}
