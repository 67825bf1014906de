package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BOOKSHELF_FILE", "")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "")
	t.Setenv("BOOKSHELF_PORT", "")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	configPath := filepath.Join(t.TempDir(), "bookshelf.toml")
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMenuLoadsAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,SF,True\nbad line\n"), 0644))

	out, err := execute(t, "1\nEmma\nJane Austen\n1815\nNovel\nno\n4\n6\n", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Skipping invalid line 2 in library file: bad line")
	assert.Contains(t, out, "1. Dune by Frank Herbert (1965) - SF - Read")
	assert.Contains(t, out, "2. Emma by Jane Austen (1815) - Novel - Unread")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune,Frank Herbert,1965,SF,True\nEmma,Jane Austen,1815,Novel,False\n", string(data))
}

func TestMenuFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")

	out, err := execute(t, "5\n6\n", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No books in the library.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,SF,True\n"), 0644))

	out, err := execute(t, "", "export", "--file", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Dune")
	assert.Contains(t, out, "percent_read: 100")
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "", "export", "--file", filepath.Join(t.TempDir(), "library.txt"), "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestImportJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,SF,True\n"), 0644))

	datasetPath := filepath.Join(dir, "new.jsonl")
	require.NoError(t, os.WriteFile(datasetPath, []byte(
		`{"title":"Emma","author":"Jane Austen","year":1815,"genre":"Novel","read":false}`+"\n"+
			`{"title":"","author":"Nobody","year":1,"genre":"None"}`+"\n"), 0644))

	out, err := execute(t, "", "import", "--file", path, "--dataset", datasetPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 books, skipped 1 invalid rows.")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune,Frank Herbert,1965,SF,True\n", string(data))

	_, err = execute(t, "", "import", "--file", path, "--dataset", datasetPath)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune,Frank Herbert,1965,SF,True\nEmma,Jane Austen,1815,Novel,False\n", string(data))
}

func TestImportMissingDataset(t *testing.T) {
	_, err := execute(t, "", "import", "--file", filepath.Join(t.TempDir(), "library.txt"), "--dataset", "/nonexistent/books.jsonl")
	assert.ErrorContains(t, err, "dataset file not found")
}
