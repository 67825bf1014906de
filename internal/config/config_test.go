package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOOKSHELF_FILE", "")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "")
	t.Setenv("BOOKSHELF_PORT", "")
}

func TestLoadFileDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLibraryFile, cfg.LibraryFile)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultSessionIdle, cfg.Server.SessionIdle)
}

func TestLoadFileValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bookshelf.toml")
	content := `library_file = "/data/books.txt"
log_level = "DEBUG"

[server]
port = "3000"
session_idle = "10m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/books.txt", cfg.LibraryFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Server.SessionIdle)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadFileInvalidTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bookshelf.toml")
	require.NoError(t, os.WriteFile(path, []byte("library_file = [unterminated"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.toml")
	require.NoError(t, os.WriteFile(path, []byte(`library_file = "from-file.txt"`), 0644))

	t.Setenv("BOOKSHELF_FILE", "from-env.txt")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "warn")
	t.Setenv("BOOKSHELF_PORT", "9999")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.txt", cfg.LibraryFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	assert.Equal(t, filepath.Join(home, "books", "library.txt"), expandPath("~/books/library.txt"))
	assert.Equal(t, "/abs/library.txt", expandPath("/abs/library.txt"))
	assert.Equal(t, "library.txt", expandPath("library.txt"))
	assert.Equal(t, "", expandPath(""))
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "bookshelf.toml", paths[len(paths)-1])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}
