package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultLibraryFile = "library.txt"
	DefaultLogLevel    = "info"
	DefaultPort        = "8888"
	DefaultSessionIdle = 30 * time.Minute
)

type Config struct {
	LibraryFile string       `koanf:"library_file"` // flat file holding the collection
	LogLevel    string       `koanf:"log_level"`    // "debug", "info", "warn" or "error"
	Server      ServerConfig `koanf:"server"`
}

// ServerConfig holds settings for the web interface.
type ServerConfig struct {
	Port        string        `koanf:"port"`
	SessionIdle time.Duration `koanf:"session_idle"` // e.g. "30m"; 0 keeps sessions until shutdown
}

// Load reads the default config files, then applies environment overrides.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads a single config file, then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// last wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
			slog.Debug("Loaded config file", "path", path)
		}
	}

	cfg := &Config{
		LibraryFile: DefaultLibraryFile,
		LogLevel:    DefaultLogLevel,
		Server:      ServerConfig{Port: DefaultPort, SessionIdle: DefaultSessionIdle},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	cfg.LibraryFile = expandPath(cfg.LibraryFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BOOKSHELF_FILE"); v != "" {
		cfg.LibraryFile = v
	}
	if v := os.Getenv("BOOKSHELF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BOOKSHELF_PORT"); v != "" {
		cfg.Server.Port = v
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/bookshelf/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bookshelf", "config.toml"))
	}

	// 2. ./bookshelf.toml (pwd, highest priority)
	paths = append(paths, "bookshelf.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
