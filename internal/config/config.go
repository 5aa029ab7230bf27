package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Storage backends supported by the service.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	Storage         string
	DatabaseURI     string
	SQLitePath      string
	SeedFile        string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":3000"
	defaultStorage         = StorageMemory
	defaultSQLitePath      = "users.db"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		Storage:         getString(lookup, "STORAGE", defaultStorage),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SQLitePath:      getString(lookup, "SQLITE_PATH", defaultSQLitePath),
		SeedFile:        getString(lookup, "SEED_FILE", ""),
	}

	fs := flag.NewFlagSet("usersvc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "User storage backend: memory, postgres or sqlite")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML file with initial users")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn or error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for postgres storage")
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path must be provided for sqlite storage")
		}
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}
