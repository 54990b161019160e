// Package config loads sqlchallenge settings from an optional YAML file and
// SQLCHALLENGE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/logging"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
	"github.com/abhisek/sqlchallenge/internal/store"
)

// Config holds all configuration for sqlchallenge.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Practice PracticeConfig `yaml:"practice"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the practice database challenges run against.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"` // Empty with a SQLite driver means practice.db beside the history database.
}

// StoreConfig locates the attempt history database.
type StoreConfig struct {
	Path string `yaml:"path"` // Empty means store.DefaultDBPath, which honours SQLCHALLENGE_DB.
}

// PracticeConfig bounds challenge selection and dataset generation.
type PracticeConfig struct {
	Rows       int      `yaml:"rows"`
	Seed       uint64   `yaml:"seed"` // 0 picks a random seed.
	Topics     []string `yaml:"topics"`
	Categories []string `yaml:"categories"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`   // Empty means stderr.
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Driver: sqlexec.DriverSQLite},
		Practice: PracticeConfig{Rows: 100},
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sqlchallenge/config.yaml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sqlchallenge", "config.yaml"), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path uses DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks drivers, selection filters and ranges.
func (c *Config) Validate() error {
	if _, err := sqlexec.DialectFor(c.Database.Driver); err != nil {
		return err
	}
	if !isSQLite(c.Database.Driver) && c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for driver %q", c.Database.Driver)
	}
	if c.Practice.Rows < 1 {
		return fmt.Errorf("practice rows must be at least 1, got %d", c.Practice.Rows)
	}
	if _, err := c.Topics(); err != nil {
		return err
	}
	if _, err := c.Categories(); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Topics returns the configured topics, or every topic when none are set.
func (c *Config) Topics() ([]schema.Topic, error) {
	return schema.ParseTopics(c.Practice.Topics)
}

// Categories returns the configured categories, or the default categories
// when none are set.
func (c *Config) Categories() ([]challenge.Category, error) {
	return challenge.ParseCategories(c.Practice.Categories)
}

// StorePath resolves the history database path.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, store.EnsureDir(c.Store.Path)
	}
	return store.DefaultDBPath()
}

// PracticeDSN resolves the practice database DSN. SQLite defaults to a
// practice.db file beside the history database.
func (c *Config) PracticeDSN() (string, error) {
	if c.Database.DSN != "" {
		return c.Database.DSN, nil
	}
	historyPath, err := c.StorePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(historyPath), "practice.db"), nil
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func isSQLite(driver string) bool {
	return driver == sqlexec.DriverSQLite || driver == sqlexec.DriverSQLiteCGO
}

// applyEnv overlays SQLCHALLENGE_* variables onto cfg.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("SQLCHALLENGE_DB_DRIVER"); ok {
		cfg.Database.Driver = v
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_DB_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_ROWS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SQLCHALLENGE_ROWS: %w", err)
		}
		cfg.Practice.Rows = n
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SQLCHALLENGE_SEED: %w", err)
		}
		cfg.Practice.Seed = n
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_TOPICS"); ok {
		cfg.Practice.Topics = splitList(v)
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_CATEGORIES"); ok {
		cfg.Practice.Categories = splitList(v)
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_HOST"); ok {
		cfg.Server.Host = v
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SQLCHALLENGE_PORT: %w", err)
		}
		cfg.Server.Port = n
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := os.LookupEnv("SQLCHALLENGE_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
