package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Neo4jConfig holds connection settings for the neo4j backend.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is "sqlite" or "neo4j".
	Backend    string      `yaml:"backend"`
	SQLitePath string      `yaml:"sqlite_path"`
	Neo4j      Neo4jConfig `yaml:"neo4j"`
}

type Config struct {
	BindAddr string        `yaml:"bind_addr"`
	LogLevel string        `yaml:"log_level"`
	Storage  StorageConfig `yaml:"storage"`
}

// Default returns the built-in configuration: sqlite in the working
// directory, listening on all interfaces.
func Default() *Config {
	return &Config{
		BindAddr: "0.0.0.0:8080",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend:    "sqlite",
			SQLitePath: "todo.db",
			Neo4j: Neo4jConfig{
				URI:      "neo4j://localhost:7687",
				Username: "neo4j",
				Password: "password",
			},
		},
	}
}

// Load reads the YAML config at path, falling back to defaults when the
// file does not exist, then applies environment overrides. An empty
// path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	cfg.applyEnv()
	if cfg.Storage.Backend != "sqlite" && cfg.Storage.Backend != "neo4j" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.BindAddr, "TODO_API_BIND_ADDR")
	setFromEnv(&c.LogLevel, "TODO_API_LOG_LEVEL")
	setFromEnv(&c.Storage.Backend, "TODO_API_STORAGE_BACKEND")
	setFromEnv(&c.Storage.SQLitePath, "TODO_API_SQLITE_PATH")
	setFromEnv(&c.Storage.Neo4j.URI, "TODO_API_NEO4J_URI")
	setFromEnv(&c.Storage.Neo4j.Username, "TODO_API_NEO4J_USERNAME")
	setFromEnv(&c.Storage.Neo4j.Password, "TODO_API_NEO4J_PASSWORD")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SlogLevel maps the configured log level name to a slog.Level,
// defaulting to info for unknown names.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
