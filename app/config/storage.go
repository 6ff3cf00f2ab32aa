package config

import (
	"context"
	"fmt"

	"todo-api/app/store"
	"todo-api/app/store/neo4j"
	"todo-api/app/store/sqlite"
)

// OpenStore builds the persistence backend named by the configuration.
func OpenStore(ctx context.Context, cfg *Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return sqlite.Open(cfg.Storage.SQLitePath)
	case "neo4j":
		n := cfg.Storage.Neo4j
		return neo4j.Open(ctx, n.URI, n.Username, n.Password)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
