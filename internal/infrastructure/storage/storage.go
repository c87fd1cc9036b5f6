// Package storage selects a catalogue store implementation from configuration.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/pricelens/backend/config"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/memstore"
	"github.com/pricelens/backend/internal/infrastructure/postgres"
	"github.com/pricelens/backend/internal/infrastructure/sqlite"
)

// Store is a catalogue that can also manage its own schema
type Store interface {
	domain.CatalogueStore
	EnsureSchema(ctx context.Context) error
}

// memoryStore adapts memstore to Store; it has no schema
type memoryStore struct {
	*memstore.Store
}

func (memoryStore) EnsureSchema(context.Context) error { return nil }

// Open returns the configured store and a function releasing its resources
func Open(ctx context.Context, cfg config.StoreConfig) (Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Printf("[STORE] using in-memory catalogue (data is lost on exit)")
		return memoryStore{memstore.NewStore()}, func() {}, nil

	case config.DriverPostgres:
		store, closeFn, err := postgres.Open(ctx, cfg.DSN, int32(cfg.MaxConns))
		if err != nil {
			return nil, nil, err
		}
		return store, closeFn, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Printf("[STORE] closing sqlite: %v", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
