package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory driver", func(t *testing.T) {
		store, closeFn, err := Open(ctx, config.StoreConfig{Driver: config.DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.NoError(t, store.EnsureSchema(ctx))
	})

	t.Run("sqlite driver", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "nested", "catalogue.db")
		store, closeFn, err := Open(ctx, config.StoreConfig{Driver: config.DriverSQLite, DSN: dsn})
		require.NoError(t, err)
		defer closeFn()
		assert.NoError(t, store.EnsureSchema(ctx))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(ctx, config.StoreConfig{Driver: "mongo"})
		assert.Error(t, err)
	})
}
