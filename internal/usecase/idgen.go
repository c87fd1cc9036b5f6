package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/pricelens/backend/internal/domain"
)

// idByteLength random bytes encode to exactly 8 URL-safe characters
const idByteLength = 6

// DefaultIDAttempts is the per-item insert budget when ids collide
const DefaultIDAttempts = 3

// IDGenerator produces candidate item ids. Uniqueness is enforced by the
// store, not by the generator.
type IDGenerator interface {
	NewID() (string, error)
}

// RandomIDGenerator draws ids from a cryptographically secure source
type RandomIDGenerator struct {
	source io.Reader
}

// NewRandomIDGenerator creates a generator backed by crypto/rand
func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{source: rand.Reader}
}

// NewID returns a short base64url id without padding
func (g *RandomIDGenerator) NewID() (string, error) {
	buf := make([]byte, idByteLength)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// insertWithRetry inserts item under a fresh id, drawing a new id on every
// collision until attempts are exhausted. Any other store error is returned
// immediately.
func insertWithRetry(
	ctx context.Context,
	tx domain.CatalogueTx,
	ids IDGenerator,
	attempts int,
	item *domain.ItemRecord,
) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		id, err := ids.NewID()
		if err != nil {
			return fmt.Errorf("generating item id: %w", err)
		}
		item.ID = id

		err = tx.InsertItem(ctx, item)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateID) {
			return fmt.Errorf("%w: insert item: %v", domain.ErrStoreFailure, err)
		}

		log.Printf("[IDGEN] id collision on %q (attempt %d/%d)", id, attempt, attempts)
		lastErr = err
	}

	item.ID = ""
	return fmt.Errorf("item id retries exhausted after %d attempts: %w", attempts, lastErr)
}
