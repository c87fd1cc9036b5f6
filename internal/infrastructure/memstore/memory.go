package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// Store is a thread-safe in-memory catalogue. Transactions buffer their
// inserts and publish them on Commit.
type Store struct {
	items map[string]domain.ItemRecord
	mutex sync.RWMutex
	now   func() time.Time
}

// NewStore creates an empty in-memory catalogue
func NewStore() *Store {
	return &Store{
		items: make(map[string]domain.ItemRecord),
		now:   time.Now,
	}
}

// Seed stores items directly, bypassing transactions (fixtures and tests)
func (s *Store) Seed(items ...domain.ItemRecord) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, item := range items {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = s.now()
		}
		s.items[item.ID] = item
	}
}

// Size returns the number of committed items
func (s *Store) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// FindByExactBrandName returns items whose name and brand match case-insensitively
func (s *Store) FindByExactBrandName(ctx context.Context, name, brand string) ([]domain.ItemRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	name = fold(name)
	brand = fold(brand)

	var matches []domain.ItemRecord
	for _, item := range s.items {
		if fold(item.Name) == name && fold(item.Brand) == brand {
			matches = append(matches, item)
		}
	}
	sortByCreation(matches)
	return matches, nil
}

// FindByID returns the committed item with the given id
func (s *Store) FindByID(ctx context.Context, id string) (*domain.ItemRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

// Begin starts a transaction
func (s *Store) Begin(ctx context.Context) (domain.CatalogueTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tx{store: s, pending: make(map[string]domain.ItemRecord)}, nil
}

// tx sees committed items plus its own pending inserts
type tx struct {
	store   *Store
	pending map[string]domain.ItemRecord
	order   []string
	done    bool
}

func (t *tx) FindByNormalizedTuple(ctx context.Context, name, brand, quantity, feature string) (*domain.ItemRecord, error) {
	if t.done {
		return nil, errTxDone
	}

	matches := func(item domain.ItemRecord) bool {
		return fold(item.Name) == fold(name) &&
			fold(item.Brand) == fold(brand) &&
			fold(item.Quantity) == fold(quantity) &&
			fold(item.Feature) == fold(feature)
	}

	for _, id := range t.order {
		if item := t.pending[id]; matches(item) {
			return &item, nil
		}
	}

	t.store.mutex.RLock()
	defer t.store.mutex.RUnlock()

	var found []domain.ItemRecord
	for _, item := range t.store.items {
		if matches(item) {
			found = append(found, item)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}
	sortByCreation(found)
	return &found[0], nil
}

func (t *tx) InsertItem(ctx context.Context, item *domain.ItemRecord) error {
	if t.done {
		return errTxDone
	}
	if _, exists := t.pending[item.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}

	t.store.mutex.RLock()
	_, exists := t.store.items[item.ID]
	t.store.mutex.RUnlock()
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = t.store.now()
	}
	t.pending[item.ID] = *item
	t.order = append(t.order, item.ID)
	return nil
}

// Commit publishes pending inserts atomically. An id taken by a concurrent
// commit fails the whole transaction.
func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true

	t.store.mutex.Lock()
	defer t.store.mutex.Unlock()

	for id := range t.pending {
		if _, exists := t.store.items[id]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
		}
	}
	for id, item := range t.pending {
		t.store.items[id] = item
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	t.done = true
	t.pending = nil
	t.order = nil
	return nil
}

var errTxDone = errors.New("memstore: transaction already closed")

func fold(s string) string {
	return domain.FoldKey(s)
}

func sortByCreation(items []domain.ItemRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
