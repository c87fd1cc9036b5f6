package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/memstore"
)

func TestItemService_Create(t *testing.T) {
	t.Run("creates trimmed item", func(t *testing.T) {
		store := memstore.NewStore()
		svc := NewItemService(store, NewRandomIDGenerator(), 0)

		item, err := svc.Create(context.Background(), &domain.CreateItemRequest{
			Name: " Cola ", Brand: "Acme", Quantity: "330ml ", PicWebsite: " https://img.example/cola.png",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !idPattern.MatchString(item.ID) {
			t.Errorf("ID = %q, want 8 URL-safe characters", item.ID)
		}
		if item.Name != "Cola" || item.Quantity != "330ml" || item.PicWebsite != "https://img.example/cola.png" {
			t.Errorf("item = %+v, want trimmed fields", item)
		}

		stored, err := store.FindByID(context.Background(), item.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if stored.CreatedAt.IsZero() {
			t.Error("stored item should carry a creation time")
		}
	})

	t.Run("does not deduplicate", func(t *testing.T) {
		store := memstore.NewStore()
		svc := NewItemService(store, NewRandomIDGenerator(), 0)
		request := &domain.CreateItemRequest{Name: "Cola", Brand: "Acme"}

		first, err := svc.Create(context.Background(), request)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		second, err := svc.Create(context.Background(), request)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if first.ID == second.ID || store.Size() != 2 {
			t.Errorf("expected two distinct items, got %s and %s (size %d)", first.ID, second.ID, store.Size())
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewItemService(memstore.NewStore(), NewRandomIDGenerator(), 0)

		if _, err := svc.Create(context.Background(), nil); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("Create(nil) error = %v, want ErrInvalidRequest", err)
		}
		if _, err := svc.Create(context.Background(), &domain.CreateItemRequest{Name: "Cola", Brand: " "}); !errors.Is(err, domain.ErrNameAndBrandRequired) {
			t.Errorf("Create() error = %v, want ErrNameAndBrandRequired", err)
		}
	})

	t.Run("id retry budget", func(t *testing.T) {
		store := memstore.NewStore()
		store.Seed(domain.ItemRecord{ID: "taken001", Name: "Water", Brand: "Spring"})
		svc := NewItemService(store, &scriptedIDs{ids: []string{"taken001", "taken001"}}, 2)

		_, err := svc.Create(context.Background(), &domain.CreateItemRequest{Name: "Cola", Brand: "Acme"})
		if !errors.Is(err, domain.ErrDuplicateID) {
			t.Errorf("Create() error = %v, want ErrDuplicateID", err)
		}
		if store.Size() != 1 {
			t.Errorf("store has %d items, want 1", store.Size())
		}
	})

	t.Run("commit failure rolls back", func(t *testing.T) {
		tx := NewMockCatalogueTx()
		tx.commitError = errors.New("connection lost")
		svc := NewItemService(&MockCatalogueStore{tx: tx}, NewRandomIDGenerator(), 0)

		_, err := svc.Create(context.Background(), &domain.CreateItemRequest{Name: "Cola", Brand: "Acme"})
		if !errors.Is(err, domain.ErrStoreFailure) {
			t.Errorf("Create() error = %v, want ErrStoreFailure", err)
		}
		if !tx.rolledBack {
			t.Error("expected rollback after failed commit")
		}
	})
}

func TestItemService_Get(t *testing.T) {
	store := memstore.NewStore()
	store.Seed(domain.ItemRecord{ID: "abc12345", Name: "Cola", Brand: "Acme"})
	svc := NewItemService(store, NewRandomIDGenerator(), 0)

	item, err := svc.Get(context.Background(), " abc12345 ")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if item.Name != "Cola" {
		t.Errorf("Name = %q, want Cola", item.Name)
	}

	if _, err := svc.Get(context.Background(), "missing1"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Get() error = %v, want ErrItemNotFound", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("Get() error = %v, want ErrInvalidRequest", err)
	}
}

func TestItemService_GetStoreError(t *testing.T) {
	svc := NewItemService(&failingReaderStore{}, NewRandomIDGenerator(), 0)

	if _, err := svc.Get(context.Background(), "abc12345"); !errors.Is(err, domain.ErrStoreFailure) {
		t.Errorf("Get() error = %v, want ErrStoreFailure", err)
	}
}

// failingReaderStore fails every lookup
type failingReaderStore struct {
	MockCatalogueStore
}

func (f *failingReaderStore) FindByID(ctx context.Context, id string) (*domain.ItemRecord, error) {
	return nil, errors.New("timeout")
}
