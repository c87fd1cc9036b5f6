package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// ItemService handles direct item creation and lookup by id
type ItemService struct {
	store      domain.CatalogueStore
	ids        IDGenerator
	idAttempts int
}

// NewItemService creates a new item service. idAttempts <= 0 uses DefaultIDAttempts.
func NewItemService(store domain.CatalogueStore, ids IDGenerator, idAttempts int) *ItemService {
	if idAttempts <= 0 {
		idAttempts = DefaultIDAttempts
	}
	return &ItemService{store: store, ids: ids, idAttempts: idAttempts}
}

// Create inserts a new item without checking for an existing duplicate
func (s *ItemService) Create(ctx context.Context, request *domain.CreateItemRequest) (*domain.ItemRecord, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	item := &domain.ItemRecord{
		Name:         strings.TrimSpace(request.Name),
		Brand:        strings.TrimSpace(request.Brand),
		Quantity:     strings.TrimSpace(request.Quantity),
		Feature:      strings.TrimSpace(request.Feature),
		ProductColor: strings.TrimSpace(request.ProductColor),
		PicWebsite:   strings.TrimSpace(request.PicWebsite),
	}
	if item.Name == "" || item.Brand == "" {
		return nil, domain.ErrNameAndBrandRequired
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", domain.ErrStoreFailure, err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := insertWithRetry(ctx, tx, s.ids, s.idAttempts, item); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", domain.ErrStoreFailure, err)
	}

	log.Printf("[ITEM] created %s (%q / %q)", item.ID, item.Brand, item.Name)
	return item, nil
}

// Get returns the item with the given id
func (s *ItemService) Get(ctx context.Context, id string) (*domain.ItemRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find by id: %v", domain.ErrStoreFailure, err)
	}
	return item, nil
}
