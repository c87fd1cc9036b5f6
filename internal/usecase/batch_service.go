package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// DefaultMaxBatchRows caps a single find-or-create call
const DefaultMaxBatchRows = 500

// BatchConfig holds configuration for the batch service
type BatchConfig struct {
	MaxRows            int
	IDAttempts         int
	EnableDebugLogging bool
}

// BatchService deduplicates incoming item rows against the catalogue and
// mints ids for the new ones. A whole batch runs in one store transaction.
//
// Two concurrent batches can both miss the lookup for the same new item and
// insert it twice under different ids; only id uniqueness is enforced by the
// store. A unique constraint on the normalized tuple would close that gap.
type BatchService struct {
	store              domain.CatalogueStore
	ids                IDGenerator
	maxRows            int
	idAttempts         int
	enableDebugLogging bool
}

// NewBatchService creates a new batch service with dependencies
func NewBatchService(store domain.CatalogueStore, ids IDGenerator, config BatchConfig) *BatchService {
	maxRows := config.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxBatchRows
	}

	idAttempts := config.IDAttempts
	if idAttempts <= 0 {
		idAttempts = DefaultIDAttempts
	}

	return &BatchService{
		store:              store,
		ids:                ids,
		maxRows:            maxRows,
		idAttempts:         idAttempts,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// MaxRows returns the largest batch the service accepts
func (s *BatchService) MaxRows() int {
	return s.maxRows
}

// FindOrCreateBatch returns one result per row, in input order.
// Rows with a blank name or brand get a per-row error and do not affect the
// others. Any storage failure, including exhausting the id retry budget,
// rolls back every row of the batch and is returned as the error.
func (s *BatchService) FindOrCreateBatch(ctx context.Context, rows []domain.BatchRow) ([]domain.BatchRowResult, error) {
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit %d", domain.ErrBatchTooLarge, len(rows), s.maxRows)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", domain.ErrStoreFailure, err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	results := make([]domain.BatchRowResult, len(rows))
	var created, existing, invalid int
	for i, row := range rows {
		result, err := s.processRow(ctx, tx, row)
		if err != nil {
			log.Printf("[BATCH] row %d aborted batch of %d: %v", i, len(rows), err)
			return nil, err
		}
		results[i] = result

		switch {
		case !result.OK:
			invalid++
		case *result.Existed:
			existing++
		default:
			created++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", domain.ErrStoreFailure, err)
	}

	log.Printf("[BATCH] committed %d rows: created=%d existing=%d invalid=%d",
		len(rows), created, existing, invalid)
	return results, nil
}

// processRow runs validate, lookup and insert for one row
func (s *BatchService) processRow(ctx context.Context, tx domain.CatalogueTx, row domain.BatchRow) (domain.BatchRowResult, error) {
	name := strings.TrimSpace(row.Name)
	brand := strings.TrimSpace(row.Brand)
	if name == "" || brand == "" {
		return domain.BatchRowResult{OK: false, Error: domain.CodeNameAndBrandRequired}, nil
	}

	quantity := strings.TrimSpace(row.Quantity)
	feature := strings.TrimSpace(row.Feature)

	// Stores fold both sides with domain.FoldKey, so raw values are passed.
	key := KeyOf(name, brand, quantity, feature)
	found, err := tx.FindByNormalizedTuple(ctx, name, brand, quantity, feature)
	if err != nil {
		return domain.BatchRowResult{}, fmt.Errorf("%w: lookup: %v", domain.ErrStoreFailure, err)
	}
	if found != nil {
		if s.enableDebugLogging {
			log.Printf("[BATCH] %+v matched existing item %s", key, found.ID)
		}
		return domain.BatchRowResult{OK: true, ID: found.ID, Existed: boolPtr(true)}, nil
	}

	item := &domain.ItemRecord{
		Name:     name,
		Brand:    brand,
		Quantity: quantity,
		Feature:  feature,
	}
	if err := insertWithRetry(ctx, tx, s.ids, s.idAttempts, item); err != nil {
		return domain.BatchRowResult{}, err
	}

	if s.enableDebugLogging {
		log.Printf("[BATCH] %+v created item %s", key, item.ID)
	}
	return domain.BatchRowResult{OK: true, ID: item.ID, Existed: boolPtr(false)}, nil
}

func boolPtr(b bool) *bool {
	return &b
}
