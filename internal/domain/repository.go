package domain

import "context"

// CatalogueReader exposes the read-only lookups used by resolution
type CatalogueReader interface {
	// FindByExactBrandName returns every item whose name and brand equal the
	// arguments under FoldKey.
	FindByExactBrandName(ctx context.Context, name, brand string) ([]ItemRecord, error)
	FindByID(ctx context.Context, id string) (*ItemRecord, error)
}

// CatalogueTx is a unit of work against the catalogue. Rollback after a
// successful Commit is a no-op.
type CatalogueTx interface {
	// FindByNormalizedTuple matches name, brand, quantity and feature under
	// FoldKey, applied to both the stored columns and the arguments, with
	// NULL treated as the empty string. Returns nil, nil when nothing matches.
	FindByNormalizedTuple(ctx context.Context, name, brand, quantity, feature string) (*ItemRecord, error)
	// InsertItem stores a new item. It returns an error wrapping
	// ErrDuplicateID when item.ID is already taken.
	InsertItem(ctx context.Context, item *ItemRecord) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CatalogueStore is the storage capability the core depends on
type CatalogueStore interface {
	CatalogueReader
	Begin(ctx context.Context) (CatalogueTx, error)
}
