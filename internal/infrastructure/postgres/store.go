// Package postgres implements the catalogue store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricelens/backend/internal/domain"
)

type pgPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is a pgx-backed catalogue
type Store struct {
	pool pgPool
}

// NewStore wraps an existing pool
func NewStore(pool pgPool) *Store {
	return &Store{pool: pool}
}

// Open connects a pool to dsn and verifies it with a ping
func Open(ctx context.Context, dsn string, maxConns int32) (*Store, func(), error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pinging postgres: %w", err)
	}

	log.Printf("[STORE] postgres pool ready (max_conns=%d)", cfg.MaxConns)
	return NewStore(pool), pool.Close, nil
}

const selectColumns = `id, name, brand, COALESCE(quantity, ''), COALESCE(feature, ''),
  COALESCE(product_color, ''), COALESCE(pic_website, ''), created_at`

// trimChars is the ASCII whitespace set strings.TrimSpace strips
const trimChars = `E' \t\n\r\f\x0B'`

// fold wraps a column or parameter in the same case and whitespace folding
// as domain.FoldKey so both sides of a comparison are normalised in SQL.
func fold(expr string) string {
	return "lower(btrim(" + expr + ", " + trimChars + "))"
}

// FindByExactBrandName returns items whose name and brand match under domain.FoldKey
func (s *Store) FindByExactBrandName(ctx context.Context, name, brand string) ([]domain.ItemRecord, error) {
	rows, err := s.pool.Query(ctx, `
SELECT `+selectColumns+`
FROM items
WHERE `+fold("name")+` = `+fold("$1")+`
  AND `+fold("brand")+` = `+fold("$2")+`
ORDER BY created_at, id
`, name, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ItemRecord
	for rows.Next() {
		var item domain.ItemRecord
		if err := scanItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindByID returns the item with the given id or domain.ErrItemNotFound
func (s *Store) FindByID(ctx context.Context, id string) (*domain.ItemRecord, error) {
	var item domain.ItemRecord
	err := scanItem(s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM items WHERE id = $1`, id), &item)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Begin starts a transaction
func (s *Store) Begin(ctx context.Context) (domain.CatalogueTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &catalogueTx{tx: tx}, nil
}

type catalogueTx struct {
	tx pgx.Tx
}

func (t *catalogueTx) FindByNormalizedTuple(ctx context.Context, name, brand, quantity, feature string) (*domain.ItemRecord, error) {
	var item domain.ItemRecord
	err := scanItem(t.tx.QueryRow(ctx, `
SELECT `+selectColumns+`
FROM items
WHERE `+fold("name")+` = `+fold("$1")+`
  AND `+fold("brand")+` = `+fold("$2")+`
  AND `+fold("COALESCE(quantity, '')")+` = `+fold("$3")+`
  AND `+fold("COALESCE(feature, '')")+` = `+fold("$4")+`
ORDER BY created_at, id
LIMIT 1
`, name, brand, quantity, feature), &item)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// InsertItem uses ON CONFLICT so an id collision does not poison the
// surrounding transaction; no returned row means the id was taken.
func (t *catalogueTx) InsertItem(ctx context.Context, item *domain.ItemRecord) error {
	err := t.tx.QueryRow(ctx, `
INSERT INTO items (id, name, brand, quantity, feature, product_color, pic_website)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
ON CONFLICT (id) DO NOTHING
RETURNING created_at
`, item.ID, item.Name, item.Brand, item.Quantity, item.Feature, item.ProductColor, item.PicWebsite).Scan(&item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isDuplicateID(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}
	return err
}

func (t *catalogueTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *catalogueTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func scanItem(row pgx.Row, item *domain.ItemRecord) error {
	return row.Scan(
		&item.ID,
		&item.Name,
		&item.Brand,
		&item.Quantity,
		&item.Feature,
		&item.ProductColor,
		&item.PicWebsite,
		&item.CreatedAt,
	)
}
