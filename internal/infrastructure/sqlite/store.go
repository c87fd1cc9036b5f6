// Package sqlite implements the catalogue store on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pricelens/backend/internal/domain"
)

// driverName is go-sqlite3 with fold_key registered on every connection.
// SQLite's own lower() only folds ASCII.
const driverName = "sqlite3_fold"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold_key", domain.FoldKey, true)
		},
	})
}

// connParams are appended to every DSN
const connParams = "_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

// Store is a database/sql catalogue backed by go-sqlite3
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and ensures the schema.
// path may be a plain file path or a file: URI with its own query.
// Write transactions take the lock up front so concurrent batches queue
// on busy_timeout instead of failing mid-batch.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(databaseFile(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[STORE] sqlite database ready at %s", path)
	return s, nil
}

// buildDSN appends connParams, extending an existing query string if present
func buildDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + connParams
	}
	return path + "?" + connParams
}

// databaseFile strips a file: prefix and query from path
func databaseFile(path string) string {
	file, _, _ := strings.Cut(path, "?")
	return strings.TrimPrefix(file, "file:")
}

// Close releases the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL,
  brand         TEXT NOT NULL,
  quantity      TEXT,
  feature       TEXT,
  product_color TEXT,
  pic_website   TEXT,
  created_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS items_name_brand_lower_idx
  ON items (lower(name), lower(brand));
`

// EnsureSchema creates the items table and its lookup index if missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const selectColumns = `id, name, brand, COALESCE(quantity, ''), COALESCE(feature, ''),
  COALESCE(product_color, ''), COALESCE(pic_website, ''), created_at`

// FindByExactBrandName returns items whose name and brand match under domain.FoldKey
func (s *Store) FindByExactBrandName(ctx context.Context, name, brand string) ([]domain.ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+selectColumns+`
FROM items
WHERE fold_key(name) = fold_key(?) AND fold_key(brand) = fold_key(?)
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
	err := scanItem(s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM items WHERE id = ?`, id), &item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Begin starts a transaction
func (s *Store) Begin(ctx context.Context) (domain.CatalogueTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &catalogueTx{tx: tx, now: s.now}, nil
}

type catalogueTx struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *catalogueTx) FindByNormalizedTuple(ctx context.Context, name, brand, quantity, feature string) (*domain.ItemRecord, error) {
	var item domain.ItemRecord
	err := scanItem(t.tx.QueryRowContext(ctx, `
SELECT `+selectColumns+`
FROM items
WHERE fold_key(name) = fold_key(?)
  AND fold_key(brand) = fold_key(?)
  AND fold_key(COALESCE(quantity, '')) = fold_key(?)
  AND fold_key(COALESCE(feature, '')) = fold_key(?)
ORDER BY created_at, id
LIMIT 1
`, name, brand, quantity, feature), &item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *catalogueTx) InsertItem(ctx context.Context, item *domain.ItemRecord) error {
	createdAt := t.now().UTC()
	res, err := t.tx.ExecContext(ctx, `
INSERT INTO items (id, name, brand, quantity, feature, product_color, pic_website, created_at)
VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?)
ON CONFLICT (id) DO NOTHING
`, item.ID, item.Name, item.Brand, item.Quantity, item.Feature, item.ProductColor, item.PicWebsite, createdAt)
	if isDuplicateID(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}

	item.CreatedAt = createdAt
	return nil
}

func (t *catalogueTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *catalogueTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func isDuplicateID(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, item *domain.ItemRecord) error {
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
