package postgres

import (
	"context"
	"fmt"
)

var schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
  id            text PRIMARY KEY,
  name          text NOT NULL,
  brand         text NOT NULL,
  quantity      text,
  feature       text,
  product_color text,
  pic_website   text,
  created_at    timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS items_name_brand_fold_idx
  ON items ((`+fold("name")+`), (`+fold("brand")+`));
`

// EnsureSchema creates the items table and its lookup index if missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
