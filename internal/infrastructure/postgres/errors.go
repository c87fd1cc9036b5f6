package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation = "23505"
	itemsPrimaryKey         = "items_pkey"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil {
		return strings.TrimSpace(pgErr.Code)
	}
	return ""
}

// isDuplicateID reports whether err is a unique violation on the item id.
// A violation without a constraint name is treated as an id collision since
// the primary key is the only unique constraint on items.
func isDuplicateID(err error) bool {
	if pgErrorCode(err) != sqlStateUniqueViolation {
		return false
	}
	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	name := strings.TrimSpace(pgErr.ConstraintName)
	return name == "" || name == itemsPrimaryKey
}
