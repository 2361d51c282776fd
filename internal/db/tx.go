// Package db holds small helpers shared by the sqlite-backed stores.
package db

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// NullMillis reads a millisecond column as a duration; NULL is zero.
func NullMillis(n sql.NullInt64) time.Duration {
	if !n.Valid {
		return 0
	}
	return time.Duration(n.Int64) * time.Millisecond
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
