// Package migrations applies the relational schema at startup. Statements
// are idempotent so repeated application against the same database is safe.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password TEXT NOT NULL
	)`,
	// Uniqueness lives in the store so a raced duplicate registration fails
	// even when the dispatcher's pre-check passed for both requests.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_account_username ON account (username)`,
	`CREATE TABLE IF NOT EXISTS message (
		message_id BIGSERIAL PRIMARY KEY,
		posted_by BIGINT NOT NULL,
		message_text VARCHAR(255) NOT NULL,
		time_posted_epoch BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_message_posted_by ON message (posted_by)`,
}

// Apply executes all schema statements in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
