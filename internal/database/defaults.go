package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// LocalUserID is the deterministic id of the single local user. The
// schema keeps a users table so the data model matches the hosted
// multi-user store, but a local install only ever has one row.
var LocalUserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:local")).String()

// SeedDefaults ensures the local user row exists. It is idempotent and
// safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	INSERT INTO users(id, email) VALUES (?, ?)
	ON CONFLICT(id) DO NOTHING;
	`, LocalUserID, "local@organized.glitter")
	return err
}
