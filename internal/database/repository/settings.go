package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SettingsRepo handles the per-user dashboard snapshot record.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// ForUser returns the first settings record for the user, or nil when
// none exists yet. A missing record is the normal first-session case,
// not an error.
func (r *SettingsRepo) ForUser(ctx context.Context, userID string) (*UserSettings, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, user_id, navigation_context, updated_at FROM user_settings
	WHERE user_id = ? ORDER BY updated_at DESC LIMIT 1`, userID)
	var s UserSettings
	if err := row.Scan(&s.ID, &s.UserID, &s.NavigationContext, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("settings for user: %w", err)
	}
	return &s, nil
}

// Upsert writes the user's snapshot, keeping at most one record per
// user regardless of how many sessions have saved.
func (r *SettingsRepo) Upsert(ctx context.Context, userID string, navigationContext []byte, now time.Time) error {
	existing, err := r.ForUser(ctx, userID)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	if existing != nil {
		id = existing.ID
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO user_settings(id, user_id, navigation_context, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		navigation_context=excluded.navigation_context,
		updated_at=excluded.updated_at;
	`, id, userID, navigationContext, now.UTC())
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
