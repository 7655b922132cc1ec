package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// TagRepo handles tags. The tag list doubles as the metadata the
// session reconciler needs to resolve tag names from deep links.
type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{db: db} }

func (r *TagRepo) Upsert(ctx context.Context, t Tag) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tags(id, user_id, name) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET name=excluded.name;
	`, t.ID, t.UserID, t.Name)
	if err != nil {
		return fmt.Errorf("upsert tag: %w", err)
	}
	return nil
}

func (r *TagRepo) ByName(ctx context.Context, userID, name string) (*Tag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		userID, name)
	var t Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TagRepo) List(ctx context.Context, userID string) ([]Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = ? ORDER BY name COLLATE NOCASE`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var out []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TagRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	return err
}
