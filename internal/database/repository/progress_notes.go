package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ProgressNoteRepo handles dated progress entries on projects.
type ProgressNoteRepo struct {
	db *sql.DB
}

func NewProgressNoteRepo(db *sql.DB) *ProgressNoteRepo { return &ProgressNoteRepo{db: db} }

func (r *ProgressNoteRepo) Add(ctx context.Context, n ProgressNote) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO progress_notes(id, project_id, date, content, image_url, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.ProjectID, n.Date, n.Content, n.ImageURL, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("add progress note: %w", err)
	}
	return nil
}

func (r *ProgressNoteRepo) ForProject(ctx context.Context, projectID string) ([]ProgressNote, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, project_id, date, content, image_url, created_at FROM progress_notes
	WHERE project_id = ? ORDER BY date DESC, created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("progress notes: %w", err)
	}
	defer rows.Close()
	var out []ProgressNote
	for rows.Next() {
		var n ProgressNote
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.Date, &n.Content, &n.ImageURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *ProgressNoteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress_notes WHERE id = ?`, id)
	return err
}
