package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/serabi/organized-glitter-sub007/internal/database"
	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// ProjectRepo handles projects and their tag links.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

const projectColumns = `p.id, p.user_id, p.title, p.status, p.company, p.artist,
	p.drill_shape, p.width, p.height, p.total_diamonds, p.kit_category,
	p.date_purchased, p.date_started, p.date_completed, p.notes,
	p.image_url, p.source_url, p.created_at, p.updated_at`

// execer is satisfied by both *sql.DB and *sql.Tx so the write helpers
// can run standalone or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ProjectRepo) Upsert(ctx context.Context, p Project) error {
	return upsertProject(ctx, r.db, p)
}

// UpsertWithTags writes the project row and its tag links in one
// transaction, so a failed link never leaves a half-imported project.
func (r *ProjectRepo) UpsertWithTags(ctx context.Context, p Project, tagIDs []string) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if err := upsertProject(ctx, tx, p); err != nil {
			return err
		}
		return replaceTagLinks(ctx, tx, p.ID, tagIDs)
	})
}

func upsertProject(ctx context.Context, e execer, p Project) error {
	_, err := e.ExecContext(ctx, `
	INSERT INTO projects(id, user_id, title, status, company, artist, drill_shape,
		width, height, total_diamonds, kit_category, date_purchased, date_started,
		date_completed, notes, image_url, source_url, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title=excluded.title, status=excluded.status, company=excluded.company,
		artist=excluded.artist, drill_shape=excluded.drill_shape,
		width=excluded.width, height=excluded.height,
		total_diamonds=excluded.total_diamonds, kit_category=excluded.kit_category,
		date_purchased=excluded.date_purchased, date_started=excluded.date_started,
		date_completed=excluded.date_completed, notes=excluded.notes,
		image_url=excluded.image_url, source_url=excluded.source_url,
		updated_at=excluded.updated_at;
	`, p.ID, p.UserID, p.Title, p.Status, p.Company, p.Artist, p.DrillShape,
		p.Width, p.Height, p.TotalDiamonds, p.KitCategory, p.DatePurchased,
		p.DateStarted, p.DateCompleted, p.Notes, p.ImageURL, p.SourceURL,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) ByID(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadTags(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// PageResult is one page of the filtered dashboard query.
type PageResult struct {
	Projects   []Project
	TotalCount int
}

// Page returns the dashboard page for the given filter state. All of
// the filtering, sorting and pagination happens in SQL so the result
// is the same regardless of how many projects the user has.
func (r *ProjectRepo) Page(ctx context.Context, userID string, f filters.State) (PageResult, error) {
	where, args := buildProjectFilter(userID, f)

	var total int
	countQ := `SELECT COUNT(DISTINCT p.id) FROM projects p ` + projectFilterJoins(f) + ` WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return PageResult{}, fmt.Errorf("count projects: %w", err)
	}

	limit := f.PageSize
	if limit < 1 {
		limit = 25
	}
	offset := (f.CurrentPage - 1) * limit
	if offset < 0 {
		offset = 0
	}

	q := `SELECT DISTINCT ` + projectColumns + ` FROM projects p ` +
		projectFilterJoins(f) + ` WHERE ` + where +
		` ORDER BY ` + orderClause(f.SortField, f.SortDirection) +
		` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return PageResult{}, fmt.Errorf("page projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return PageResult{}, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return PageResult{}, err
	}
	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return PageResult{}, err
		}
	}
	return PageResult{Projects: out, TotalCount: total}, nil
}

// StatusBreakdown returns unfiltered per-status counts for the user.
// The stats projector uses this for tab badges, so it deliberately
// ignores the current filter state.
func (r *ProjectRepo) StatusBreakdown(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM projects WHERE user_id = ? GROUP BY status`, userID)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out[sc.Status] = sc.Count
	}
	return out, rows.Err()
}

// ListAll returns every project for the user with tags attached,
// ordered by title. The CSV exporter uses this; export always covers
// the full collection, never the filtered view.
func (r *ProjectRepo) ListAll(ctx context.Context, userID string) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.user_id = ? ORDER BY p.title`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Companies returns the distinct company names for dropdown metadata.
func (r *ProjectRepo) Companies(ctx context.Context, userID string) ([]string, error) {
	return r.distinctColumn(ctx, userID, "company")
}

// Artists returns the distinct artist names for dropdown metadata.
func (r *ProjectRepo) Artists(ctx context.Context, userID string) ([]string, error) {
	return r.distinctColumn(ctx, userID, "artist")
}

// YearsFinished returns the distinct completion years, newest first.
func (r *ProjectRepo) YearsFinished(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT DISTINCT strftime('%Y', date_completed) FROM projects
	WHERE user_id = ? AND date_completed IS NOT NULL
	ORDER BY 1 DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("years finished: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) distinctColumn(ctx context.Context, userID, col string) ([]string, error) {
	q := fmt.Sprintf(`SELECT DISTINCT %s FROM projects WHERE user_id = ? AND %s IS NOT NULL AND %s != '' ORDER BY %s COLLATE NOCASE`, col, col, col, col)
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SetTags replaces the project's tag links in one transaction.
func (r *ProjectRepo) SetTags(ctx context.Context, projectID string, tagIDs []string) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		return replaceTagLinks(ctx, tx, projectID, tagIDs)
	})
}

func replaceTagLinks(ctx context.Context, e execer, projectID string, tagIDs []string) error {
	if _, err := e.ExecContext(ctx,
		`DELETE FROM project_tags WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear project tags: %w", err)
	}
	for _, tagID := range tagIDs {
		// OR IGNORE tolerates a duplicate id in the list; a foreign key
		// violation still errors.
		if _, err := e.ExecContext(ctx,
			`INSERT OR IGNORE INTO project_tags(project_id, tag_id) VALUES (?, ?)`,
			projectID, tagID); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

func (r *ProjectRepo) loadTags(ctx context.Context, p *Project) error {
	rows, err := r.db.QueryContext(ctx, `
	SELECT t.id, t.user_id, t.name FROM tags t
	JOIN project_tags pt ON pt.tag_id = t.id
	WHERE pt.project_id = ? ORDER BY t.name`, p.ID)
	if err != nil {
		return fmt.Errorf("load project tags: %w", err)
	}
	defer rows.Close()
	p.Tags = nil
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return err
		}
		p.Tags = append(p.Tags, t)
	}
	return rows.Err()
}

func projectFilterJoins(f filters.State) string {
	if len(f.SelectedTags) > 0 {
		return `JOIN project_tags pt ON pt.project_id = p.id`
	}
	return ""
}

// buildProjectFilter translates the filter state into a WHERE clause.
// An explicit status tab wins outright; on the "all" tab the include
// toggles decide which edge statuses stay visible.
func buildProjectFilter(userID string, f filters.State) (string, []any) {
	conds := []string{"p.user_id = ?"}
	args := []any{userID}

	if f.ActiveStatus != filters.StatusAll {
		conds = append(conds, "p.status = ?")
		args = append(args, string(f.ActiveStatus))
	} else {
		excluded := make([]string, 0, 4)
		if !f.IncludeWishlist {
			excluded = append(excluded, string(filters.StatusWishlist))
		}
		if !f.IncludeDestashed {
			excluded = append(excluded, string(filters.StatusDestashed))
		}
		if !f.IncludeArchived {
			excluded = append(excluded, string(filters.StatusArchived))
		}
		if !f.IncludeOnHold {
			excluded = append(excluded, string(filters.StatusOnHold))
		}
		if len(excluded) > 0 {
			conds = append(conds, "p.status NOT IN ("+placeholders(len(excluded))+")")
			for _, s := range excluded {
				args = append(args, s)
			}
		}
	}

	if !f.IncludeMiniKits {
		conds = append(conds, "p.kit_category != 'mini'")
	}
	if f.SelectedCompany != filters.SelectAll {
		conds = append(conds, "p.company = ?")
		args = append(args, f.SelectedCompany)
	}
	if f.SelectedArtist != filters.SelectAll {
		conds = append(conds, "p.artist = ?")
		args = append(args, f.SelectedArtist)
	}
	if f.SelectedDrillShape != filters.SelectAll {
		conds = append(conds, "p.drill_shape = ?")
		args = append(args, f.SelectedDrillShape)
	}
	if f.SelectedYearFinished != filters.SelectAll {
		conds = append(conds, "strftime('%Y', p.date_completed) = ?")
		args = append(args, f.SelectedYearFinished)
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		like := "%" + term + "%"
		conds = append(conds, "(p.title LIKE ? OR p.notes LIKE ? OR p.company LIKE ? OR p.artist LIKE ?)")
		args = append(args, like, like, like, like)
	}
	if len(f.SelectedTags) > 0 {
		conds = append(conds, "pt.tag_id IN ("+placeholders(len(f.SelectedTags))+")")
		for _, id := range f.SelectedTags {
			args = append(args, id)
		}
	}

	return strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func orderClause(field filters.SortField, dir filters.SortDirection) string {
	col := "p.updated_at"
	switch field {
	case filters.SortTitle:
		col = "p.title COLLATE NOCASE"
	case filters.SortCompany:
		col = "p.company COLLATE NOCASE"
	case filters.SortArtist:
		col = "p.artist COLLATE NOCASE"
	case filters.SortDatePurchased:
		col = "p.date_purchased"
	case filters.SortDateCompleted:
		col = "p.date_completed"
	case filters.SortWidth:
		col = "p.width"
	case filters.SortHeight:
		col = "p.height"
	}
	if dir == filters.SortAsc {
		return col + " ASC"
	}
	return col + " DESC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Status, &p.Company, &p.Artist,
		&p.DrillShape, &p.Width, &p.Height, &p.TotalDiamonds, &p.KitCategory,
		&p.DatePurchased, &p.DateStarted, &p.DateCompleted, &p.Notes,
		&p.ImageURL, &p.SourceURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
