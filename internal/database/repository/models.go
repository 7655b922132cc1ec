package repository

import "time"

// Project represents a diamond-painting project row.
type Project struct {
	ID            string
	UserID        string
	Title         string
	Status        string
	Company       *string
	Artist        *string
	DrillShape    *string
	Width         *int
	Height        *int
	TotalDiamonds *int
	KitCategory   string // "full" or "mini"
	DatePurchased *time.Time
	DateStarted   *time.Time
	DateCompleted *time.Time
	Notes         string
	ImageURL      *string
	SourceURL     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Tags          []Tag
}

// YearFinished returns the completion year as a string, or "" when the
// project has no completion date.
func (p Project) YearFinished() string {
	if p.DateCompleted == nil {
		return ""
	}
	return p.DateCompleted.Format("2006")
}

// Tag represents a tag row.
type Tag struct {
	ID     string
	UserID string
	Name   string
}

// ProgressNote represents one dated progress entry on a project.
type ProgressNote struct {
	ID        string
	ProjectID string
	Date      time.Time
	Content   string
	ImageURL  *string
	CreatedAt time.Time
}

// UserSettings holds the per-user dashboard snapshot. NavigationContext
// is an opaque JSON payload owned by the session package.
type UserSettings struct {
	ID                string
	UserID            string
	NavigationContext []byte
	UpdatedAt         time.Time
}

// StatusCount is one row of the unfiltered per-status breakdown.
type StatusCount struct {
	Status string
	Count  int
}
