package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
)

// ExportService writes the user's full collection as CSV in the
// default import format, so export → import is lossless for the
// columns the format carries. The dashboard's current filters are
// never applied to an export.
type ExportService struct {
	Projects *repository.ProjectRepo
}

var exportHeader = []string{
	"title", "status", "company", "artist", "drill_shape", "width",
	"height", "total_diamonds", "kit_category", "date_purchased",
	"date_started", "date_completed", "tags", "notes",
}

func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer, userID string) (int, error) {
	projects, err := s.Projects.ListAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, p := range projects {
		if err := cw.Write(exportRow(p)); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush: %w", err)
	}
	return len(projects), nil
}

func exportRow(p repository.Project) []string {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	return []string{
		p.Title,
		p.Status,
		strOrEmpty(p.Company),
		strOrEmpty(p.Artist),
		strOrEmpty(p.DrillShape),
		intOrEmpty(p.Width),
		intOrEmpty(p.Height),
		intOrEmpty(p.TotalDiamonds),
		p.KitCategory,
		dateOrEmpty(p.DatePurchased),
		dateOrEmpty(p.DateStarted),
		dateOrEmpty(p.DateCompleted),
		strings.Join(tags, ", "),
		p.Notes,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
