package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/serabi/organized-glitter-sub007/internal/database"
	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
)

// tagFuzzyDistance is the maximum edit distance at which an imported
// tag name is folded into an existing tag instead of creating a
// near-duplicate ("Halloween" vs "haloween").
const tagFuzzyDistance = 2

// ImportService ingests projects from CSV exports.
type ImportService struct {
	Projects *repository.ProjectRepo
	Tags     *repository.TagRepo

	tagCache map[string]repository.Tag // lowercased name -> tag
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported    int
	Skipped     int
	TagsCreated int
	TagsMerged  int
	Errors      []error
}

// ImportCSV ingests projects for userID using the given column format.
// Rows that fail to parse are recorded in Errors and skipped; the
// import never aborts halfway through a file.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, userID string, format Format) (ImportResult, error) {
	res := ImportResult{}
	if err := s.primeTagCache(ctx, userID); err != nil {
		return res, fmt.Errorf("load existing tags: %w", err)
	}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	if format.Delimiter != "" {
		csvr.Comma = rune(format.Delimiter[0])
	}

	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && format.HasHeader {
			continue
		}
		if err := s.importRow(ctx, rec, userID, format, &res); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
		}
	}
	return res, nil
}

func (s *ImportService) importRow(ctx context.Context, rec []string, userID string, f Format, res *ImportResult) error {
	title := strings.TrimSpace(field(rec, f.TitleCol))
	if title == "" {
		res.Skipped++
		return nil
	}

	status := strings.ToLower(strings.TrimSpace(field(rec, f.StatusCol)))
	if status == "" {
		status = "wishlist"
	}

	now := database.Now()
	p := repository.Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Status:      status,
		Company:     nullableStr(field(rec, f.CompanyCol)),
		Artist:      nullableStr(field(rec, f.ArtistCol)),
		DrillShape:  nullableStr(strings.ToLower(field(rec, f.DrillShapeCol))),
		KitCategory: kitCategory(field(rec, f.KitCategoryCol)),
		Notes:       strings.TrimSpace(field(rec, f.NotesCol)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if w, ok := intField(rec, f.WidthCol); ok {
		p.Width = &w
	}
	if h, ok := intField(rec, f.HeightCol); ok {
		p.Height = &h
	}
	if d, ok := intField(rec, f.DiamondsCol); ok {
		p.TotalDiamonds = &d
	}
	dateCols := []struct {
		col int
		dst **time.Time
	}{
		{f.DatePurchasedCol, &p.DatePurchased},
		{f.DateStartedCol, &p.DateStarted},
		{f.DateCompletedCol, &p.DateCompleted},
	}
	for _, dc := range dateCols {
		if raw := strings.TrimSpace(field(rec, dc.col)); raw != "" {
			d, err := parseDate(raw, f.DateFormat)
			if err != nil {
				return fmt.Errorf("date %q: %w", raw, err)
			}
			*dc.dst = &d
		}
	}

	tagIDs, err := s.resolveTags(ctx, userID, field(rec, f.TagsCol), res)
	if err != nil {
		return err
	}
	// Row and tag links land atomically; a bad link drops the whole row.
	if err := s.Projects.UpsertWithTags(ctx, p, tagIDs); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	res.Imported++
	return nil
}

// resolveTags splits a comma-joined tag cell and maps each name to a
// tag id: exact case-insensitive match first, then a fuzzy match
// against existing names, finally a new tag.
func (s *ImportService) resolveTags(ctx context.Context, userID, cell string, res *ImportResult) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(cell, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		if t, ok := s.tagCache[key]; ok {
			ids = append(ids, t.ID)
			continue
		}
		if t, ok := s.fuzzyTagMatch(key); ok {
			res.TagsMerged++
			ids = append(ids, t.ID)
			continue
		}
		t := repository.Tag{ID: uuid.NewString(), UserID: userID, Name: name}
		if err := s.Tags.Upsert(ctx, t); err != nil {
			return nil, fmt.Errorf("create tag %q: %w", name, err)
		}
		s.tagCache[key] = t
		res.TagsCreated++
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (s *ImportService) fuzzyTagMatch(key string) (repository.Tag, bool) {
	best := repository.Tag{}
	bestDist := tagFuzzyDistance + 1
	for existing, t := range s.tagCache {
		d := levenshtein.ComputeDistance(key, existing)
		if d < bestDist {
			bestDist = d
			best = t
		}
	}
	return best, bestDist <= tagFuzzyDistance
}

func (s *ImportService) primeTagCache(ctx context.Context, userID string) error {
	s.tagCache = make(map[string]repository.Tag)
	tags, err := s.Tags.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, t := range tags {
		s.tagCache[strings.ToLower(t.Name)] = t
	}
	return nil
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}

func intField(rec []string, col int) (int, bool) {
	raw := strings.TrimSpace(field(rec, col))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func kitCategory(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "mini") {
		return "mini"
	}
	return "full"
}

func parseDate(raw, layout string) (time.Time, error) {
	if layout == "" {
		layout = "2006-01-02"
	}
	return time.Parse(layout, raw)
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
