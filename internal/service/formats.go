package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Format defines how to map a CSV export's columns onto a project.
// Column indexes are zero-based; -1 means the column is absent.
type Format struct {
	Name             string `toml:"name"`
	Description      string `toml:"description"`
	HasHeader        bool   `toml:"has_header"`
	Delimiter        string `toml:"delimiter"`
	DateFormat       string `toml:"date_format"`
	TitleCol         int    `toml:"title_col"`
	StatusCol        int    `toml:"status_col"`
	CompanyCol       int    `toml:"company_col"`
	ArtistCol        int    `toml:"artist_col"`
	DrillShapeCol    int    `toml:"drill_shape_col"`
	WidthCol         int    `toml:"width_col"`
	HeightCol        int    `toml:"height_col"`
	DiamondsCol      int    `toml:"diamonds_col"`
	KitCategoryCol   int    `toml:"kit_category_col"`
	DatePurchasedCol int    `toml:"date_purchased_col"`
	DateStartedCol   int    `toml:"date_started_col"`
	DateCompletedCol int    `toml:"date_completed_col"`
	TagsCol          int    `toml:"tags_col"`
	NotesCol         int    `toml:"notes_col"`
}

type formatsFile struct {
	Format []Format `toml:"format"`
}

const defaultFormatsTOML = `# Organized Glitter CSV import formats.
# Add new [[format]] blocks for other apps' exports.

[[format]]
name = "glitter"
description = "Organized Glitter export"
has_header = true
delimiter = ","
date_format = "2006-01-02"
title_col = 0
status_col = 1
company_col = 2
artist_col = 3
drill_shape_col = 4
width_col = 5
height_col = 6
diamonds_col = 7
kit_category_col = 8
date_purchased_col = 9
date_started_col = 10
date_completed_col = 11
tags_col = 12
notes_col = 13
`

// DefaultFormat is the format export/import pair used round-trip.
func DefaultFormat() Format {
	formats, err := parseFormats([]byte(defaultFormatsTOML))
	if err != nil || len(formats) == 0 {
		// The embedded default is parsed at startup in tests; reaching
		// here means the literal above is broken.
		panic(fmt.Sprintf("built-in formats invalid: %v", err))
	}
	return formats[0]
}

// LoadFormats reads the formats file, creating it with defaults when
// missing.
func LoadFormats() ([]Format, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("user config dir: %w", err)
	}
	path := filepath.Join(dir, "glitter", "formats.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultFormatsTOML), 0o644); wErr != nil {
			return nil, fmt.Errorf("write default formats: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formats: %w", err)
	}
	return parseFormats(data)
}

func parseFormats(data []byte) ([]Format, error) {
	var f formatsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse formats: %w", err)
	}
	return f.Format, nil
}
