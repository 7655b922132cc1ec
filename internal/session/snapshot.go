package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// navigationContext is the JSON payload stored in the user_settings
// record. The filter fields live under "filters"; sort and pagination
// sit beside them at the top level, mirroring the shape the hosted
// store uses so exports stay interchangeable.
type navigationContext struct {
	Filters             snapshotFilters     `json:"filters"`
	SortField           string              `json:"sortField"`
	SortDirection       string              `json:"sortDirection"`
	CurrentPage         int                 `json:"currentPage"`
	PageSize            int                 `json:"pageSize"`
	PreservationContext preservationContext `json:"preservationContext"`
}

type snapshotFilters struct {
	Status           string   `json:"status"`
	Company          string   `json:"company"`
	Artist           string   `json:"artist"`
	DrillShape       string   `json:"drillShape"`
	YearFinished     string   `json:"yearFinished"`
	IncludeMiniKits  bool     `json:"includeMiniKits"`
	IncludeDestashed bool     `json:"includeDestashed"`
	IncludeArchived  bool     `json:"includeArchived"`
	IncludeWishlist  bool     `json:"includeWishlist"`
	IncludeOnHold    bool     `json:"includeOnHold"`
	SearchTerm       string   `json:"searchTerm"`
	SelectedTags     []string `json:"selectedTags"`
	ViewType         string   `json:"viewType"`
}

type preservationContext struct {
	ScrollPosition int       `json:"scrollPosition"`
	Timestamp      time.Time `json:"timestamp"`
}

// Snapshot is a decoded settings record.
type Snapshot struct {
	State          filters.State
	ScrollPosition int
	Timestamp      time.Time
}

// EncodeSnapshot serializes the state for the settings record.
func EncodeSnapshot(s filters.State, scrollPosition int, now time.Time) ([]byte, error) {
	nc := navigationContext{
		Filters: snapshotFilters{
			Status:           string(s.ActiveStatus),
			Company:          s.SelectedCompany,
			Artist:           s.SelectedArtist,
			DrillShape:       s.SelectedDrillShape,
			YearFinished:     s.SelectedYearFinished,
			IncludeMiniKits:  s.IncludeMiniKits,
			IncludeDestashed: s.IncludeDestashed,
			IncludeArchived:  s.IncludeArchived,
			IncludeWishlist:  s.IncludeWishlist,
			IncludeOnHold:    s.IncludeOnHold,
			SearchTerm:       s.SearchTerm,
			SelectedTags:     s.SelectedTags,
			ViewType:         string(s.ViewType),
		},
		SortField:     string(s.SortField),
		SortDirection: string(s.SortDirection),
		CurrentPage:   s.CurrentPage,
		PageSize:      s.PageSize,
		PreservationContext: preservationContext{
			ScrollPosition: scrollPosition,
			Timestamp:      now.UTC(),
		},
	}
	data, err := json.Marshal(nc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a settings payload back into a state. Unknown
// fields are ignored so older and newer payload shapes both load.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var nc navigationContext
	if err := json.Unmarshal(data, &nc); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	s := filters.State{
		ActiveStatus:         filters.Status(nc.Filters.Status),
		SelectedCompany:      nc.Filters.Company,
		SelectedArtist:       nc.Filters.Artist,
		SelectedDrillShape:   nc.Filters.DrillShape,
		SelectedYearFinished: nc.Filters.YearFinished,
		IncludeMiniKits:      nc.Filters.IncludeMiniKits,
		IncludeDestashed:     nc.Filters.IncludeDestashed,
		IncludeArchived:      nc.Filters.IncludeArchived,
		IncludeWishlist:      nc.Filters.IncludeWishlist,
		IncludeOnHold:        nc.Filters.IncludeOnHold,
		SearchTerm:           nc.Filters.SearchTerm,
		SelectedTags:         nc.Filters.SelectedTags,
		SortField:            filters.SortField(nc.SortField),
		SortDirection:        filters.SortDirection(nc.SortDirection),
		CurrentPage:          nc.CurrentPage,
		PageSize:             nc.PageSize,
		ViewType:             filters.ViewType(nc.Filters.ViewType),
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	return Snapshot{
		State:          s,
		ScrollPosition: nc.PreservationContext.ScrollPosition,
		Timestamp:      nc.PreservationContext.Timestamp,
	}, nil
}
