// Package filters holds the dashboard filter state and the pure reducer
// that is the only way to change it. Nothing here touches the database,
// the network, or the terminal; the session package owns all of that.
package filters

// Status is a project lifecycle category. StatusAll is the unfiltered
// tab, not a status a project can actually have.
type Status string

const (
	StatusAll       Status = "all"
	StatusWishlist  Status = "wishlist"
	StatusPurchased Status = "purchased"
	StatusStash     Status = "stash"
	StatusProgress  Status = "progress"
	StatusOnHold    Status = "onhold"
	StatusCompleted Status = "completed"
	StatusDestashed Status = "destashed"
	StatusArchived  Status = "archived"
)

// ProjectStatuses lists every status a project row can carry, in tab order.
var ProjectStatuses = []Status{
	StatusWishlist,
	StatusPurchased,
	StatusStash,
	StatusProgress,
	StatusOnHold,
	StatusCompleted,
	StatusDestashed,
	StatusArchived,
}

// ValidStatus reports whether s is a known status value (including "all").
func ValidStatus(s Status) bool {
	if s == StatusAll {
		return true
	}
	for _, st := range ProjectStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// SortField is a dashboard sort column.
type SortField string

const (
	SortLastUpdated   SortField = "last_updated"
	SortTitle         SortField = "title"
	SortCompany       SortField = "company"
	SortArtist        SortField = "artist"
	SortDatePurchased SortField = "date_purchased"
	SortDateCompleted SortField = "date_completed"
	SortWidth         SortField = "width"
	SortHeight        SortField = "height"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewType selects the dashboard layout.
type ViewType string

const (
	ViewGrid ViewType = "grid"
	ViewList ViewType = "list"
)

// DeviceClass is the client form factor. It is always passed in
// explicitly so defaults stay a pure function of their inputs.
type DeviceClass int

const (
	DeviceDesktop DeviceClass = iota
	DevicePhone
)

// SelectAll is the sentinel for company/artist/drill-shape/year
// dropdowns meaning "no filter on this axis".
const SelectAll = "all"

const (
	defaultPageSizeDesktop = 25
	defaultPageSizePhone   = 10
)

// State is the canonical dashboard filter/sort/pagination state. One
// instance exists per authenticated session and it is only ever
// replaced wholesale by Reduce, never mutated in place.
type State struct {
	ActiveStatus Status

	SelectedCompany      string
	SelectedArtist       string
	SelectedDrillShape   string
	SelectedYearFinished string

	IncludeMiniKits  bool
	IncludeDestashed bool
	IncludeArchived  bool
	IncludeWishlist  bool
	IncludeOnHold    bool

	SearchTerm   string
	SelectedTags []string

	SortField     SortField
	SortDirection SortDirection

	CurrentPage int
	PageSize    int

	ViewType ViewType
}

// Defaults returns the initial filter state for a fresh session.
// Phones get the list layout and a smaller page; everything else is
// shared.
func Defaults(device DeviceClass) State {
	s := State{
		ActiveStatus:         StatusAll,
		SelectedCompany:      SelectAll,
		SelectedArtist:       SelectAll,
		SelectedDrillShape:   SelectAll,
		SelectedYearFinished: SelectAll,
		IncludeMiniKits:      true,
		IncludeDestashed:     true,
		IncludeArchived:      false,
		IncludeWishlist:      false,
		IncludeOnHold:        true,
		SearchTerm:           "",
		SelectedTags:         nil,
		SortField:            SortLastUpdated,
		SortDirection:        SortDesc,
		CurrentPage:          1,
		PageSize:             defaultPageSizeDesktop,
		ViewType:             ViewGrid,
	}
	if device == DevicePhone {
		s.ViewType = ViewList
		s.PageSize = defaultPageSizePhone
	}
	return s
}

// HasTag reports whether id is in the selected tag set.
func (s State) HasTag(id string) bool {
	for _, t := range s.SelectedTags {
		if t == id {
			return true
		}
	}
	return false
}

// Equal reports deep equality of two states. SelectedTags is compared
// as a list; callers that need set semantics normalize before storing.
func (s State) Equal(o State) bool {
	if s.ActiveStatus != o.ActiveStatus ||
		s.SelectedCompany != o.SelectedCompany ||
		s.SelectedArtist != o.SelectedArtist ||
		s.SelectedDrillShape != o.SelectedDrillShape ||
		s.SelectedYearFinished != o.SelectedYearFinished ||
		s.IncludeMiniKits != o.IncludeMiniKits ||
		s.IncludeDestashed != o.IncludeDestashed ||
		s.IncludeArchived != o.IncludeArchived ||
		s.IncludeWishlist != o.IncludeWishlist ||
		s.IncludeOnHold != o.IncludeOnHold ||
		s.SearchTerm != o.SearchTerm ||
		s.SortField != o.SortField ||
		s.SortDirection != o.SortDirection ||
		s.CurrentPage != o.CurrentPage ||
		s.PageSize != o.PageSize ||
		s.ViewType != o.ViewType {
		return false
	}
	if len(s.SelectedTags) != len(o.SelectedTags) {
		return false
	}
	for i := range s.SelectedTags {
		if s.SelectedTags[i] != o.SelectedTags[i] {
			return false
		}
	}
	return true
}

// cloneTags copies the tag list so reducer results never alias the
// input state's backing array.
func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
