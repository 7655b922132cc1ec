package filters

// Action is the closed set of filter state transitions. The sealed
// isAction method keeps the set fixed at compile time; the reducer
// switches exhaustively over these types.
type Action interface {
	isAction()
}

type SetStatus struct{ Status Status }

type SetCompany struct{ Company string }

type SetArtist struct{ Artist string }

type SetDrillShape struct{ DrillShape string }

type SetYearFinished struct{ Year string }

type SetIncludeMiniKits struct{ Include bool }

type SetIncludeDestashed struct{ Include bool }

type SetIncludeArchived struct{ Include bool }

type SetIncludeWishlist struct{ Include bool }

type SetIncludeOnHold struct{ Include bool }

type SetSearchTerm struct{ Term string }

type SetTags struct{ TagIDs []string }

type ToggleTag struct{ TagID string }

type ClearAllTags struct{}

type SetSort struct {
	Field     SortField
	Direction SortDirection
}

type SetPage struct{ Page int }

type SetPageSize struct{ Size int }

type SetViewType struct{ View ViewType }

// ResetFilters restores defaults but keeps the current device-derived
// view/page-size choices untouched.
type ResetFilters struct{}

// ResetFiltersWithDevice restores the full default state for the given
// device class. This is the only action whose result depends on input
// beyond the current state.
type ResetFiltersWithDevice struct{ Device DeviceClass }

// SetInitialState replaces the whole state. Used by the reconciler for
// both the synchronous defaults/URL dispatch and the later restored
// snapshot dispatch.
type SetInitialState struct{ State State }

// BatchUpdateFilters merges a partial patch in one commit. Nil fields
// are left untouched.
type BatchUpdateFilters struct{ Patch Patch }

// Patch is a partial State; nil pointers mean "leave as is".
type Patch struct {
	ActiveStatus         *Status
	SelectedCompany      *string
	SelectedArtist       *string
	SelectedDrillShape   *string
	SelectedYearFinished *string
	IncludeMiniKits      *bool
	IncludeDestashed     *bool
	IncludeArchived      *bool
	IncludeWishlist      *bool
	IncludeOnHold        *bool
	SearchTerm           *string
	SelectedTags         []string
	SortField            *SortField
	SortDirection        *SortDirection
	PageSize             *int
	ViewType             *ViewType
}

func (SetStatus) isAction()              {}
func (SetCompany) isAction()             {}
func (SetArtist) isAction()              {}
func (SetDrillShape) isAction()          {}
func (SetYearFinished) isAction()        {}
func (SetIncludeMiniKits) isAction()     {}
func (SetIncludeDestashed) isAction()    {}
func (SetIncludeArchived) isAction()     {}
func (SetIncludeWishlist) isAction()     {}
func (SetIncludeOnHold) isAction()       {}
func (SetSearchTerm) isAction()          {}
func (SetTags) isAction()                {}
func (ToggleTag) isAction()              {}
func (ClearAllTags) isAction()           {}
func (SetSort) isAction()                {}
func (SetPage) isAction()                {}
func (SetPageSize) isAction()            {}
func (SetViewType) isAction()            {}
func (ResetFilters) isAction()           {}
func (ResetFiltersWithDevice) isAction() {}
func (SetInitialState) isAction()        {}
func (BatchUpdateFilters) isAction()     {}
