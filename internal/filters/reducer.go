package filters

// Reduce applies one action to the state and returns the next state.
// It is pure and total: every action variant is handled, and an action
// type it does not recognize returns the input unchanged. Anything
// that can change the visible result set snaps the pagination back to
// page 1; SetPageSize and SetViewType do the same even though the
// result set is unchanged, matching the dashboard's action table.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetStatus:
		s.ActiveStatus = act.Status
		s.CurrentPage = 1
	case SetCompany:
		s.SelectedCompany = act.Company
		s.CurrentPage = 1
	case SetArtist:
		s.SelectedArtist = act.Artist
		s.CurrentPage = 1
	case SetDrillShape:
		s.SelectedDrillShape = act.DrillShape
		s.CurrentPage = 1
	case SetYearFinished:
		s.SelectedYearFinished = act.Year
		s.CurrentPage = 1
	case SetIncludeMiniKits:
		s.IncludeMiniKits = act.Include
		s.CurrentPage = 1
	case SetIncludeDestashed:
		s.IncludeDestashed = act.Include
		s.CurrentPage = 1
	case SetIncludeArchived:
		s.IncludeArchived = act.Include
		s.CurrentPage = 1
	case SetIncludeWishlist:
		s.IncludeWishlist = act.Include
		s.CurrentPage = 1
	case SetIncludeOnHold:
		s.IncludeOnHold = act.Include
		s.CurrentPage = 1
	case SetSearchTerm:
		s.SearchTerm = act.Term
		s.CurrentPage = 1
	case SetTags:
		s.SelectedTags = cloneTags(act.TagIDs)
		s.CurrentPage = 1
	case ToggleTag:
		s.SelectedTags = toggleTag(s.SelectedTags, act.TagID)
		s.CurrentPage = 1
	case ClearAllTags:
		s.SelectedTags = nil
		s.CurrentPage = 1
	case SetSort:
		s.SortField = act.Field
		s.SortDirection = act.Direction
		s.CurrentPage = 1
	case SetPage:
		s.Page(act.Page)
		return s
	case SetPageSize:
		if act.Size > 0 {
			s.PageSize = act.Size
		}
		s.CurrentPage = 1
	case SetViewType:
		s.ViewType = act.View
		s.CurrentPage = 1
	case ResetFilters:
		view, size := s.ViewType, s.PageSize
		s = Defaults(DeviceDesktop)
		s.ViewType = view
		s.PageSize = size
	case ResetFiltersWithDevice:
		s = Defaults(act.Device)
	case SetInitialState:
		s = act.State
		s.SelectedTags = cloneTags(s.SelectedTags)
		if s.CurrentPage < 1 {
			s.CurrentPage = 1
		}
	case BatchUpdateFilters:
		s = applyPatch(s, act.Patch)
		s.CurrentPage = 1
	}
	return s
}

// Page is the one mutation that does not reset pagination. Kept as a
// method so Reduce stays the single place enforcing the floor of 1.
func (s *State) Page(page int) {
	if page < 1 {
		page = 1
	}
	s.CurrentPage = page
}

func toggleTag(tags []string, id string) []string {
	out := make([]string, 0, len(tags)+1)
	removed := false
	for _, t := range tags {
		if t == id {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func applyPatch(s State, p Patch) State {
	if p.ActiveStatus != nil {
		s.ActiveStatus = *p.ActiveStatus
	}
	if p.SelectedCompany != nil {
		s.SelectedCompany = *p.SelectedCompany
	}
	if p.SelectedArtist != nil {
		s.SelectedArtist = *p.SelectedArtist
	}
	if p.SelectedDrillShape != nil {
		s.SelectedDrillShape = *p.SelectedDrillShape
	}
	if p.SelectedYearFinished != nil {
		s.SelectedYearFinished = *p.SelectedYearFinished
	}
	if p.IncludeMiniKits != nil {
		s.IncludeMiniKits = *p.IncludeMiniKits
	}
	if p.IncludeDestashed != nil {
		s.IncludeDestashed = *p.IncludeDestashed
	}
	if p.IncludeArchived != nil {
		s.IncludeArchived = *p.IncludeArchived
	}
	if p.IncludeWishlist != nil {
		s.IncludeWishlist = *p.IncludeWishlist
	}
	if p.IncludeOnHold != nil {
		s.IncludeOnHold = *p.IncludeOnHold
	}
	if p.SearchTerm != nil {
		s.SearchTerm = *p.SearchTerm
	}
	if p.SelectedTags != nil {
		s.SelectedTags = cloneTags(p.SelectedTags)
	}
	if p.SortField != nil {
		s.SortField = *p.SortField
	}
	if p.SortDirection != nil {
		s.SortDirection = *p.SortDirection
	}
	if p.PageSize != nil && *p.PageSize > 0 {
		s.PageSize = *p.PageSize
	}
	if p.ViewType != nil {
		s.ViewType = *p.ViewType
	}
	return s
}
