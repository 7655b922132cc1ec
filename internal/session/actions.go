package session

import "github.com/serabi/organized-glitter-sub007/internal/filters"

// Actions is the per-field update surface over the store. Every update
// takes an optional source tag; it defaults to SourceUser except for
// page and view-type changes, which are usually driven by refreshes
// and so default to SourceSystem.
type Actions struct {
	store *Store
}

func NewActions(store *Store) *Actions { return &Actions{store: store} }

func pick(def Source, src []Source) Source {
	if len(src) > 0 {
		return src[0]
	}
	return def
}

func (a *Actions) UpdateStatus(s filters.Status, src ...Source) {
	a.store.Dispatch(filters.SetStatus{Status: s}, pick(SourceUser, src))
}

func (a *Actions) UpdateCompany(company string, src ...Source) {
	a.store.Dispatch(filters.SetCompany{Company: company}, pick(SourceUser, src))
}

func (a *Actions) UpdateArtist(artist string, src ...Source) {
	a.store.Dispatch(filters.SetArtist{Artist: artist}, pick(SourceUser, src))
}

func (a *Actions) UpdateDrillShape(shape string, src ...Source) {
	a.store.Dispatch(filters.SetDrillShape{DrillShape: shape}, pick(SourceUser, src))
}

func (a *Actions) UpdateYearFinished(year string, src ...Source) {
	a.store.Dispatch(filters.SetYearFinished{Year: year}, pick(SourceUser, src))
}

func (a *Actions) UpdateIncludeMiniKits(include bool, src ...Source) {
	a.store.Dispatch(filters.SetIncludeMiniKits{Include: include}, pick(SourceUser, src))
}

func (a *Actions) UpdateIncludeDestashed(include bool, src ...Source) {
	a.store.Dispatch(filters.SetIncludeDestashed{Include: include}, pick(SourceUser, src))
}

func (a *Actions) UpdateIncludeArchived(include bool, src ...Source) {
	a.store.Dispatch(filters.SetIncludeArchived{Include: include}, pick(SourceUser, src))
}

func (a *Actions) UpdateIncludeWishlist(include bool, src ...Source) {
	a.store.Dispatch(filters.SetIncludeWishlist{Include: include}, pick(SourceUser, src))
}

func (a *Actions) UpdateIncludeOnHold(include bool, src ...Source) {
	a.store.Dispatch(filters.SetIncludeOnHold{Include: include}, pick(SourceUser, src))
}

func (a *Actions) UpdateSearchTerm(term string, src ...Source) {
	a.store.Dispatch(filters.SetSearchTerm{Term: term}, pick(SourceUser, src))
}

func (a *Actions) UpdateTags(tagIDs []string, src ...Source) {
	a.store.Dispatch(filters.SetTags{TagIDs: tagIDs}, pick(SourceUser, src))
}

func (a *Actions) ToggleTag(tagID string, src ...Source) {
	a.store.Dispatch(filters.ToggleTag{TagID: tagID}, pick(SourceUser, src))
}

func (a *Actions) ClearAllTags(src ...Source) {
	a.store.Dispatch(filters.ClearAllTags{}, pick(SourceUser, src))
}

func (a *Actions) UpdateSort(field filters.SortField, dir filters.SortDirection, src ...Source) {
	a.store.Dispatch(filters.SetSort{Field: field, Direction: dir}, pick(SourceUser, src))
}

func (a *Actions) UpdatePage(page int, src ...Source) {
	a.store.Dispatch(filters.SetPage{Page: page}, pick(SourceSystem, src))
}

func (a *Actions) UpdatePageSize(size int, src ...Source) {
	a.store.Dispatch(filters.SetPageSize{Size: size}, pick(SourceUser, src))
}

func (a *Actions) UpdateViewType(view filters.ViewType, src ...Source) {
	a.store.Dispatch(filters.SetViewType{View: view}, pick(SourceSystem, src))
}

func (a *Actions) ResetFilters(src ...Source) {
	a.store.Dispatch(filters.ResetFilters{}, pick(SourceUser, src))
}

func (a *Actions) ResetFiltersWithDevice(device filters.DeviceClass, src ...Source) {
	a.store.Dispatch(filters.ResetFiltersWithDevice{Device: device}, pick(SourceUser, src))
}

func (a *Actions) BatchUpdateFilters(patch filters.Patch, src ...Source) {
	a.store.Dispatch(filters.BatchUpdateFilters{Patch: patch}, pick(SourceBatch, src))
}

// ActiveFilterCount is the badge count for the current state.
func (a *Actions) ActiveFilterCount() int {
	return filters.ActiveFilterCount(a.store.State())
}
