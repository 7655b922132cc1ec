package filters

import "testing"

func TestResultSetChangesResetPage(t *testing.T) {
	actions := []struct {
		name string
		act  Action
	}{
		{"status", SetStatus{Status: StatusCompleted}},
		{"company", SetCompany{Company: "Diamond Art Club"}},
		{"artist", SetArtist{Artist: "someone"}},
		{"drillShape", SetDrillShape{DrillShape: "round"}},
		{"year", SetYearFinished{Year: "2024"}},
		{"miniKits", SetIncludeMiniKits{Include: false}},
		{"destashed", SetIncludeDestashed{Include: false}},
		{"archived", SetIncludeArchived{Include: true}},
		{"wishlist", SetIncludeWishlist{Include: true}},
		{"onHold", SetIncludeOnHold{Include: false}},
		{"search", SetSearchTerm{Term: "mandala"}},
		{"setTags", SetTags{TagIDs: []string{"t1"}}},
		{"toggleTag", ToggleTag{TagID: "t1"}},
		{"clearTags", ClearAllTags{}},
		{"sort", SetSort{Field: SortTitle, Direction: SortAsc}},
		{"pageSize", SetPageSize{Size: 50}},
		{"viewType", SetViewType{View: ViewList}},
		{"batch", BatchUpdateFilters{Patch: Patch{SearchTerm: strPtr("x")}}},
	}
	for _, tc := range actions {
		s := Defaults(DeviceDesktop)
		s.CurrentPage = 7
		got := Reduce(s, tc.act)
		if got.CurrentPage != 1 {
			t.Errorf("%s: CurrentPage = %d, want 1", tc.name, got.CurrentPage)
		}
	}
}

func TestSetPageDoesNotResetItself(t *testing.T) {
	s := Defaults(DeviceDesktop)
	got := Reduce(s, SetPage{Page: 4})
	if got.CurrentPage != 4 {
		t.Fatalf("CurrentPage = %d, want 4", got.CurrentPage)
	}
	got = Reduce(got, SetPage{Page: 0})
	if got.CurrentPage != 1 {
		t.Fatalf("CurrentPage after page 0 = %d, want clamp to 1", got.CurrentPage)
	}
}

func TestFieldSettersAreIdempotent(t *testing.T) {
	s := Defaults(DeviceDesktop)
	once := Reduce(s, SetStatus{Status: StatusStash})
	twice := Reduce(once, SetStatus{Status: StatusStash})
	if !once.Equal(twice) {
		t.Fatalf("applying SetStatus twice diverged: %+v vs %+v", once, twice)
	}
}

func TestToggleTagSelfInverse(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.SelectedTags = []string{"a", "b"}
	s.CurrentPage = 1

	got := Reduce(Reduce(s, ToggleTag{TagID: "c"}), ToggleTag{TagID: "c"})
	if !got.Equal(s) {
		t.Fatalf("toggle twice (add) = %v, want %v", got.SelectedTags, s.SelectedTags)
	}

	removed := Reduce(s, ToggleTag{TagID: "b"})
	if removed.HasTag("b") {
		t.Fatal("toggle of present tag should remove it")
	}
	back := Reduce(removed, ToggleTag{TagID: "b"})
	if !back.HasTag("b") {
		t.Fatal("second toggle should re-add the tag")
	}
}

func TestClearAllTags(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.SelectedTags = []string{"a", "b", "c"}
	got := Reduce(s, ClearAllTags{})
	if len(got.SelectedTags) != 0 {
		t.Fatalf("SelectedTags = %v, want empty", got.SelectedTags)
	}
}

func TestReduceDoesNotAliasTagSlice(t *testing.T) {
	shared := []string{"a"}
	s := Defaults(DeviceDesktop)
	got := Reduce(s, SetTags{TagIDs: shared})
	shared[0] = "mutated"
	if got.SelectedTags[0] != "a" {
		t.Fatal("reducer result aliases the caller's tag slice")
	}
}

func TestResetFiltersWithDevice(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.ActiveStatus = StatusCompleted
	s.SearchTerm = "drill"
	s.ViewType = ViewList

	got := Reduce(s, ResetFiltersWithDevice{Device: DevicePhone})
	want := Defaults(DevicePhone)
	if !got.Equal(want) {
		t.Fatalf("reset with phone = %+v, want %+v", got, want)
	}
	if got.ViewType != ViewList {
		t.Fatalf("phone default view = %q, want list", got.ViewType)
	}

	got = Reduce(s, ResetFiltersWithDevice{Device: DeviceDesktop})
	if got.ViewType != ViewGrid {
		t.Fatalf("desktop default view = %q, want grid", got.ViewType)
	}
}

func TestResetFiltersKeepsLayout(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.ActiveStatus = StatusWishlist
	s.ViewType = ViewList
	s.PageSize = 50

	got := Reduce(s, ResetFilters{})
	if got.ActiveStatus != StatusAll {
		t.Fatalf("ActiveStatus = %q, want all", got.ActiveStatus)
	}
	if got.ViewType != ViewList || got.PageSize != 50 {
		t.Fatalf("layout not preserved: view=%q size=%d", got.ViewType, got.PageSize)
	}
}

func TestBatchUpdateMergesAndResetsPage(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.CurrentPage = 3
	s.SelectedCompany = "Dreamer Designs"

	status := StatusProgress
	term := "peacock"
	got := Reduce(s, BatchUpdateFilters{Patch: Patch{
		ActiveStatus: &status,
		SearchTerm:   &term,
	}})
	if got.ActiveStatus != StatusProgress || got.SearchTerm != "peacock" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.SelectedCompany != "Dreamer Designs" {
		t.Fatal("untouched field was clobbered by batch update")
	}
	if got.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1", got.CurrentPage)
	}
}

func TestSetInitialStateReplacesWholesale(t *testing.T) {
	initial := Defaults(DevicePhone)
	initial.ActiveStatus = StatusCompleted
	initial.SelectedTags = []string{"t9"}
	initial.CurrentPage = 0 // malformed page from an old snapshot

	got := Reduce(Defaults(DeviceDesktop), SetInitialState{State: initial})
	if got.ActiveStatus != StatusCompleted || !got.HasTag("t9") {
		t.Fatalf("initial state not applied: %+v", got)
	}
	if got.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want floor of 1", got.CurrentPage)
	}
}

func TestUnknownActionIsNoOp(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.CurrentPage = 5
	got := Reduce(s, unknownAction{})
	if !got.Equal(s) {
		t.Fatalf("unknown action changed state: %+v", got)
	}
}

type unknownAction struct{}

func (unknownAction) isAction() {}

func strPtr(s string) *string { return &s }
