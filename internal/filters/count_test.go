package filters

import "testing"

func TestActiveFilterCountNeutralState(t *testing.T) {
	if n := ActiveFilterCount(Defaults(DeviceDesktop)); n != 0 {
		t.Fatalf("count of defaults = %d, want 0", n)
	}
	// Phone defaults differ only in layout, which is not a filter.
	if n := ActiveFilterCount(Defaults(DevicePhone)); n != 0 {
		t.Fatalf("count of phone defaults = %d, want 0", n)
	}
}

func TestActiveFilterCountEachAxisContributesOne(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.ActiveStatus = StatusCompleted
	s.SelectedCompany = "Diamond Art Club"
	s.SelectedArtist = "artist"
	s.SelectedDrillShape = "square"
	s.SelectedYearFinished = "2023"
	s.IncludeMiniKits = false
	s.IncludeDestashed = false
	s.IncludeWishlist = true
	s.SearchTerm = "owl"
	s.SelectedTags = []string{"t1", "t2", "t3"}

	if n := ActiveFilterCount(s); n != 10 {
		t.Fatalf("count = %d, want 10", n)
	}
}

func TestActiveFilterCountTagMagnitudeIgnored(t *testing.T) {
	s := Defaults(DeviceDesktop)
	s.SelectedTags = []string{"one"}
	one := ActiveFilterCount(s)
	s.SelectedTags = []string{"one", "two", "three"}
	many := ActiveFilterCount(s)
	if one != 1 || many != 1 {
		t.Fatalf("tag axis counts = %d/%d, want 1/1", one, many)
	}
}

func TestActiveFilterCountArchivedAndOnHoldNeutral(t *testing.T) {
	// Archived and on-hold toggles never count toward the badge.
	s := Defaults(DeviceDesktop)
	s.IncludeArchived = true
	s.IncludeOnHold = false
	if n := ActiveFilterCount(s); n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}
