package filters

// ActiveFilterCount returns how many filter axes differ from their
// neutral value, for the "N filters" badge. Each axis contributes at
// most 1 no matter how far from neutral it is. Note the asymmetric
// toggle defaults: mini kits and destashed are included by default (so
// excluding them counts), while wishlist is excluded by default (so
// including it counts).
func ActiveFilterCount(s State) int {
	n := 0
	if s.ActiveStatus != StatusAll {
		n++
	}
	if s.SelectedCompany != SelectAll {
		n++
	}
	if s.SelectedArtist != SelectAll {
		n++
	}
	if s.SelectedDrillShape != SelectAll {
		n++
	}
	if s.SelectedYearFinished != SelectAll {
		n++
	}
	if !s.IncludeMiniKits {
		n++
	}
	if !s.IncludeDestashed {
		n++
	}
	if s.IncludeWishlist {
		n++
	}
	if s.SearchTerm != "" {
		n++
	}
	if len(s.SelectedTags) > 0 {
		n++
	}
	return n
}
