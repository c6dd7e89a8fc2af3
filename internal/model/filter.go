package model

import (
	"slices"
	"strconv"
	"strings"
)

// FilterParams is the immutable value bag of optional event filters.
// Together with the city it forms the result-cache key.
type FilterParams struct {
	CategoryIDs []int  `json:"category_ids,omitempty"`
	VenueIDs    []int  `json:"venue_ids,omitempty"`
	TimeFilter  string `json:"time_filter,omitempty"` // bucket name or "allday"
	DateFrom    string `json:"date_from,omitempty"`   // YYYY-MM-DD
	DateTo      string `json:"date_to,omitempty"`     // YYYY-MM-DD
}

// HasTimeFilter reports whether a time-of-day or all-day filter is active,
// which forces the exhaustive fetch-then-filter path.
func (f FilterParams) HasTimeFilter() bool {
	return f.TimeFilter != ""
}

// CacheKey derives the canonical result-cache key for a city + filter
// combination. ID lists are sorted so that logically equal filters always
// serialize identically regardless of the order the caller supplied them in.
func (f FilterParams) CacheKey(city City) string {
	var b strings.Builder
	b.WriteString(string(city))
	b.WriteString("|cat=")
	b.WriteString(joinSorted(f.CategoryIDs))
	b.WriteString("|venue=")
	b.WriteString(joinSorted(f.VenueIDs))
	b.WriteString("|time=")
	b.WriteString(f.TimeFilter)
	b.WriteString("|from=")
	b.WriteString(f.DateFrom)
	b.WriteString("|to=")
	b.WriteString(f.DateTo)
	return b.String()
}

func joinSorted(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
