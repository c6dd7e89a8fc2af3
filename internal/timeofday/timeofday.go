// Package timeofday classifies shows into named time buckets and filters
// show sets by bucket. The upstream API cannot filter by hour-of-day, so
// this runs client-side over the exhaustively fetched set.
package timeofday

import (
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

// AllDay is the filter value that tests the Show's all-day flag directly
// instead of an hour range.
const AllDay = "allday"

// Bucket is a closed hour interval [Start, End], both inclusive.
type Bucket struct {
	Name  string
	Start int
	End   int
}

// Buckets is the fixed bucket table, keyed by filter value.
var Buckets = map[string]Bucket{
	"morning":   {Name: "morning", Start: 6, End: 11},
	"afternoon": {Name: "afternoon", Start: 12, End: 16},
	"evening":   {Name: "evening", Start: 17, End: 20},
	"night":     {Name: "night", Start: 21, End: 23},
}

// Contains reports whether hour falls inside the bucket. When Start > End
// the interval wraps past midnight and membership is hour >= Start OR
// hour <= End. (The fixed table has no wrapping bucket today; the branch
// exists so a future late-night bucket keeps working.)
func (b Bucket) Contains(hour int) bool {
	if b.Start <= b.End {
		return hour >= b.Start && hour <= b.End
	}
	return hour >= b.Start || hour <= b.End
}

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)?`)

// parseFallbacks counts display-time strings that failed to parse and were
// defaulted to midnight. Exposed so the lossy fallback is observable
// instead of silent.
var parseFallbacks atomic.Int64

// ParseFallbackCount returns how many display times defaulted to hour 0.
func ParseFallbackCount() int64 { return parseFallbacks.Load() }

// ParseClockHour converts a 12-hour display string ("8:00 PM") back into a
// 24-hour hour. "12:00 AM" is 0 and "12:30 PM" is 12. Strings that do not
// match the H:MM[ AM|PM] shape default to 0 (midnight); the fallback is
// counted via ParseFallbackCount.
func ParseClockHour(s string) int {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(strings.ToUpper(s)))
	if m == nil {
		parseFallbacks.Add(1)
		return 0
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		parseFallbacks.Add(1)
		return 0
	}
	switch m[3] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 {
		parseFallbacks.Add(1)
		return 0
	}
	return hour
}

// showHour returns the 24-hour start hour for a show, preferring the
// numeric hour the normalizer carried over and re-parsing the display
// string only for records that predate it.
func showHour(s model.Show) int {
	if s.StartHour >= 0 && s.StartHour <= 23 {
		return s.StartHour
	}
	return ParseClockHour(s.DisplayTime)
}

// Matches reports whether a show belongs to the named filter. The all-day
// filter checks the AllDay flag directly; bucket filters test the show's
// start hour against the bucket interval. Unknown filter names match
// everything (the caller logs the no-op).
func Matches(s model.Show, filter string) bool {
	if filter == AllDay {
		return s.AllDay
	}
	bucket, ok := Buckets[filter]
	if !ok {
		return true
	}
	return bucket.Contains(showHour(s))
}

// Known reports whether the filter value names the all-day branch or a
// bucket in the table.
func Known(filter string) bool {
	if filter == AllDay {
		return true
	}
	_, ok := Buckets[filter]
	return ok
}

// Apply filters shows by the named filter, preserving order. Unknown
// filters return the input unchanged.
func Apply(shows []model.Show, filter string) []model.Show {
	if !Known(filter) {
		return shows
	}
	out := make([]model.Show, 0, len(shows))
	for _, s := range shows {
		if Matches(s, filter) {
			out = append(out, s)
		}
	}
	return out
}
