// Package normalize maps raw Events Calendar records into Show records.
// Everything here is a pure function: no network calls, no side effects
// beyond the seeded placeholder popularity score.
package normalize

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

const (
	startDateLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
	clockLayout     = "3:04 PM"

	// mobileSizeName is the WordPress responsive tier preferred for the
	// primary image — roughly phone-width.
	mobileSizeName = "medium_large"
	hdSizeName     = "large"

	// placeholderGenre is used when the upstream record has no categories.
	placeholderGenre = "Live Music"
)

// namedEntities is a fixed substitution table for the handful of named
// entities WordPress actually emits. Unmapped entities pass through.
var namedEntities = map[string]string{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&apos;":   "'",
	"&nbsp;":   " ",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&hellip;": "…",
	"&rsquo;":  "’",
	"&lsquo;":  "‘",
	"&rdquo;":  "”",
	"&ldquo;":  "“",
}

var (
	numericEntityRe = regexp.MustCompile(`&#(\d+);`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
)

// DecodeEntities replaces numeric HTML character references and the common
// named entities in s. This is a substitution table, not an HTML parser.
func DecodeEntities(s string) string {
	s = numericEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || code <= 0 || code > 0x10FFFF {
			return m
		}
		return string(rune(code))
	})
	for entity, repl := range namedEntities {
		s = strings.ReplaceAll(s, entity, repl)
	}
	return s
}

// StripTags removes HTML tags with a single regex pass. Not safe for
// malformed markup; adequate for the upstream's stripped-down output.
func StripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

// inferCity maps an upstream venue city string onto one of the two
// supported cities. Anything unrecognized defaults to the first city.
func inferCity(venueCity string) model.City {
	if strings.Contains(strings.ToLower(venueCity), "nelson") {
		return model.CityNelson
	}
	return model.DefaultCity
}

// joinAddress assembles a display address from the venue's address parts,
// skipping whatever the upstream left blank.
func joinAddress(v model.WireVenue) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{v.Address, v.City, v.StateProvince, v.Zip} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// pickImage selects the primary image URL, preferring the phone-sized
// responsive tier and falling back to the full-size image. Width and height
// come from whichever tier was actually selected.
func pickImage(img model.WireImage) (url string, w, h int) {
	if size, ok := img.Sizes[mobileSizeName]; ok && size.URL != "" {
		return size.URL, size.Width, size.Height
	}
	return img.URL, img.Width, img.Height
}

func imageVariant(img model.WireImage, name string) *model.ImageVariant {
	size, ok := img.Sizes[name]
	if !ok || size.URL == "" {
		return nil
	}
	return &model.ImageVariant{URL: size.URL, Width: size.Width, Height: size.Height}
}

// Event maps one raw upstream event record to a Show.
//
// The start timestamp is parsed as local time; its date and 12-hour clock
// string are derived from it, and the numeric hour is carried on the Show
// so the time-of-day filter never has to re-parse the display string.
// A start timestamp that fails to parse yields an empty date/time and
// StartHour -1.
func Event(e model.WireEvent) model.Show {
	show := model.Show{
		ID:           strconv.Itoa(e.ID),
		Title:        DecodeEntities(e.Title),
		Description:  DecodeEntities(StripTags(e.Description)),
		VenueName:    DecodeEntities(e.Venue.Venue),
		VenueAddress: joinAddress(e.Venue),
		City:         inferCity(e.Venue.City),
		AllDay:       e.AllDay,
		Price:        price(e.Cost),
		Popularity:   popularity(),
		CreatedBy:    e.Author,
		Public:       true,
		StartHour:    -1,
	}

	if start, err := time.ParseInLocation(startDateLayout, e.StartDate, time.Local); err == nil {
		show.Date = start.Format(dateLayout)
		show.DisplayTime = start.Format(clockLayout)
		show.StartHour = start.Hour()
	}

	if created, err := time.ParseInLocation(startDateLayout, e.DateCreated, time.Local); err == nil {
		show.CreatedAt = created
	}
	if modified, err := time.ParseInLocation(startDateLayout, e.Modified, time.Local); err == nil {
		show.UpdatedAt = modified
	}

	show.ImageURL, show.ImageWidth, show.ImageHeight = pickImage(e.Image)
	show.MobileImage = imageVariant(e.Image, mobileSizeName)
	show.HDImage = imageVariant(e.Image, hdSizeName)

	if len(e.Categories) > 0 {
		genres := make([]string, 0, len(e.Categories))
		for _, c := range e.Categories {
			genres = append(genres, DecodeEntities(c.Name))
		}
		show.Genres = genres
	} else {
		show.Genres = []string{placeholderGenre}
	}

	return show
}

// Events maps a slice of raw events, preserving order.
func Events(raw []model.WireEvent) []model.Show {
	shows := make([]model.Show, len(raw))
	for i, e := range raw {
		shows[i] = Event(e)
	}
	return shows
}

func price(cost string) string {
	cost = strings.TrimSpace(DecodeEntities(cost))
	if cost == "" {
		return "Free"
	}
	return cost
}

// popularity is a placeholder score in [4.0, 5.0), mirroring the mock
// metric the listings have always shown. Not a real measurement.
func popularity() float64 {
	v := 4.0 + rand.Float64()
	s := fmt.Sprintf("%.1f", v)
	f, _ := strconv.ParseFloat(s, 64)
	if f >= 5.0 {
		f = 4.9
	}
	return f
}
