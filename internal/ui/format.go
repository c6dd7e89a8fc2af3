package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

const termWidthCacheTTL = 500 * time.Millisecond

var (
	termWidthMu         sync.Mutex
	cachedTermWidth     = 80
	cachedTermWidthTime time.Time
)

// GetTermWidth returns the terminal width, defaulting to 80.
func GetTermWidth() int {
	termWidthMu.Lock()
	if time.Since(cachedTermWidthTime) <= termWidthCacheTTL && cachedTermWidth > 0 {
		width := cachedTermWidth
		termWidthMu.Unlock()
		return width
	}
	termWidthMu.Unlock()

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width == 0 {
		width = 80
	}

	termWidthMu.Lock()
	cachedTermWidth = width
	cachedTermWidthTime = time.Now()
	termWidthMu.Unlock()

	return width
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 1 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// RenderShowLine formats one show as a single listing line sized to the
// terminal: date, time, title, venue, price.
func RenderShowLine(s model.Show) string {
	width := GetTermWidth()
	titleWidth := max(20, width-52)

	timeStr := s.DisplayTime
	if s.AllDay {
		timeStr = "All day"
	}
	return fmt.Sprintf("%s%-10s%s  %s%-8s%s  %-*s  %s%s%s  %s",
		ColorCyan, s.Date, ColorReset,
		ColorYellow, timeStr, ColorReset,
		titleWidth, Truncate(s.Title, titleWidth),
		ColorPurple, Truncate(s.VenueName, 24), ColorReset,
		s.Price)
}

// RenderShowsPage prints a page of shows with a summary footer.
func RenderShowsPage(city model.City, page *model.EventsPage, pageNum int) {
	PrintHeader(fmt.Sprintf("%s Live shows — %s", SymbolMusic, city))
	if len(page.Shows) == 0 {
		PrintInfo("No shows found.")
		return
	}
	for _, s := range page.Shows {
		fmt.Println(RenderShowLine(s))
	}
	fmt.Printf("\n%s shows  %s  page %d of %d\n",
		humanize.Comma(int64(page.Total)), SymbolArrow, pageNum, page.TotalPages)
}

// RenderCategories prints a category listing.
func RenderCategories(city model.City, categories []model.Category, cachedAt time.Time) {
	PrintHeader(fmt.Sprintf("Categories — %s", city))
	for _, c := range categories {
		fmt.Printf("  %s%4d%s  %s\n", ColorYellow, c.ID, ColorReset, c.Name)
	}
	printCacheAge(len(categories), "categories", cachedAt)
}

// RenderVenues prints a venue listing.
func RenderVenues(city model.City, venues []model.Venue, cachedAt time.Time) {
	PrintHeader(fmt.Sprintf("Venues — %s", city))
	for _, v := range venues {
		line := fmt.Sprintf("  %s%4d%s  %s", ColorYellow, v.ID, ColorReset, v.Name)
		if v.Address != "" {
			line += fmt.Sprintf("  %s%s%s", ColorBlue, Truncate(v.Address, 40), ColorReset)
		}
		fmt.Println(line)
	}
	printCacheAge(len(venues), "venues", cachedAt)
}

func printCacheAge(n int, noun string, cachedAt time.Time) {
	if cachedAt.IsZero() {
		fmt.Printf("\n%d %s (fresh)\n", n, noun)
		return
	}
	fmt.Printf("\n%d %s (cached %s)\n", n, noun, humanize.Time(cachedAt))
}

// FormatFilterSummary describes the active filters for the footer line.
func FormatFilterSummary(f model.FilterParams) string {
	var parts []string
	if f.TimeFilter != "" {
		parts = append(parts, "time="+f.TimeFilter)
	}
	if len(f.CategoryIDs) > 0 {
		parts = append(parts, fmt.Sprintf("categories=%v", f.CategoryIDs))
	}
	if len(f.VenueIDs) > 0 {
		parts = append(parts, fmt.Sprintf("venues=%v", f.VenueIDs))
	}
	if f.DateFrom != "" || f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("window=%s..%s", f.DateFrom, f.DateTo))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, " ")
}
