package model

// Config holds the user's configuration, loaded from config.json.
type Config struct {
	DefaultCity     string            `json:"defaultCity,omitempty"`
	CityBaseURLs    map[string]string `json:"cityBaseUrls,omitempty"`
	ListingCacheTTL int               `json:"listingCacheTtlHours,omitempty"`
	ServeAddr       string            `json:"serveAddr,omitempty"`
	LogPath         string            `json:"logPath,omitempty"`
}

// ShowsCmd lists events for a city, one page at a time.
type ShowsCmd struct {
	City       string   `arg:"-c,--city" help:"City to list shows for (kelowna or nelson)."`
	Page       int      `arg:"-p,--page" default:"1" help:"Page number."`
	TimeFilter string   `arg:"-t,--time" help:"Time-of-day filter: morning, afternoon, evening, night, or allday."`
	Categories []int    `arg:"--category,separate" help:"Category ID filter. Repeatable."`
	Venues     []int    `arg:"--venue,separate" help:"Venue ID filter. Repeatable."`
	DateFrom   string   `arg:"--from" help:"Start of the date window (YYYY-MM-DD). Defaults to today."`
	DateTo     string   `arg:"--to" help:"End of the date window (YYYY-MM-DD). Defaults to one year out."`
	JSON       bool     `arg:"--json" help:"Print raw JSON instead of a table."`
}

// CategoriesCmd lists every event category for a city.
type CategoriesCmd struct {
	City    string `arg:"-c,--city" help:"City to list categories for."`
	Refresh bool   `arg:"--refresh" help:"Bypass the listing cache and refetch."`
	JSON    bool   `arg:"--json" help:"Print raw JSON instead of a table."`
}

// VenuesCmd lists every venue for a city.
type VenuesCmd struct {
	City    string `arg:"-c,--city" help:"City to list venues for."`
	Refresh bool   `arg:"--refresh" help:"Bypass the listing cache and refetch."`
	JSON    bool   `arg:"--json" help:"Print raw JSON instead of a table."`
}

// ServeCmd runs the HTTP read API.
type ServeCmd struct {
	Addr string `arg:"--addr" help:"Listen address (overrides config serveAddr)."`
}

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Shows      *ShowsCmd      `arg:"subcommand:shows" help:"List upcoming shows."`
	Categories *CategoriesCmd `arg:"subcommand:categories" help:"List event categories."`
	Venues     *VenuesCmd     `arg:"subcommand:venues" help:"List venues."`
	Serve      *ServeCmd      `arg:"subcommand:serve" help:"Serve the HTTP read API."`
}

// Description provides the top-level help text for go-arg.
func (Args) Description() string {
	return "gigs - live-music show finder for Kelowna and Nelson"
}

// Version reports the CLI version for go-arg's --version flag.
func (Args) Version() string {
	return "gigs " + AppVersion
}

// AppVersion is stamped at build time via -ldflags.
var AppVersion = "dev"
