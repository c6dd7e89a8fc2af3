package model

// Wire types for the per-city WordPress "The Events Calendar" REST API.
// Field sets are trimmed to what the pipeline reads; unknown fields are
// ignored by the JSON decoder.

// WireEventsResponse is the raw /events listing response.
type WireEventsResponse struct {
	Events      []WireEvent `json:"events"`
	RestURL     string      `json:"rest_url"`
	NextRestURL string      `json:"next_rest_url"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"total_pages"`
}

// WireEvent is one raw upstream event record.
type WireEvent struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   string         `json:"start_date"` // "2006-01-02 15:04:05", venue-local
	EndDate     string         `json:"end_date"`
	UTCStart    string         `json:"utc_start_date"`
	Modified    string         `json:"modified"`
	DateCreated string         `json:"date"`
	AllDay      bool           `json:"all_day"`
	Cost        string         `json:"cost"`
	Website     string         `json:"website"`
	Author      string         `json:"author"`
	Venue       WireVenue      `json:"venue"`
	Image       WireImage      `json:"image"`
	Categories  []WireCategory `json:"categories"`
}

// WireVenue is the venue sub-object embedded in an event.
type WireVenue struct {
	ID            int    `json:"id"`
	Venue         string `json:"venue"`
	Address       string `json:"address"`
	City          string `json:"city"`
	StateProvince string `json:"stateprovince"`
	Zip           string `json:"zip"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
}

// WireImage is the featured image with its responsive size tiers.
// Sizes is keyed by WordPress size name ("medium_large", "large", ...).
type WireImage struct {
	URL    string                   `json:"url"`
	Width  int                      `json:"width"`
	Height int                      `json:"height"`
	Sizes  map[string]WireImageSize `json:"sizes"`
}

// WireImageSize is one responsive size tier.
type WireImageSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WireCategory is a category both as embedded in events and as returned
// by the /categories listing endpoint.
type WireCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// WireCategoriesResponse is the raw /categories listing response.
type WireCategoriesResponse struct {
	Categories  []WireCategory `json:"categories"`
	RestURL     string         `json:"rest_url"`
	NextRestURL string         `json:"next_rest_url"`
	Total       int            `json:"total"`
	TotalPages  int            `json:"total_pages"`
}

// WireVenuesResponse is the raw /venues listing response.
type WireVenuesResponse struct {
	Venues      []WireVenue `json:"venues"`
	RestURL     string      `json:"rest_url"`
	NextRestURL string      `json:"next_rest_url"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"total_pages"`
}
