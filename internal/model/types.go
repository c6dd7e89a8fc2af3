package model

import "time"

// City is one of the two supported listing regions. Unrecognized upstream
// venue cities normalize to DefaultCity.
type City string

const (
	CityKelowna City = "Kelowna"
	CityNelson  City = "Nelson"

	// DefaultCity is the fallback for unrecognized venue city strings.
	DefaultCity = CityKelowna
)

// Cities lists every supported city in display order.
var Cities = []City{CityKelowna, CityNelson}

// ImageVariant is one responsive size tier of an event image.
type ImageVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Show is the normalized event record the whole pipeline produces and
// consumes. A Show is constructed fresh on every fetch and is never
// written back to the upstream API.
type Show struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	VenueName    string   `json:"venue_name"`
	VenueAddress string   `json:"venue_address"`
	City         City     `json:"city"`
	Genres       []string `json:"genres"`
	Date         string   `json:"date"`         // YYYY-MM-DD
	DisplayTime  string   `json:"display_time"` // e.g. "8:00 PM"
	// StartHour is the 24-hour start hour carried alongside the display
	// string so the time-of-day filter does not re-parse it.
	// -1 when the upstream start timestamp could not be parsed.
	StartHour   int           `json:"start_hour"`
	AllDay      bool          `json:"all_day"`
	ImageURL    string        `json:"image_url,omitempty"`
	ImageWidth  int           `json:"image_width,omitempty"`
	ImageHeight int           `json:"image_height,omitempty"`
	MobileImage *ImageVariant `json:"mobile_image,omitempty"`
	HDImage     *ImageVariant `json:"hd_image,omitempty"`
	Price       string        `json:"price"`
	Capacity    int           `json:"capacity,omitempty"`
	Popularity  float64       `json:"popularity"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Public      bool          `json:"public"`
}

// EventsPage is one page of normalized, filtered shows plus pagination
// metadata, as returned to CLI and HTTP consumers.
type EventsPage struct {
	Shows       []Show `json:"events"`
	Total       int    `json:"total"`
	TotalPages  int    `json:"total_pages"`
	RestURL     string `json:"rest_url,omitempty"`
	NextRestURL string `json:"next_rest_url,omitempty"`
}

// Category is a genre/category listing entry.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count,omitempty"`
}

// Venue is a venue listing entry.
type Venue struct {
	ID      int    `json:"id"`
	Name    string `json:"venue"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}
