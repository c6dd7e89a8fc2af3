package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/listings"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/shows"
	"github.com/sohailtahir5858/live-music-finder/internal/timeofday"
	"github.com/sohailtahir5858/live-music-finder/internal/transport/rest/response"
)

// Handler serves the read API over the shows service and listings.
type Handler struct {
	Shows       *shows.Service
	ListingTTL  time.Duration
	DefaultCity model.City
	Listings    listings.Deps
}

// parseCity resolves the city query param, falling back to the default.
func (h *Handler) parseCity(r *http.Request) (model.City, error) {
	name := r.URL.Query().Get("city")
	if name == "" {
		return h.DefaultCity, nil
	}
	return api.ResolveCity(name)
}

func parseIntList(values []string) ([]int, bool) {
	if len(values) == 0 {
		return nil, true
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// Events handles GET /api/v1/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	rid := GetRequestID(r.Context())

	city, err := h.parseCity(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "unknown_city", err.Error(), rid)
		return
	}

	q := r.URL.Query()
	page := 1
	if p := q.Get("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			response.Fail(w, http.StatusBadRequest, "bad_page", "page must be a positive integer", rid)
			return
		}
	}

	timeFilter := q.Get("time")
	if timeFilter != "" && !timeofday.Known(timeFilter) {
		response.Fail(w, http.StatusBadRequest, "bad_time_filter",
			"time must be morning, afternoon, evening, night, or allday", rid)
		return
	}

	categoryIDs, ok := parseIntList(q["category"])
	if !ok {
		response.Fail(w, http.StatusBadRequest, "bad_category", "category must be a non-negative integer", rid)
		return
	}
	venueIDs, ok := parseIntList(q["venue"])
	if !ok {
		response.Fail(w, http.StatusBadRequest, "bad_venue", "venue must be a non-negative integer", rid)
		return
	}

	filters := model.FilterParams{
		CategoryIDs: categoryIDs,
		VenueIDs:    venueIDs,
		TimeFilter:  timeFilter,
		DateFrom:    q.Get("from"),
		DateTo:      q.Get("to"),
	}

	eventsPage, err := h.Shows.FetchEvents(r.Context(), city, page, filters)
	if err != nil {
		response.Fail(w, http.StatusBadGateway, "upstream_failed", "events API fetch failed", rid)
		return
	}
	response.Data(w, http.StatusOK, eventsPage)
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	rid := GetRequestID(r.Context())
	city, err := h.parseCity(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "unknown_city", err.Error(), rid)
		return
	}
	categories, _, err := listings.Categories(r.Context(), city, false, h.ListingTTL, h.Listings)
	if err != nil {
		response.Fail(w, http.StatusBadGateway, "upstream_failed", "categories fetch failed", rid)
		return
	}
	response.Data(w, http.StatusOK, categories)
}

// Venues handles GET /api/v1/venues.
func (h *Handler) Venues(w http.ResponseWriter, r *http.Request) {
	rid := GetRequestID(r.Context())
	city, err := h.parseCity(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "unknown_city", err.Error(), rid)
		return
	}
	venues, _, err := listings.Venues(r.Context(), city, false, h.ListingTTL, h.Listings)
	if err != nil {
		response.Fail(w, http.StatusBadGateway, "upstream_failed", "venues fetch failed", rid)
		return
	}
	response.Data(w, http.StatusOK, venues)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
