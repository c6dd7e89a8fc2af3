package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

const (
	UserAgent = "gigs/1.0 (live-music-finder)"

	// DateLayout is the upstream's query-parameter timestamp format.
	// Deliberately local time with a literal space, matching how the
	// Events Calendar plugin interprets start_date/end_date.
	DateLayout = "2006-01-02 15:04:05"

	// ListingPerPage is the page size used when walking the categories
	// and venues listing endpoints.
	ListingPerPage = 50
)

var (
	Client = &http.Client{
		Timeout: 30 * time.Second,
	}

	// RateLimiter enforces a courtesy rate limit on all outbound API calls.
	// 5 requests/second with a burst of 10 — keeps the exhaustive multi-page
	// aggregation from hammering the small WordPress sites while interactive
	// use stays instant.
	RateLimiter = newRateLimiter(5.0, 10)

	// CircuitBreaker trips after 5 consecutive API-level failures (HTTP 429 or 5xx)
	// and stays open for 60 seconds before probing recovery.
	CircuitBreaker = newCircuitBreaker(5, 60*time.Second)
)

// Per-city Events Calendar REST roots. Overridable via config (and pointed
// at httptest servers in tests).
var (
	baseURLMu sync.RWMutex
	baseURLs  = map[model.City]string{
		model.CityKelowna: "https://www.livemusickelowna.com/wp-json/tribe/events/v1",
		model.CityNelson:  "https://www.livemusicnelson.com/wp-json/tribe/events/v1",
	}
)

// ErrUnknownCity is returned when a city name matches no supported city.
var ErrUnknownCity = fmt.Errorf("unknown city (supported: kelowna, nelson)")

// ResolveCity maps a case-insensitive city name to its canonical City value.
func ResolveCity(name string) (model.City, error) {
	for _, c := range model.Cities {
		if strings.EqualFold(strings.TrimSpace(name), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCity, name)
}

// BaseURL returns the Events Calendar REST root for a city.
func BaseURL(city model.City) string {
	baseURLMu.RLock()
	defer baseURLMu.RUnlock()
	return baseURLs[city]
}

// SetBaseURL overrides the REST root for a city. Called at startup when the
// config carries cityBaseUrls overrides.
func SetBaseURL(city model.City, url string) {
	baseURLMu.Lock()
	defer baseURLMu.Unlock()
	baseURLs[city] = strings.TrimRight(url, "/")
}

// retryDo is the single gateway for every outbound API call.
//
// It enforces, in order:
//  1. Rate limiting  — token-bucket, 5 req/s, burst 10
//  2. Circuit breaker — rejects immediately when open; logs state transitions
//  3. HTTP execution  — with context cancellation
//  4. Retry on 429 / 5xx — exponential backoff (500ms → 30s), Retry-After respected
//  5. Structured logging — every attempt, wait, rejection, and state change logged
//
// label is a short human-readable endpoint name used in log entries (e.g. "events.list").
// Caller is responsible for closing the returned response body.
func retryDo(ctx context.Context, label string, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxRetries = 4
	backoff := 500 * time.Millisecond

	for attempt := 0; ; attempt++ {
		// 1. Rate limiter — block until a token is available.
		waited, err := RateLimiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("rate limiter cancelled for %s: %w", label, err)
		}
		// Only log if we actually waited (> 1ms threshold avoids noise).
		if waited > time.Millisecond {
			LogRateLimitWait(label, waited)
		}

		// 2. Circuit breaker — fail fast when the API is known-down.
		cbState, allowed := CircuitBreaker.Allow()
		if !allowed {
			LogCircuitRejected(label)
			return nil, fmt.Errorf("%w (label: %s)", ErrCircuitOpen, label)
		}

		// 3. Build and execute the request.
		req, err := makeReq()
		if err != nil {
			return nil, err
		}
		start := time.Now()
		resp, err := Client.Do(req)
		duration := time.Since(start)

		if err != nil {
			// Network-level error: log but do NOT trip the circuit breaker.
			// Network hiccups are distinct from the API being overloaded.
			LogRequest(label, 0, duration, attempt, cbState.String(), err)
			return nil, err
		}

		isAPIError := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !isAPIError {
			// Success (2xx, 3xx, or client-error 4xx — server is healthy).
			prev := CircuitBreaker.RecordSuccess()
			if prev != circuitClosed {
				LogCircuitStateChange("circuit_closed", label, prev.String(), circuitClosed.String())
			}
			LogRequest(label, resp.StatusCode, duration, attempt, circuitClosed.String(), nil)
			return resp, nil
		}

		// API-level error: trip circuit breaker, log, then retry or give up.
		resp.Body.Close()
		newState := CircuitBreaker.RecordFailure()
		if newState == circuitOpen && cbState != circuitOpen {
			LogCircuitStateChange("circuit_opened", label, cbState.String(), newState.String())
		}
		apiErr := fmt.Errorf("HTTP %s", resp.Status)
		LogRequest(label, resp.StatusCode, duration, attempt, newState.String(), apiErr)

		if attempt >= maxRetries {
			return nil, fmt.Errorf("API %s failed after %d attempts: %w", label, attempt+1, apiErr)
		}

		wait := backoff
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, e := strconv.Atoi(ra); e == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		backoff = min(backoff*2, 30*time.Second)
	}
}

// EventsQuery carries the query parameters for one /events page fetch.
type EventsQuery struct {
	Page        int
	PerPage     int
	StartDate   time.Time
	EndDate     time.Time
	CategoryIDs []int
	VenueIDs    []int
}

// queryDate renders a timestamp for the query string. Only the space is
// percent-encoded (a literal space would break the request line); the
// colons stay unescaped, matching how the upstream reads start_date/end_date.
func queryDate(t time.Time) string {
	return strings.ReplaceAll(t.Format(DateLayout), " ", "%20")
}

// rawQuery assembles the query string by hand so the date timestamps keep
// the exact "YYYY-MM-DD HH:MM:SS" shape the upstream expects.
func (q EventsQuery) rawQuery() string {
	var b strings.Builder
	fmt.Fprintf(&b, "page=%d&per_page=%d", q.Page, q.PerPage)
	if !q.StartDate.IsZero() {
		fmt.Fprintf(&b, "&start_date=%s", queryDate(q.StartDate))
	}
	if !q.EndDate.IsZero() {
		fmt.Fprintf(&b, "&end_date=%s", queryDate(q.EndDate))
	}
	b.WriteString("&strict_dates=true&status=publish")
	for _, id := range q.CategoryIDs {
		fmt.Fprintf(&b, "&categories[]=%d", id)
	}
	for _, id := range q.VenueIDs {
		fmt.Fprintf(&b, "&venue[]=%d", id)
	}
	return b.String()
}

// GetEventsPage fetches one raw page from a city's /events endpoint.
func GetEventsPage(ctx context.Context, city model.City, q EventsQuery) (*model.WireEventsResponse, error) {
	endpoint := BaseURL(city) + "/events/?" + q.rawQuery()
	do, err := retryDo(ctx, "events.list", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Add("User-Agent", UserAgent)
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer do.Body.Close()
	if do.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API GetEventsPage failed: %s", do.Status)
	}
	var obj model.WireEventsResponse
	if err = json.NewDecoder(do.Body).Decode(&obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// getListing walks an offset-paginated listing endpoint, following
// next_rest_url until it is absent, and hands each page's body to decode.
func getListing(ctx context.Context, label, firstURL string, decode func([]byte) (next string, err error)) error {
	next := firstURL
	for next != "" {
		pageURL := next
		do, err := retryDo(ctx, label, func() (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Add("User-Agent", UserAgent)
			return req, nil
		})
		if err != nil {
			return err
		}
		if do.StatusCode != http.StatusOK {
			do.Body.Close()
			return fmt.Errorf("API %s failed: %s", label, do.Status)
		}
		var body []byte
		body, err = io.ReadAll(do.Body)
		do.Body.Close()
		if err != nil {
			return err
		}
		next, err = decode(body)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetCategories retrieves every event category for a city, walking all pages.
func GetCategories(ctx context.Context, city model.City) ([]model.Category, error) {
	first := fmt.Sprintf("%s/categories/?page=1&per_page=%d", BaseURL(city), ListingPerPage)
	var all []model.Category
	err := getListing(ctx, "categories.list", first, func(body []byte) (string, error) {
		var obj model.WireCategoriesResponse
		if err := json.Unmarshal(body, &obj); err != nil {
			return "", err
		}
		for _, c := range obj.Categories {
			all = append(all, model.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, Count: c.Count})
		}
		return obj.NextRestURL, nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// GetVenues retrieves every venue for a city, walking all pages. The full
// result is sorted alphabetically by name after retrieval.
func GetVenues(ctx context.Context, city model.City) ([]model.Venue, error) {
	first := fmt.Sprintf("%s/venues/?page=1&per_page=%d", BaseURL(city), ListingPerPage)
	var all []model.Venue
	err := getListing(ctx, "venues.list", first, func(body []byte) (string, error) {
		var obj model.WireVenuesResponse
		if err := json.Unmarshal(body, &obj); err != nil {
			return "", err
		}
		for _, v := range obj.Venues {
			all = append(all, model.Venue{
				ID:      v.ID,
				Name:    v.Venue,
				Address: v.Address,
				City:    v.City,
				Phone:   v.Phone,
				Website: v.Website,
			})
		}
		return obj.NextRestURL, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all, nil
}
