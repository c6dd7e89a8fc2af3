// Package shows is the event aggregation pipeline: it decides between the
// server-paged fast path and the exhaustive fetch-then-filter slow path,
// fans out page fetches with bounded concurrency, and re-paginates filtered
// sets locally.
package shows

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/cache"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/normalize"
	"github.com/sohailtahir5858/live-music-finder/internal/timeofday"
)

const (
	// PageSize is the fixed page size for both upstream fetches and local
	// re-pagination.
	PageSize = 10

	// FetchConcurrency bounds simultaneous page fetches during exhaustive
	// aggregation. Not adaptive; the upstream gives no backpressure signal.
	FetchConcurrency = 5
)

// Deps carries the service's injectable collaborators. The zero value is
// not usable; NewService fills in production defaults.
type Deps struct {
	// FetchPage issues one upstream /events page fetch.
	FetchPage func(ctx context.Context, city model.City, q api.EventsQuery) (*model.WireEventsResponse, error)
}

// Service produces pages of normalized, filtered shows. Construct one per
// process with NewService and share it; the injected result cache is the
// only mutable state.
type Service struct {
	results *cache.ResultCache
	deps    Deps
}

// NewService builds a Service around a result cache. A nil cache gets a
// fresh one with the default TTL; a nil FetchPage dep gets the real API.
func NewService(results *cache.ResultCache, deps Deps) *Service {
	if results == nil {
		results = cache.NewResultCache(cache.DefaultResultTTL)
	}
	if deps.FetchPage == nil {
		deps.FetchPage = api.GetEventsPage
	}
	return &Service{results: results, deps: deps}
}

// window resolves the request's date window. Missing bounds default to
// today through one year out, in local time to match the upstream's
// interpretation of start_date/end_date.
func window(filters model.FilterParams) (from, to time.Time) {
	now := time.Now()
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if filters.DateFrom != "" {
		if t, err := time.ParseInLocation("2006-01-02", filters.DateFrom, time.Local); err == nil {
			from = t
		}
	}
	to = from.AddDate(1, 0, 0)
	if filters.DateTo != "" {
		if t, err := time.ParseInLocation("2006-01-02", filters.DateTo, time.Local); err == nil {
			// End of day so the whole last date is included.
			to = t.Add(24*time.Hour - time.Second)
		}
	}
	return from, to
}

func (s *Service) query(page int, filters model.FilterParams) api.EventsQuery {
	from, to := window(filters)
	return api.EventsQuery{
		Page:        page,
		PerPage:     PageSize,
		StartDate:   from,
		EndDate:     to,
		CategoryIDs: filters.CategoryIDs,
		VenueIDs:    filters.VenueIDs,
	}
}

// FetchEvents returns one page of shows for a city.
//
// Without a time filter it delegates straight to the upstream for the
// requested page and passes the upstream's pagination metadata through.
// With a time-of-day or all-day filter it serves from the result cache
// when fresh, otherwise fetches every page, filters client-side, caches
// the filtered set, and paginates locally.
//
// On a failed fast-path or first-page fetch the returned page is empty
// (total 0, zero pages) and the error is non-nil, so callers can render
// an empty list or surface the failure as they see fit.
func (s *Service) FetchEvents(ctx context.Context, city model.City, page int, filters model.FilterParams) (*model.EventsPage, error) {
	if page < 1 {
		page = 1
	}

	if !filters.HasTimeFilter() {
		resp, err := s.deps.FetchPage(ctx, city, s.query(page, filters))
		if err != nil {
			return &model.EventsPage{Shows: []model.Show{}}, fmt.Errorf("fetch events page %d: %w", page, err)
		}
		return &model.EventsPage{
			Shows:       normalize.Events(resp.Events),
			Total:       resp.Total,
			TotalPages:  resp.TotalPages,
			RestURL:     resp.RestURL,
			NextRestURL: resp.NextRestURL,
		}, nil
	}

	if !timeofday.Known(filters.TimeFilter) {
		api.LogWarn("unknown_time_filter", filters.TimeFilter)
	}

	key := filters.CacheKey(city)
	if shows, ok := s.results.Get(key); ok {
		return paginate(shows, page), nil
	}

	shows, restURL, err := s.aggregateAll(ctx, city, filters)
	if err != nil {
		return &model.EventsPage{Shows: []model.Show{}}, err
	}
	s.results.Put(key, shows)

	out := paginate(shows, page)
	out.RestURL = restURL
	return out, nil
}

// aggregateAll fetches every upstream page for the filter's date window,
// normalizes the union, and applies the time-of-day (or all-day) filter.
//
// Page 1 is fetched alone to learn total_pages; the remaining pages run
// through a bounded-concurrency pool. Each page slot is assigned up front,
// so the aggregate keeps page order no matter which fetch settles first.
// A failed page degrades to an empty page (logged, not retried); a failed
// first page aborts the whole aggregation.
func (s *Service) aggregateAll(ctx context.Context, city model.City, filters model.FilterParams) ([]model.Show, string, error) {
	first, err := s.deps.FetchPage(ctx, city, s.query(1, filters))
	if err != nil {
		return nil, "", fmt.Errorf("fetch events page 1: %w", err)
	}

	// An empty result set reports total_pages 0; there is still the one
	// (empty) page we already fetched.
	pages := make([][]model.WireEvent, max(first.TotalPages, 1)+1)
	pages[1] = first.Events

	if first.TotalPages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(FetchConcurrency)
		for p := 2; p <= first.TotalPages; p++ {
			p := p
			g.Go(func() error {
				resp, err := s.deps.FetchPage(gctx, city, s.query(p, filters))
				if err != nil {
					api.LogPageFailure("events.list", p, err)
					return nil
				}
				pages[p] = resp.Events
				return nil
			})
		}
		// Workers swallow their own errors, so Wait only gates completion.
		_ = g.Wait()
	}

	var raw []model.WireEvent
	for p := 1; p < len(pages); p++ {
		raw = append(raw, pages[p]...)
	}

	shows := timeofday.Apply(normalize.Events(raw), filters.TimeFilter)
	return shows, first.RestURL, nil
}

// paginate slices the full filtered set into fixed-size pages.
func paginate(shows []model.Show, page int) *model.EventsPage {
	total := len(shows)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := min(start+PageSize, total)

	pageShows := make([]model.Show, end-start)
	copy(pageShows, shows[start:end])

	return &model.EventsPage{
		Shows:      pageShows,
		Total:      total,
		TotalPages: totalPages,
	}
}
