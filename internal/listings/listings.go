// Package listings serves the per-city category and venue listings,
// backed by the disk cache so repeat lookups skip the multi-page walk.
package listings

import (
	"context"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/cache"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

// Deps carries the injectable collaborators; zero-value fields fall back
// to the real API.
type Deps struct {
	GetCategories func(ctx context.Context, city model.City) ([]model.Category, error)
	GetVenues     func(ctx context.Context, city model.City) ([]model.Venue, error)
}

func (d *Deps) fill() {
	if d.GetCategories == nil {
		d.GetCategories = api.GetCategories
	}
	if d.GetVenues == nil {
		d.GetVenues = api.GetVenues
	}
}

// Categories returns every category for a city. A fresh disk-cache entry
// is served directly (cachedAt reports its age); refresh forces a refetch.
// Cache write failures are non-fatal — the listing is still returned.
func Categories(ctx context.Context, city model.City, refresh bool, ttl time.Duration, deps Deps) ([]model.Category, time.Time, error) {
	deps.fill()
	if ttl <= 0 {
		ttl = cache.DefaultListingTTL
	}
	if !refresh {
		if cached, cachedAt, err := cache.ReadCategoriesCache(city); err == nil && cache.Fresh(cachedAt, ttl) {
			return cached, cachedAt, nil
		}
	}
	categories, err := deps.GetCategories(ctx, city)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := cache.WriteCategoriesCache(city, categories); err != nil {
		api.LogWarn("listing_cache_write_failed", err.Error())
	}
	return categories, time.Time{}, nil
}

// Venues returns every venue for a city, alphabetical by name, with the
// same cache behavior as Categories.
func Venues(ctx context.Context, city model.City, refresh bool, ttl time.Duration, deps Deps) ([]model.Venue, time.Time, error) {
	deps.fill()
	if ttl <= 0 {
		ttl = cache.DefaultListingTTL
	}
	if !refresh {
		if cached, cachedAt, err := cache.ReadVenuesCache(city); err == nil && cache.Fresh(cachedAt, ttl) {
			return cached, cachedAt, nil
		}
	}
	venues, err := deps.GetVenues(ctx, city)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := cache.WriteVenuesCache(city, venues); err != nil {
		api.LogWarn("listing_cache_write_failed", err.Error())
	}
	return venues, time.Time{}, nil
}
