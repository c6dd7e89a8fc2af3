package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

// DefaultListingTTL is how long cached category/venue listings stay fresh.
// Listings change rarely; a day keeps startup snappy without going stale.
const DefaultListingTTL = 24 * time.Hour

// GetCacheDir returns the cache directory path, creating it if needed.
func GetCacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	cacheDir := filepath.Join(homeDir, ".cache", "gigs")
	err = os.MkdirAll(cacheDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return cacheDir, nil
}

// atomicWriteFile writes data via a temp file + rename so readers never
// observe a partial file.
func atomicWriteFile(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// categoriesCache is the on-disk shape of a cached categories listing.
type categoriesCache struct {
	CachedAt   time.Time        `json:"cached_at"`
	Categories []model.Category `json:"categories"`
}

// venuesCache is the on-disk shape of a cached venues listing.
type venuesCache struct {
	CachedAt time.Time     `json:"cached_at"`
	Venues   []model.Venue `json:"venues"`
}

func listingPath(city model.City, kind string) (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.json", strings.ToLower(string(city)), kind)
	return filepath.Join(cacheDir, name), nil
}

// ReadCategoriesCache reads the cached categories listing for a city.
// A missing cache file returns os.ErrNotExist.
func ReadCategoriesCache(city model.City) ([]model.Category, time.Time, error) {
	path, err := listingPath(city, "categories")
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	var cached categoriesCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse categories cache: %w", err)
	}
	return cached.Categories, cached.CachedAt, nil
}

// WriteCategoriesCache atomically writes the categories listing for a city,
// guarded by the listings file lock.
func WriteCategoriesCache(city model.City, categories []model.Category) error {
	path, err := listingPath(city, "categories")
	if err != nil {
		return err
	}
	data, err := json.Marshal(categoriesCache{CachedAt: time.Now(), Categories: categories})
	if err != nil {
		return fmt.Errorf("failed to marshal categories cache: %w", err)
	}
	return WithListingsLock(func() error {
		return atomicWriteFile(path, data)
	})
}

// ReadVenuesCache reads the cached venues listing for a city.
// A missing cache file returns os.ErrNotExist.
func ReadVenuesCache(city model.City) ([]model.Venue, time.Time, error) {
	path, err := listingPath(city, "venues")
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	var cached venuesCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse venues cache: %w", err)
	}
	return cached.Venues, cached.CachedAt, nil
}

// WriteVenuesCache atomically writes the venues listing for a city,
// guarded by the listings file lock.
func WriteVenuesCache(city model.City, venues []model.Venue) error {
	path, err := listingPath(city, "venues")
	if err != nil {
		return err
	}
	data, err := json.Marshal(venuesCache{CachedAt: time.Now(), Venues: venues})
	if err != nil {
		return fmt.Errorf("failed to marshal venues cache: %w", err)
	}
	return WithListingsLock(func() error {
		return atomicWriteFile(path, data)
	})
}

// Fresh reports whether a cached-at stamp is still within ttl.
func Fresh(cachedAt time.Time, ttl time.Duration) bool {
	return !cachedAt.IsZero() && time.Since(cachedAt) < ttl
}
