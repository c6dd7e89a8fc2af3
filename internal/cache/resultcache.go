package cache

import (
	"sync"
	"time"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

// DefaultResultTTL is how long one exhaustively-filtered event set stays
// valid before the next request refetches.
const DefaultResultTTL = 5 * time.Minute

// ResultCache memoizes the most recently computed exhaustively-filtered
// event set. It holds exactly one entry: a new computation overwrites the
// slot, and there is no explicit invalidation. Construct one per process
// and inject it into the shows service.
//
// The mutex makes the overwrite race of the original single-threaded
// design an ordinary last-writer-wins under lock; a stale slow response
// can still clobber a newer entry, which the TTL bounds.
type ResultCache struct {
	mu        sync.Mutex
	key       string
	shows     []model.Show
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time // test hook
}

// NewResultCache creates a single-slot cache with the given TTL.
// A non-positive TTL falls back to DefaultResultTTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &ResultCache{ttl: ttl, now: time.Now}
}

// Get returns the cached set when the key matches the slot exactly and the
// entry is younger than the TTL.
func (c *ResultCache) Get(key string) ([]model.Show, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key != key || c.shows == nil {
		return nil, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.shows, true
}

// Put overwrites the slot with a freshly computed set.
func (c *ResultCache) Put(key string, shows []model.Show) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.shows = shows
	c.fetchedAt = c.now()
}

// SetClock overrides the cache's clock. Test hook.
func (c *ResultCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
