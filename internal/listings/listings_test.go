package listings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/testutil"
)

func countingDeps(calls *int) Deps {
	return Deps{
		GetCategories: func(context.Context, model.City) ([]model.Category, error) {
			*calls++
			return []model.Category{{ID: 1, Name: "Folk", Slug: "folk"}}, nil
		},
		GetVenues: func(context.Context, model.City) ([]model.Venue, error) {
			*calls++
			return []model.Venue{{ID: 2, Name: "The Royal", City: "Nelson"}}, nil
		},
	}
}

func TestCategoriesSecondCallServedFromCache(t *testing.T) {
	testutil.WithTempHome(t)
	calls := 0
	deps := countingDeps(&calls)
	ctx := context.Background()

	first, cachedAt, err := Categories(ctx, model.CityNelson, false, time.Hour, deps)
	require.NoError(t, err)
	assert.True(t, cachedAt.IsZero(), "a fresh fetch reports no cache age")

	second, cachedAt, err := Categories(ctx, model.CityNelson, false, time.Hour, deps)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second call should not hit the API")
	assert.Equal(t, first, second)
	assert.False(t, cachedAt.IsZero(), "cache hit reports when it was written")
}

func TestCategoriesRefreshBypassesCache(t *testing.T) {
	testutil.WithTempHome(t)
	calls := 0
	deps := countingDeps(&calls)
	ctx := context.Background()

	_, _, err := Categories(ctx, model.CityNelson, false, time.Hour, deps)
	require.NoError(t, err)
	_, _, err = Categories(ctx, model.CityNelson, true, time.Hour, deps)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestVenuesStaleCacheRefetches(t *testing.T) {
	testutil.WithTempHome(t)
	calls := 0
	deps := countingDeps(&calls)
	ctx := context.Background()

	_, _, err := Venues(ctx, model.CityKelowna, false, time.Hour, deps)
	require.NoError(t, err)

	// A TTL so small the just-written entry is already stale.
	_, _, err = Venues(ctx, model.CityKelowna, false, time.Nanosecond, deps)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCategoriesFetchErrorPropagates(t *testing.T) {
	testutil.WithTempHome(t)
	deps := Deps{
		GetCategories: func(context.Context, model.City) ([]model.Category, error) {
			return nil, fmt.Errorf("upstream down")
		},
	}

	_, _, err := Categories(context.Background(), model.CityKelowna, false, time.Hour, deps)
	assert.ErrorContains(t, err, "upstream down")
}

func TestListingsArePerCity(t *testing.T) {
	testutil.WithTempHome(t)
	calls := 0
	deps := countingDeps(&calls)
	ctx := context.Background()

	_, _, err := Venues(ctx, model.CityKelowna, false, time.Hour, deps)
	require.NoError(t, err)
	_, _, err = Venues(ctx, model.CityNelson, false, time.Hour, deps)
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "each city keeps its own cache file")
}
