package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/testutil"
)

func TestCategoriesCacheRoundTrip(t *testing.T) {
	testutil.WithTempHome(t)

	categories := []model.Category{
		{ID: 3, Name: "Folk", Slug: "folk"},
		{ID: 9, Name: "Rock", Slug: "rock", Count: 14},
	}
	require.NoError(t, WriteCategoriesCache(model.CityNelson, categories))

	got, cachedAt, err := ReadCategoriesCache(model.CityNelson)
	require.NoError(t, err)
	assert.Equal(t, categories, got)
	assert.WithinDuration(t, time.Now(), cachedAt, 5*time.Second)
}

func TestVenuesCacheRoundTrip(t *testing.T) {
	testutil.WithTempHome(t)

	venues := []model.Venue{
		{ID: 1, Name: "Blue Gator", City: "Kelowna"},
		{ID: 2, Name: "The Royal", City: "Nelson"},
	}
	require.NoError(t, WriteVenuesCache(model.CityKelowna, venues))

	got, _, err := ReadVenuesCache(model.CityKelowna)
	require.NoError(t, err)
	assert.Equal(t, venues, got)
}

func TestListingCachesAreSeparatePerCity(t *testing.T) {
	testutil.WithTempHome(t)

	require.NoError(t, WriteVenuesCache(model.CityKelowna, []model.Venue{{ID: 1, Name: "A"}}))

	_, _, err := ReadVenuesCache(model.CityNelson)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFresh(t *testing.T) {
	assert.True(t, Fresh(time.Now().Add(-time.Hour), 24*time.Hour))
	assert.False(t, Fresh(time.Now().Add(-25*time.Hour), 24*time.Hour))
	assert.False(t, Fresh(time.Time{}, 24*time.Hour))
}
