package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/testutil"
)

func writeUserConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "gigs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))
}

func TestParseCfgDefaultsWhenNoFile(t *testing.T) {
	testutil.WithTempHome(t)

	cfg, err := ParseCfg()
	require.NoError(t, err)

	assert.Equal(t, string(model.DefaultCity), cfg.DefaultCity)
	assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
	assert.Equal(t, DefaultListingTTLHours, cfg.ListingCacheTTL)
}

func TestParseCfgLoadsUserConfig(t *testing.T) {
	home := testutil.WithTempHome(t)
	writeUserConfig(t, home, `{
		"defaultCity": "nelson",
		"serveAddr": ":9090",
		"listingCacheTtlHours": 6
	}`)

	cfg, err := ParseCfg()
	require.NoError(t, err)

	assert.Equal(t, "nelson", cfg.DefaultCity)
	assert.Equal(t, ":9090", cfg.ServeAddr)
	assert.Equal(t, 6, cfg.ListingCacheTTL)
	assert.Contains(t, LoadedConfigPath, "config.json")
}

func TestParseCfgAppliesBaseURLOverrides(t *testing.T) {
	home := testutil.WithTempHome(t)
	orig := api.BaseURL(model.CityNelson)
	t.Cleanup(func() { api.SetBaseURL(model.CityNelson, orig) })

	writeUserConfig(t, home, `{"cityBaseUrls": {"nelson": "http://localhost:1234/wp-json/tribe/events/v1"}}`)

	_, err := ParseCfg()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/wp-json/tribe/events/v1", api.BaseURL(model.CityNelson))
}

func TestParseCfgRejectsUnknownCityOverride(t *testing.T) {
	home := testutil.WithTempHome(t)
	writeUserConfig(t, home, `{"cityBaseUrls": {"vancouver": "http://localhost:1234"}}`)

	_, err := ParseCfg()
	assert.ErrorIs(t, err, api.ErrUnknownCity)
}

func TestParseCfgMalformedFileIsError(t *testing.T) {
	home := testutil.WithTempHome(t)
	writeUserConfig(t, home, `{not json`)

	_, err := ParseCfg()
	assert.ErrorContains(t, err, "parse config")
}
