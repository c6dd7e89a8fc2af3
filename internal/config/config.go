// Package config loads the optional config.json and applies its overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/helpers"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

// LoadedConfigPath tracks which config file was loaded, for diagnostics.
var LoadedConfigPath string

// Defaults applied when config.json is absent or leaves a field unset.
const (
	DefaultServeAddr       = ":8765"
	DefaultListingTTLHours = 24
)

// candidatePaths returns the config file locations in lookup order:
// ~/.config/gigs/config.json first, then next to the binary.
func candidatePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gigs", "config.json"))
	}
	if dir, err := helpers.GetScriptDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.json"))
	}
	return paths
}

// ParseCfg loads the first config.json found, falling back to defaults
// when none exists. A malformed file is an error; a missing one is not.
func ParseCfg() (*model.Config, error) {
	cfg := &model.Config{
		DefaultCity:     string(model.DefaultCity),
		ServeAddr:       DefaultServeAddr,
		ListingCacheTTL: DefaultListingTTLHours,
	}

	for _, path := range candidatePaths() {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		var loaded model.Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		applyOverrides(cfg, &loaded)
		LoadedConfigPath = path
		break
	}

	// Push base-URL overrides into the API client before any requests.
	for name, u := range cfg.CityBaseURLs {
		city, err := api.ResolveCity(name)
		if err != nil {
			return nil, fmt.Errorf("config cityBaseUrls: %w", err)
		}
		api.SetBaseURL(city, u)
	}

	return cfg, nil
}

func applyOverrides(cfg, loaded *model.Config) {
	if loaded.DefaultCity != "" {
		cfg.DefaultCity = loaded.DefaultCity
	}
	if loaded.ServeAddr != "" {
		cfg.ServeAddr = loaded.ServeAddr
	}
	if loaded.ListingCacheTTL > 0 {
		cfg.ListingCacheTTL = loaded.ListingCacheTTL
	}
	if loaded.LogPath != "" {
		cfg.LogPath = loaded.LogPath
	}
	cfg.CityBaseURLs = loaded.CityBaseURLs
}
