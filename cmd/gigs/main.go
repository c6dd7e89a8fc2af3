package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/cache"
	"github.com/sohailtahir5858/live-music-finder/internal/config"
	"github.com/sohailtahir5858/live-music-finder/internal/helpers"
	"github.com/sohailtahir5858/live-music-finder/internal/listings"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/shows"
	"github.com/sohailtahir5858/live-music-finder/internal/timeofday"
	"github.com/sohailtahir5858/live-music-finder/internal/transport/rest"
	"github.com/sohailtahir5858/live-music-finder/internal/ui"
)

func main() {
	var args model.Args
	parser := arg.MustParse(&args)

	cfg, err := config.ParseCfg()
	if err != nil {
		helpers.HandleErr("Failed to load config.", err, true)
	}

	initAPILog(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := shows.NewService(cache.NewResultCache(cache.DefaultResultTTL), shows.Deps{})
	listingTTL := time.Duration(cfg.ListingCacheTTL) * time.Hour

	switch {
	case args.Shows != nil:
		err = runShows(ctx, svc, cfg, args.Shows)
	case args.Categories != nil:
		err = runCategories(ctx, cfg, listingTTL, args.Categories)
	case args.Venues != nil:
		err = runVenues(ctx, cfg, listingTTL, args.Venues)
	case args.Serve != nil:
		err = runServe(ctx, svc, cfg, listingTTL, args.Serve)
	default:
		parser.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		helpers.HandleErr("Command failed.", err, true)
	}
}

// initAPILog points the structured API log at cfg.LogPath, defaulting to
// the cache directory. Failure disables the log but never aborts the run.
func initAPILog(cfg *model.Config) {
	logPath := cfg.LogPath
	if logPath == "" {
		cacheDir, err := cache.GetCacheDir()
		if err != nil {
			return
		}
		logPath = filepath.Join(cacheDir, "api.log")
	}
	if err := api.InitAPILogger(logPath); err != nil {
		ui.PrintWarning("API logging disabled: " + err.Error())
	}
}

func resolveCity(flag string, cfg *model.Config) (model.City, error) {
	name := flag
	if name == "" {
		name = cfg.DefaultCity
	}
	return api.ResolveCity(name)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runShows(ctx context.Context, svc *shows.Service, cfg *model.Config, cmd *model.ShowsCmd) error {
	city, err := resolveCity(cmd.City, cfg)
	if err != nil {
		return err
	}
	if cmd.TimeFilter != "" && !timeofday.Known(cmd.TimeFilter) {
		ui.PrintWarning(fmt.Sprintf("Unknown time filter %q - showing all times.", cmd.TimeFilter))
	}

	filters := model.FilterParams{
		CategoryIDs: cmd.Categories,
		VenueIDs:    cmd.Venues,
		TimeFilter:  cmd.TimeFilter,
		DateFrom:    cmd.DateFrom,
		DateTo:      cmd.DateTo,
	}

	page, err := svc.FetchEvents(ctx, city, cmd.Page, filters)
	if err != nil {
		// The page is still a valid empty result; render it so "fetch
		// failed" and "no shows" look the same on screen, but exit nonzero.
		ui.PrintError("Events fetch failed: " + err.Error())
	}
	if cmd.JSON {
		if jerr := printJSON(page); jerr != nil {
			return jerr
		}
		return err
	}
	ui.RenderShowsPage(city, page, cmd.Page)
	if len(page.Shows) > 0 {
		ui.PrintInfo("Filters: " + ui.FormatFilterSummary(filters))
	}
	return err
}

func runCategories(ctx context.Context, cfg *model.Config, ttl time.Duration, cmd *model.CategoriesCmd) error {
	city, err := resolveCity(cmd.City, cfg)
	if err != nil {
		return err
	}
	categories, cachedAt, err := listings.Categories(ctx, city, cmd.Refresh, ttl, listings.Deps{})
	if err != nil {
		return err
	}
	if cmd.JSON {
		return printJSON(categories)
	}
	ui.RenderCategories(city, categories, cachedAt)
	return nil
}

func runVenues(ctx context.Context, cfg *model.Config, ttl time.Duration, cmd *model.VenuesCmd) error {
	city, err := resolveCity(cmd.City, cfg)
	if err != nil {
		return err
	}
	venues, cachedAt, err := listings.Venues(ctx, city, cmd.Refresh, ttl, listings.Deps{})
	if err != nil {
		return err
	}
	if cmd.JSON {
		return printJSON(venues)
	}
	ui.RenderVenues(city, venues, cachedAt)
	return nil
}

func runServe(ctx context.Context, svc *shows.Service, cfg *model.Config, ttl time.Duration, cmd *model.ServeCmd) error {
	addr := cmd.Addr
	if addr == "" {
		addr = cfg.ServeAddr
	}

	defaultCity, err := api.ResolveCity(cfg.DefaultCity)
	if err != nil {
		return err
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	router := rest.NewRouter(rest.RouterDeps{
		Handler: &rest.Handler{
			Shows:       svc,
			ListingTTL:  ttl,
			DefaultCity: defaultCity,
		},
		Log: log,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ui.PrintSuccess("Serving read API on " + addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
