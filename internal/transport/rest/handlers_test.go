package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohailtahir5858/live-music-finder/internal/api"
	"github.com/sohailtahir5858/live-music-finder/internal/cache"
	"github.com/sohailtahir5858/live-music-finder/internal/listings"
	"github.com/sohailtahir5858/live-music-finder/internal/model"
	"github.com/sohailtahir5858/live-music-finder/internal/shows"
	"github.com/sohailtahir5858/live-music-finder/internal/testutil"
)

func testRouter(t *testing.T, fetch func(context.Context, model.City, api.EventsQuery) (*model.WireEventsResponse, error), deps listings.Deps) http.Handler {
	t.Helper()
	svc := shows.NewService(cache.NewResultCache(time.Minute), shows.Deps{FetchPage: fetch})
	return NewRouter(RouterDeps{
		Handler: &Handler{
			Shows:       svc,
			ListingTTL:  time.Hour,
			DefaultCity: model.CityKelowna,
			Listings:    deps,
		},
		Log: zerolog.Nop(),
	})
}

func staticFetch(events []model.WireEvent) func(context.Context, model.City, api.EventsQuery) (*model.WireEventsResponse, error) {
	return func(_ context.Context, _ model.City, q api.EventsQuery) (*model.WireEventsResponse, error) {
		return &model.WireEventsResponse{
			Events:     events,
			Total:      len(events),
			TotalPages: 1,
		}, nil
	}
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEventsEndpointReturnsDataEnvelope(t *testing.T) {
	events := []model.WireEvent{
		{ID: 1, Title: "Opener", StartDate: "2026-09-10 20:00:00", Venue: model.WireVenue{City: "Kelowna"}},
		{ID: 2, Title: "Headliner", StartDate: "2026-09-10 21:30:00", Venue: model.WireVenue{City: "Kelowna"}},
	}
	router := testRouter(t, staticFetch(events), listings.Deps{})

	rec := doGet(t, router, "/api/v1/events?city=kelowna&page=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var body struct {
		Data model.EventsPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Total)
	require.Len(t, body.Data.Shows, 2)
	assert.Equal(t, "Opener", body.Data.Shows[0].Title)
}

func TestEventsEndpointDefaultsCity(t *testing.T) {
	var gotCity model.City
	fetch := func(_ context.Context, city model.City, _ api.EventsQuery) (*model.WireEventsResponse, error) {
		gotCity = city
		return &model.WireEventsResponse{}, nil
	}
	router := testRouter(t, fetch, listings.Deps{})

	rec := doGet(t, router, "/api/v1/events")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.CityKelowna, gotCity)
}

func TestEventsEndpointRejectsUnknownCity(t *testing.T) {
	router := testRouter(t, staticFetch(nil), listings.Deps{})

	rec := doGet(t, router, "/api/v1/events?city=vancouver")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unknown_city", body.Error.Code)
	assert.NotEmpty(t, body.Error.RequestID)
}

func TestEventsEndpointValidatesParams(t *testing.T) {
	router := testRouter(t, staticFetch(nil), listings.Deps{})

	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/events?page=0").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/events?page=abc").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/events?time=brunch").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/events?category=x").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/events?venue=-1").Code)
}

func TestEventsEndpointUpstreamFailure(t *testing.T) {
	fetch := func(context.Context, model.City, api.EventsQuery) (*model.WireEventsResponse, error) {
		return nil, fmt.Errorf("connection refused")
	}
	router := testRouter(t, fetch, listings.Deps{})

	rec := doGet(t, router, "/api/v1/events")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestEventsEndpointTimeFilterPaginatesLocally(t *testing.T) {
	events := make([]model.WireEvent, 0, 6)
	for i := 0; i < 6; i++ {
		hour := 21
		if i < 4 {
			hour = 9
		}
		events = append(events, model.WireEvent{
			ID:        i + 1,
			Title:     fmt.Sprintf("Show %d", i+1),
			StartDate: fmt.Sprintf("2026-09-10 %02d:00:00", hour),
			Venue:     model.WireVenue{City: "Nelson"},
		})
	}
	router := testRouter(t, staticFetch(events), listings.Deps{})

	rec := doGet(t, router, "/api/v1/events?city=nelson&time=morning")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.EventsPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Data.Total)
	assert.Equal(t, 1, body.Data.TotalPages)
}

func TestCategoriesEndpoint(t *testing.T) {
	testutil.WithTempHome(t)
	deps := listings.Deps{
		GetCategories: func(context.Context, model.City) ([]model.Category, error) {
			return []model.Category{{ID: 1, Name: "Folk"}}, nil
		},
	}
	router := testRouter(t, staticFetch(nil), deps)

	rec := doGet(t, router, "/api/v1/categories?city=nelson")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Folk", body.Data[0].Name)
}

func TestVenuesEndpoint(t *testing.T) {
	testutil.WithTempHome(t)
	deps := listings.Deps{
		GetVenues: func(context.Context, model.City) ([]model.Venue, error) {
			return []model.Venue{{ID: 2, Name: "The Royal", City: "Nelson"}}, nil
		},
	}
	router := testRouter(t, staticFetch(nil), deps)

	rec := doGet(t, router, "/api/v1/venues?city=nelson")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.Venue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "The Royal", body.Data[0].Name)
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, staticFetch(nil), listings.Deps{})
	rec := doGet(t, router, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
