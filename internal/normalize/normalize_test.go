package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohailtahir5858/live-music-finder/internal/model"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric", "Tom&#8217;s Jam", "Tom’s Jam"},
		{"named amp", "Folk &amp; Blues", "Folk & Blues"},
		{"named quote", "&quot;Live&quot;", `"Live"`},
		{"mixed", "A&amp;B &#38; C", "A&B & C"},
		{"unmapped passes through", "rock &zwnj; roll", "rock &zwnj; roll"},
		{"plain", "The Royal", "The Royal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEntities(tt.in))
		})
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Doors at 8. Cover $10.",
		StripTags("<p>Doors at 8. <strong>Cover $10.</strong></p>"))
	assert.Equal(t, "no markup", StripTags("no markup"))
}

func baseEvent() model.WireEvent {
	return model.WireEvent{
		ID:          4021,
		Title:       "Shred Kelly &amp; Friends",
		Description: "<p>Stoke-folk from the Kootenays</p>",
		StartDate:   "2026-09-12 20:00:00",
		Modified:    "2026-08-30 11:22:33",
		DateCreated: "2026-08-01 09:00:00",
		Cost:        "$25",
		Author:      "7",
		Venue: model.WireVenue{
			ID:            12,
			Venue:         "Fernie Hall",
			Address:       "101 Baker St",
			City:          "Nelson",
			StateProvince: "BC",
			Zip:           "V1L 4H2",
		},
		Image: model.WireImage{
			URL:    "https://cdn.test/full.jpg",
			Width:  2048,
			Height: 1365,
			Sizes: map[string]model.WireImageSize{
				"medium_large": {URL: "https://cdn.test/ml.jpg", Width: 768, Height: 512},
				"large":        {URL: "https://cdn.test/lg.jpg", Width: 1024, Height: 683},
			},
		},
		Categories: []model.WireCategory{
			{ID: 3, Name: "Folk"},
			{ID: 9, Name: "Rock &amp; Roll"},
		},
	}
}

func TestEventMapsCoreFields(t *testing.T) {
	show := Event(baseEvent())

	assert.Equal(t, "4021", show.ID)
	assert.Equal(t, "Shred Kelly & Friends", show.Title)
	assert.Equal(t, "Stoke-folk from the Kootenays", show.Description)
	assert.Equal(t, "Fernie Hall", show.VenueName)
	assert.Equal(t, "101 Baker St, Nelson, BC, V1L 4H2", show.VenueAddress)
	assert.Equal(t, model.CityNelson, show.City)
	assert.Equal(t, "2026-09-12", show.Date)
	assert.Equal(t, "8:00 PM", show.DisplayTime)
	assert.Equal(t, 20, show.StartHour)
	assert.Equal(t, "$25", show.Price)
	assert.Equal(t, []string{"Folk", "Rock & Roll"}, show.Genres)
	assert.True(t, show.Public)
	assert.Equal(t, "7", show.CreatedBy)
	assert.False(t, show.CreatedAt.IsZero())
	assert.False(t, show.UpdatedAt.IsZero())
}

func TestEventCityDefaultsToKelowna(t *testing.T) {
	e := baseEvent()
	e.Venue.City = "West Kelowna"
	assert.Equal(t, model.CityKelowna, Event(e).City)

	e.Venue.City = "Penticton"
	assert.Equal(t, model.DefaultCity, Event(e).City, "unrecognized cities fall back to the default")

	e.Venue.City = "NELSON"
	assert.Equal(t, model.CityNelson, Event(e).City)
}

func TestEventImagePrefersMobileTier(t *testing.T) {
	show := Event(baseEvent())

	assert.Equal(t, "https://cdn.test/ml.jpg", show.ImageURL)
	assert.Equal(t, 768, show.ImageWidth)
	assert.Equal(t, 512, show.ImageHeight)

	require.NotNil(t, show.MobileImage)
	assert.Equal(t, "https://cdn.test/ml.jpg", show.MobileImage.URL)
	require.NotNil(t, show.HDImage)
	assert.Equal(t, "https://cdn.test/lg.jpg", show.HDImage.URL)
}

func TestEventImageFallsBackToFullSize(t *testing.T) {
	e := baseEvent()
	e.Image.Sizes = nil
	show := Event(e)

	assert.Equal(t, "https://cdn.test/full.jpg", show.ImageURL)
	assert.Equal(t, 2048, show.ImageWidth)
	assert.Equal(t, 1365, show.ImageHeight)
	assert.Nil(t, show.MobileImage)
	assert.Nil(t, show.HDImage)
}

func TestEventDefaults(t *testing.T) {
	e := baseEvent()
	e.Cost = ""
	e.Categories = nil
	show := Event(e)

	assert.Equal(t, "Free", show.Price)
	assert.Equal(t, []string{"Live Music"}, show.Genres, "missing categories get the placeholder genre")
}

func TestEventUnparseableStartDate(t *testing.T) {
	e := baseEvent()
	e.StartDate = "sometime soon"
	show := Event(e)

	assert.Empty(t, show.Date)
	assert.Empty(t, show.DisplayTime)
	assert.Equal(t, -1, show.StartHour)
}

func TestEventMidnightAndNoonDisplay(t *testing.T) {
	e := baseEvent()
	e.StartDate = "2026-09-12 00:30:00"
	show := Event(e)
	assert.Equal(t, "12:30 AM", show.DisplayTime)
	assert.Equal(t, 0, show.StartHour)

	e.StartDate = "2026-09-12 12:00:00"
	show = Event(e)
	assert.Equal(t, "12:00 PM", show.DisplayTime)
	assert.Equal(t, 12, show.StartHour)
}

func TestPopularityRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := Event(baseEvent()).Popularity
		assert.GreaterOrEqual(t, p, 4.0)
		assert.Less(t, p, 5.0)
	}
}

func TestEventsPreservesOrder(t *testing.T) {
	raw := []model.WireEvent{baseEvent(), baseEvent(), baseEvent()}
	raw[0].ID = 1
	raw[1].ID = 2
	raw[2].ID = 3
	shows := Events(raw)
	require.Len(t, shows, 3)
	assert.Equal(t, "1", shows[0].ID)
	assert.Equal(t, "2", shows[1].ID)
	assert.Equal(t, "3", shows[2].ID)
}
