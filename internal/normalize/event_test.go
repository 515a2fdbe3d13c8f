package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tazkara/internal/models"
)

func TestEventDefaults(t *testing.T) {
	event, err := EventFromJSON([]byte(`{"id": 7}`))
	require.NoError(t, err)

	assert.Equal(t, int64(7), event.ID)
	assert.Equal(t, DefaultTitle, event.Title)
	assert.Equal(t, TBD, event.Date)
	assert.Equal(t, TBD, event.Venue)
	assert.Equal(t, TBD, event.Location)
	assert.Equal(t, DefaultCategory, event.Category)
	assert.Equal(t, PlaceholderImage, event.Image)
	assert.Equal(t, TBD, event.Price)
	assert.False(t, event.Featured)
}

func TestEventFieldPrecedence(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"event_name": "Concert A",
		"title": "ignored",
		"start_date": "2026-10-01",
		"date": "ignored too",
		"cover": "/img/a.jpg",
		"image": "also ignored"
	}`)

	event, err := EventFromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "Concert A", event.Title)
	assert.Equal(t, "2026-10-01", event.Date)
	assert.Equal(t, "/img/a.jpg", event.Image)
}

func TestEventVenueShapes(t *testing.T) {
	object, err := EventFromJSON([]byte(`{"id": 1, "venue": {"name": "Opera House", "city": "Almaty"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Opera House", object.Venue)
	assert.Equal(t, "Almaty", object.Location)

	str, err := EventFromJSON([]byte(`{"id": 2, "venue": "Opera House", "location": "Astana"}`))
	require.NoError(t, err)
	assert.Equal(t, "Opera House", str.Venue)
	assert.Equal(t, "Astana", str.Location)

	null, err := EventFromJSON([]byte(`{"id": 3, "venue": null}`))
	require.NoError(t, err)
	assert.Equal(t, TBD, null.Venue)
}

func TestEventCategoryShapes(t *testing.T) {
	object, err := EventFromJSON([]byte(`{"id": 1, "category": {"id": 3, "name": "Music"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Music", object.Category)

	str, err := EventFromJSON([]byte(`{"id": 2, "category": "Theatre"}`))
	require.NoError(t, err)
	assert.Equal(t, "Theatre", str.Category)
}

func TestEventMinPrice(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"ticket_categories": [
			{"id": 1, "name": "VIP", "price": "5,000"},
			{"id": 2, "name": "Standard", "price": 1500},
			{"id": 3, "name": "Broken", "price": "not a price"}
		]
	}`)

	event, err := EventFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "1,500", event.Price)
}

func TestEventFreeCategoryWinsMin(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"ticket_categories": [
			{"id": 1, "name": "Paid", "price": 1000},
			{"id": 2, "name": "Entry", "price": 9999, "is_free": true}
		]
	}`)

	event, err := EventFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, FreePrice, event.Price)
}

func TestEventAllPricesInvalid(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"ticket_categories": [
			{"id": 1, "name": "A", "price": "??"},
			{"id": 2, "name": "B", "price": null}
		]
	}`)

	event, err := EventFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, TBD, event.Price)
}

// Normalizing an already-normalized event must be a no-op: the canonical
// document round-trips through the raw decoder unchanged.
func TestEventIdempotence(t *testing.T) {
	raw := []byte(`{
		"id": 42,
		"event_name": "Jazz Night",
		"start_date": "2026-11-20",
		"venue": {"name": "Blue Note", "city": "Almaty"},
		"category": {"name": "Music"},
		"cover": "/img/jazz.jpg",
		"featured": "1",
		"ticket_categories": [{"id": 1, "name": "GA", "price": "2500", "quantity_available": 80}]
	}`)

	first, err := EventFromJSON(raw)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := EventFromJSON(encoded)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEventsFromJSONEnvelopes(t *testing.T) {
	bare, err := EventsFromJSON([]byte(`[{"id": 1}, {"id": 2}]`))
	require.NoError(t, err)
	assert.Len(t, bare, 2)

	wrapped, err := EventsFromJSON([]byte(`{"data": [{"id": 3}]}`))
	require.NoError(t, err)
	require.Len(t, wrapped, 1)
	assert.Equal(t, int64(3), wrapped[0].ID)

	_, err = EventsFromJSON([]byte(`"nonsense"`))
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, FreePrice, FormatPrice(0))
	assert.Equal(t, "750", FormatPrice(750))
	assert.Equal(t, "1,500", FormatPrice(1500))
	assert.Equal(t, "2,500,000", FormatPrice(2500000))
	assert.Equal(t, "1,234.5", FormatPrice(1234.5))
}

func TestFlexibleNumberTolerance(t *testing.T) {
	cases := map[string]models.FlexibleNumber{
		`1500`:       {Value: 1500, Valid: true},
		`"1500"`:     {Value: 1500, Valid: true},
		`"1,500.50"`: {Value: 1500.5, Valid: true},
		`"free?"`:    {Valid: false},
		`null`:       {Valid: false},
		`true`:       {Valid: false},
	}

	for input, want := range cases {
		var fn models.FlexibleNumber
		err := json.Unmarshal([]byte(input), &fn)
		assert.NoError(t, err, input)
		assert.Equal(t, want, fn, input)
	}
}
