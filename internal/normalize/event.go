// Package normalize converts the upstream backend's heterogeneous raw
// payloads into the canonical shapes the storefront serves. Everything in
// here is a pure function over bytes/structs: no I/O, no state.
//
// The upstream is inconsistent between endpoints (event_name vs title, venue
// as a nested object or a bare string, prices as numbers or strings), so each
// ambiguous field gets exactly one resolver with an ordered fallback chain.
// Normalization is idempotent: feeding an already-normalized document back
// through produces the same document.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"tazkara/internal/models"
)

const (
	DefaultTitle    = "Untitled Event"
	DefaultCategory = "Event"
	TBD             = "TBD"
	FreePrice       = "Free"

	PlaceholderImage = "/images/placeholder.jpg"
)

// RawEvent carries every field spelling the upstream is known to use for an
// event. Venue and category stay raw because they arrive either as objects
// or as bare strings.
type RawEvent struct {
	ID               int64                   `json:"id"`
	EventName        string                  `json:"event_name"`
	Title            string                  `json:"title"`
	StartDate        string                  `json:"start_date"`
	Date             string                  `json:"date"`
	EndDate          string                  `json:"end_date"`
	Venue            json.RawMessage         `json:"venue"`
	Location         string                  `json:"location"`
	Category         json.RawMessage         `json:"category"`
	Cover            string                  `json:"cover"`
	Image            string                  `json:"image"`
	Description      string                  `json:"description"`
	Featured         models.FlexibleBool     `json:"featured"`
	TicketCategories []models.TicketCategory `json:"ticket_categories"`
}

// Event maps one raw event record to the canonical shape.
func Event(raw RawEvent) models.Event {
	return models.Event{
		ID:               raw.ID,
		Title:            firstNonEmpty(raw.EventName, raw.Title, DefaultTitle),
		Date:             firstNonEmpty(raw.StartDate, raw.Date, TBD),
		EndDate:          raw.EndDate,
		Venue:            nameOrString(raw.Venue, TBD),
		Location:         resolveLocation(raw.Venue, raw.Location),
		Category:         nameOrString(raw.Category, DefaultCategory),
		Image:            firstNonEmpty(raw.Cover, raw.Image, PlaceholderImage),
		Price:            minPrice(raw.TicketCategories),
		Featured:         raw.Featured.Bool(),
		Description:      raw.Description,
		TicketCategories: raw.TicketCategories,
	}
}

// EventFromJSON decodes a single raw event document and normalizes it.
func EventFromJSON(data []byte) (models.Event, error) {
	var raw RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Event{}, err
	}
	return Event(raw), nil
}

// EventsFromJSON decodes a raw event list. The upstream serves lists either
// as a bare array or wrapped in a {"data": [...]} envelope.
func EventsFromJSON(data []byte) ([]models.Event, error) {
	var raws []RawEvent
	if err := json.Unmarshal(data, &raws); err != nil {
		var envelope struct {
			Data []RawEvent `json:"data"`
		}
		if err2 := json.Unmarshal(data, &envelope); err2 != nil {
			return nil, err
		}
		raws = envelope.Data
	}

	events := make([]models.Event, len(raws))
	for i, raw := range raws {
		events[i] = Event(raw)
	}
	return events, nil
}

// nameOrString resolves an object-with-name / bare-string / absent field.
func nameOrString(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}

	return fallback
}

// resolveLocation prefers the venue's city over the flat location field.
func resolveLocation(venue json.RawMessage, location string) string {
	if len(venue) > 0 {
		var obj struct {
			City string `json:"city"`
		}
		if err := json.Unmarshal(venue, &obj); err == nil && obj.City != "" {
			return obj.City
		}
	}
	if location != "" {
		return location
	}
	return TBD
}

// minPrice derives the display price from the cheapest ticket category. A
// category flagged free counts as zero; a category whose price did not parse
// is excluded rather than poisoning the minimum. No categories means no
// price is known yet.
func minPrice(cats []models.TicketCategory) string {
	var min float64
	found := false
	for _, cat := range cats {
		var p float64
		switch {
		case cat.IsFree.Bool():
			p = 0
		case cat.Price.Valid:
			p = cat.Price.Value
		default:
			continue
		}
		if !found || p < min {
			min = p
			found = true
		}
	}

	if !found {
		return TBD
	}
	return FormatPrice(min)
}

// FormatPrice renders a non-negative amount for display: zero is the free
// sentinel, everything else gets thousands separators.
func FormatPrice(v float64) string {
	if v == 0 {
		return FreePrice
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
