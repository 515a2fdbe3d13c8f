package external

import (
	"context"
	"encoding/json"
	"fmt"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
	"tazkara/internal/normalize"
)

// ActiveEvents returns the normalized active-events list, degrading to the
// sample catalog on transport or protocol failure.
func (c *Client) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	return c.eventList(ctx, "events.active", "/api/events/active")
}

func (c *Client) UpcomingEvents(ctx context.Context) ([]models.Event, error) {
	return c.eventList(ctx, "events.upcoming", "/api/events/upcoming")
}

func (c *Client) eventList(ctx context.Context, op, path string) ([]models.Event, error) {
	if c.fallback == FallbackAlways {
		return c.samples.Events(), nil
	}

	body, err := c.readJSON(ctx, op, path, "")
	if err != nil {
		if c.allowFallback(err) {
			return c.samples.Events(), nil
		}
		return nil, err
	}

	events, err := normalize.EventsFromJSON(body)
	if err != nil {
		return nil, &errs.ValidationError{Op: op, Reason: err.Error()}
	}
	return events, nil
}

func (c *Client) EventByID(ctx context.Context, id int64) (models.Event, error) {
	op := "events.by_id"
	if c.fallback == FallbackAlways {
		return c.sampleEvent(id)
	}

	body, err := c.readJSON(ctx, op, fmt.Sprintf("/api/events/%d", id), "")
	if err != nil {
		if c.allowFallback(err) {
			return c.sampleEvent(id)
		}
		return models.Event{}, err
	}

	event, err := normalize.EventFromJSON(body)
	if err != nil {
		return models.Event{}, &errs.ValidationError{Op: op, Reason: err.Error()}
	}
	return event, nil
}

func (c *Client) sampleEvent(id int64) (models.Event, error) {
	if ev, ok := c.samples.EventByID(id); ok {
		return ev, nil
	}
	return models.Event{}, errs.ErrNotFound
}

func (c *Client) EventsByCategory(ctx context.Context, categoryID int64) ([]models.Event, error) {
	op := "events.by_category"
	if c.Degraded() {
		return c.samples.EventsByCategory(categoryID), nil
	}

	body, err := c.readJSON(ctx, op, fmt.Sprintf("/api/events/active/category/%d", categoryID), "")
	if err != nil {
		if c.allowFallback(err) {
			return c.samples.EventsByCategory(categoryID), nil
		}
		return nil, err
	}

	events, err := normalize.EventsFromJSON(body)
	if err != nil {
		return nil, &errs.ValidationError{Op: op, Reason: err.Error()}
	}
	return events, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	op := "categories.list"
	if c.Degraded() {
		return c.samples.Categories(), nil
	}

	body, err := c.readJSON(ctx, op, "/api/categories", "")
	if err != nil {
		if c.allowFallback(err) {
			return c.samples.Categories(), nil
		}
		return nil, err
	}

	var cats []models.Category
	if err := json.Unmarshal(body, &cats); err != nil {
		var envelope struct {
			Data []models.Category `json:"data"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil {
			return nil, &errs.ValidationError{Op: op, Reason: err.Error()}
		}
		cats = envelope.Data
	}
	return cats, nil
}

func (c *Client) Banners(ctx context.Context) ([]models.Banner, error) {
	op := "banners.list"
	if c.Degraded() {
		return c.samples.Banners(), nil
	}

	body, err := c.readJSON(ctx, op, "/api/banners", "")
	if err != nil {
		if c.allowFallback(err) {
			return c.samples.Banners(), nil
		}
		return nil, err
	}

	var banners []models.Banner
	if err := json.Unmarshal(body, &banners); err != nil {
		var envelope struct {
			Data []models.Banner `json:"data"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil {
			return nil, &errs.ValidationError{Op: op, Reason: err.Error()}
		}
		banners = envelope.Data
	}
	return banners, nil
}
