package service

import (
	"context"

	"tazkara/internal/cart"
	"tazkara/internal/external"
	"tazkara/internal/models"
)

type EventService struct {
	client *external.Client
	carts  *cart.Manager
}

func NewEventService(client *external.Client, carts *cart.Manager) *EventService {
	return &EventService{
		client: client,
		carts:  carts,
	}
}

func (s *EventService) Active(ctx context.Context) ([]models.Event, error) {
	return s.client.ActiveEvents(ctx)
}

func (s *EventService) Upcoming(ctx context.Context) ([]models.Event, error) {
	return s.client.UpcomingEvents(ctx)
}

func (s *EventService) ByID(ctx context.Context, id int64) (models.Event, error) {
	return s.client.EventByID(ctx, id)
}

func (s *EventService) ByCategory(ctx context.Context, categoryID int64) ([]models.Event, error) {
	return s.client.EventsByCategory(ctx, categoryID)
}

func (s *EventService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.Categories(ctx)
}

func (s *EventService) Banners(ctx context.Context) ([]models.Banner, error) {
	return s.client.Banners(ctx)
}

// OpenCart creates a cart for the event and fills in its detail. The
// generation token from BeginLoad makes a slow fetch harmless: if the cart
// was reloaded for another event meanwhile, the stale commit is discarded.
func (s *EventService) OpenCart(ctx context.Context, eventID int64) (*cart.Cart, error) {
	c := s.carts.Open(eventID)
	gen := c.BeginLoad(eventID)

	event, err := s.client.EventByID(ctx, eventID)
	if err != nil {
		s.carts.Delete(c.ID())
		return nil, err
	}
	c.CommitEvent(gen, event)
	return c, nil
}

// ReloadCart refreshes the event snapshot of an existing cart, preserving
// quantities and holder records where the categories still exist.
func (s *EventService) ReloadCart(ctx context.Context, c *cart.Cart) error {
	gen := c.BeginLoad(c.EventID())

	event, err := s.client.EventByID(ctx, c.EventID())
	if err != nil {
		return err
	}
	c.CommitEvent(gen, event)
	return nil
}
