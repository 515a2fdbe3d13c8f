package service

import (
	"context"

	"tazkara/internal/external"
	"tazkara/internal/models"
)

type TicketService struct {
	client *external.Client
}

func NewTicketService(client *external.Client) *TicketService {
	return &TicketService{client: client}
}

// List returns the user's tickets, optionally filtered by status bucket.
// Filtering touches only the ticket rows: pagination links and meta describe
// the upstream page and are left alone.
func (s *TicketService) List(ctx context.Context, token, status string) (models.PaginatedTickets, error) {
	page, err := s.client.MyTickets(ctx, token)
	if err != nil {
		return models.PaginatedTickets{}, err
	}

	switch status {
	case models.TicketAvailable, models.TicketUsed, models.TicketCancelled:
		filtered := make([]models.PurchasedTicket, 0, len(page.Data))
		for _, t := range page.Data {
			if t.AvailabilityStatus == status {
				filtered = append(filtered, t)
			}
		}
		page.Data = filtered
	}
	return page, nil
}
