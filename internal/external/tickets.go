package external

import (
	"context"
	"encoding/json"
	"net/http"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
	"tazkara/internal/normalize"
)

// MyTickets returns the user's purchased tickets as a fully populated page.
// In degraded mode the sample tickets are served so the account area keeps
// rendering.
func (c *Client) MyTickets(ctx context.Context, token string) (models.PaginatedTickets, error) {
	op := "tickets.mine"
	if c.Degraded() {
		return c.samples.Tickets(), nil
	}
	if token == "" {
		return models.PaginatedTickets{}, errs.ErrAuthRequired
	}

	body, err := c.readJSON(ctx, op, "/api/my-tickets", token)
	if err != nil {
		if c.allowFallback(err) {
			return c.samples.Tickets(), nil
		}
		return models.PaginatedTickets{}, err
	}

	page, err := normalize.TicketsPage(body)
	if err != nil {
		return models.PaginatedTickets{}, &errs.ValidationError{Op: op, Reason: err.Error()}
	}
	return page, nil
}

// CreateOrder submits a purchase. There is no degraded path here: a write
// against sample data would fabricate a sale. The success body is relayed
// verbatim so the caller sees whatever confirmation the backend produced.
func (c *Client) CreateOrder(ctx context.Context, order models.Order, token string) (json.RawMessage, error) {
	op := "tickets.order"
	if token == "" {
		return nil, errs.ErrAuthRequired
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/order", token, order)
	if err != nil {
		return nil, &errs.TransportError{Op: op, Err: err}
	}
	if !resp.ok() {
		return nil, &errs.ProtocolError{Op: op, StatusCode: resp.status, Message: resp.errorMessage()}
	}
	return resp.body, nil
}
