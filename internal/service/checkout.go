package service

import (
	"context"
	"encoding/json"
	"fmt"

	"tazkara/internal/cart"
	errs "tazkara/internal/errors"
	"tazkara/internal/external"
	"tazkara/internal/logger"
	"tazkara/internal/session"
)

type CheckoutService struct {
	client   *external.Client
	sessions *session.Manager
	carts    *cart.Manager
}

func NewCheckoutService(client *external.Client, sessions *session.Manager, carts *cart.Manager) *CheckoutService {
	return &CheckoutService{
		client:   client,
		sessions: sessions,
		carts:    carts,
	}
}

// Checkout runs every local precondition before a single byte goes upstream:
// an anonymous user, an empty selection, incomplete holder records or a
// balance known to be short all fail here without a network call. Only a
// fully valid cart produces an order request.
func (s *CheckoutService) Checkout(ctx context.Context, token, cartID string) (json.RawMessage, error) {
	user, ok := s.sessions.Current(ctx, token)
	if !ok {
		return nil, errs.ErrAuthRequired
	}

	c, ok := s.carts.Get(cartID)
	if !ok {
		return nil, errs.ErrNotFound
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	total := c.Total()
	if user.BalanceKnown && user.WalletBalance < total {
		return nil, &errs.PreconditionError{
			Reason:  errs.ReasonInsufficientFunds,
			Message: fmt.Sprintf("wallet balance %.2f is below order total %.2f", user.WalletBalance, total),
		}
	}

	body, err := s.client.CreateOrder(ctx, c.BuildOrder(), user.Token)
	if err != nil {
		if isAuthStatus(err) {
			s.sessions.Clear(ctx, token)
			return nil, errs.ErrSessionExpired
		}
		return nil, err
	}

	// The backend accepted the order. Debit optimistically so the wallet
	// widget does not show stale funds until the next balance refresh.
	s.sessions.ApplyDebit(ctx, token, total)
	s.carts.Delete(cartID)

	logger.WithContext(ctx).Info("order placed",
		"user_id", user.ID,
		"event_id", c.EventID(),
		"total", total)

	return body, nil
}
