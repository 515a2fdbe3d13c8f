package service

import (
	"context"
	"errors"
	"math"
	"net/http"

	errs "tazkara/internal/errors"
	"tazkara/internal/external"
	"tazkara/internal/models"
	"tazkara/internal/session"
)

type WalletService struct {
	client   *external.Client
	sessions *session.Manager
}

func NewWalletService(client *external.Client, sessions *session.Manager) *WalletService {
	return &WalletService{
		client:   client,
		sessions: sessions,
	}
}

// Balance fetches the authoritative balance and records it on the session,
// clearing any pending optimistic debit. A 401 or 403 from upstream means
// the token is dead: the session is dropped so the user is not shown stale
// account state.
func (s *WalletService) Balance(ctx context.Context, token string) (float64, error) {
	balance, err := s.client.WalletBalance(ctx, token)
	if err != nil {
		if isAuthStatus(err) {
			s.sessions.Clear(ctx, token)
			return 0, errs.ErrSessionExpired
		}
		return 0, err
	}
	s.sessions.SetBalance(ctx, token, balance)
	return balance, nil
}

// Deposit validates the amount locally before anything goes over the wire,
// then refreshes the balance so the session reflects the top-up.
func (s *WalletService) Deposit(ctx context.Context, token string, amount float64) (float64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &errs.PreconditionError{
			Reason:  errs.ReasonInvalidAmount,
			Message: "deposit amount must be a positive number",
		}
	}

	user, ok := s.sessions.Current(ctx, token)
	if !ok {
		return 0, errs.ErrAuthRequired
	}

	if _, err := s.client.Deposit(ctx, user.ID, amount, token); err != nil {
		if isAuthStatus(err) {
			s.sessions.Clear(ctx, token)
			return 0, errs.ErrSessionExpired
		}
		return 0, err
	}

	return s.Balance(ctx, token)
}

func (s *WalletService) Transactions(ctx context.Context, token string) ([]models.Transaction, error) {
	txns, err := s.client.WalletTransactions(ctx, token)
	if err != nil {
		if isAuthStatus(err) {
			s.sessions.Clear(ctx, token)
			return nil, errs.ErrSessionExpired
		}
		return nil, err
	}
	return txns, nil
}

// isAuthStatus reports whether the error is an upstream 401 or 403.
func isAuthStatus(err error) bool {
	var pe *errs.ProtocolError
	if errors.As(err, &pe) {
		return pe.StatusCode == http.StatusUnauthorized || pe.StatusCode == http.StatusForbidden
	}
	return false
}
