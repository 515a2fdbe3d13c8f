package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"tazkara/internal/models"
)

// Manager owns the session lifecycle: anonymous until Establish, back to
// anonymous on Clear. Balance updates are data-only and do not transition
// the session.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Establish persists an authenticated user. The token is the session key;
// a user without one stays anonymous and is not stored.
func (m *Manager) Establish(ctx context.Context, user models.User) error {
	if !user.Authenticated() {
		return nil
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Save(ctx, user.Token, payload)
}

// Current loads the user for a token. Stored data that does not unmarshal or
// fails the schema (numeric id, non-empty name) is discarded silently and the
// caller sees an anonymous session.
func (m *Manager) Current(ctx context.Context, token string) (models.User, bool) {
	if token == "" {
		return models.User{}, false
	}

	payload, err := m.store.Load(ctx, token)
	if err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		slog.Warn("Discarding unparseable session record", "error", err)
		_ = m.store.Delete(ctx, token)
		return models.User{}, false
	}
	if user.ID <= 0 || user.Name == "" {
		slog.Warn("Discarding session record that fails schema", "user_id", user.ID)
		_ = m.store.Delete(ctx, token)
		return models.User{}, false
	}

	user.Token = token
	return user, true
}

// Clear ends the session. Missing sessions are not an error; logout is
// always allowed to succeed locally.
func (m *Manager) Clear(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := m.store.Delete(ctx, token); err != nil {
		slog.Warn("Failed to delete session record", "error", err)
	}
}

// SetBalance replaces the cached balance with an authoritative value,
// clearing any pending optimistic state.
func (m *Manager) SetBalance(ctx context.Context, token string, balance float64) (models.User, bool) {
	user, ok := m.Current(ctx, token)
	if !ok {
		return models.User{}, false
	}
	user.WalletBalance = balance
	user.BalanceKnown = true
	user.BalancePending = false
	if err := m.Establish(ctx, user); err != nil {
		slog.Warn("Failed to persist balance update", "error", err)
	}
	return user, true
}

// ApplyDebit records an optimistic local decrement after a successful order.
// The value stays marked pending until the next authoritative SetBalance.
func (m *Manager) ApplyDebit(ctx context.Context, token string, amount float64) (models.User, bool) {
	user, ok := m.Current(ctx, token)
	if !ok {
		return models.User{}, false
	}
	if user.BalanceKnown {
		user.WalletBalance -= amount
		user.BalancePending = true
		if err := m.Establish(ctx, user); err != nil {
			slog.Warn("Failed to persist balance debit", "error", err)
		}
	}
	return user, true
}
