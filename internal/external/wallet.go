package external

import (
	"context"
	"encoding/json"
	"net/http"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
	"tazkara/internal/normalize"
)

// WalletBalance fetches the user's balance. The response shape varies by
// backend version, so the raw body goes through the shape resolver; an
// unexpected but well-formed body is a zero balance, not an error.
func (c *Client) WalletBalance(ctx context.Context, token string) (float64, error) {
	if token == "" {
		return 0, errs.ErrAuthRequired
	}

	body, err := c.readJSON(ctx, "wallet.balance", "/api/wallet/me", token)
	if err != nil {
		return 0, err
	}
	return normalize.WalletBalance(body), nil
}

// Deposit tops up the wallet. Amount validation happens in the service layer
// before this is called; the backend's answer is passed through untouched.
func (c *Client) Deposit(ctx context.Context, userID int64, amount float64, token string) (json.RawMessage, error) {
	op := "wallet.deposit"
	req := map[string]any{
		"user_id": userID,
		"amount":  amount,
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/wallet/deposit", token, req)
	if err != nil {
		return nil, &errs.TransportError{Op: op, Err: err}
	}
	if !resp.ok() {
		return nil, &errs.ProtocolError{Op: op, StatusCode: resp.status, Message: resp.errorMessage()}
	}
	return resp.body, nil
}

// WalletTransactions lists the wallet history. A 404 means the user simply
// has none yet.
func (c *Client) WalletTransactions(ctx context.Context, token string) ([]models.Transaction, error) {
	op := "wallet.transactions"
	if token == "" {
		return nil, errs.ErrAuthRequired
	}

	resp, err := c.send(ctx, http.MethodGet, "/api/wallet/me/transactions", token, nil)
	if err != nil {
		return nil, &errs.TransportError{Op: op, Err: err}
	}
	if resp.status == http.StatusNotFound {
		return []models.Transaction{}, nil
	}
	if !resp.ok() {
		return nil, &errs.ProtocolError{Op: op, StatusCode: resp.status, Message: resp.errorMessage()}
	}

	return normalize.Transactions(resp.body), nil
}
