package external

import (
	"context"
	"fmt"
	"net/http"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
	"tazkara/internal/normalize"
	"tazkara/internal/sample"
)

// Login posts credentials and enforces the strict response contract. The
// three failure classes stay distinct: transport, rejection by the backend,
// and a 2xx whose shape is unusable.
func (c *Client) Login(ctx context.Context, identifier, password string) (models.User, error) {
	if c.fallback == FallbackAlways {
		return c.sampleLogin(identifier)
	}

	req := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	resp, err := c.send(ctx, http.MethodPost, "/api/login", "", req)
	if err != nil {
		return models.User{}, &errs.AuthError{Code: errs.AuthTransport, Err: err}
	}

	if !resp.ok() {
		msg := resp.errorMessage()
		if msg == "" {
			msg = fmt.Sprintf("server returned %d", resp.status)
		}
		return models.User{}, &errs.AuthError{Code: errs.AuthRejected, Message: msg}
	}
	if !resp.isJSON() {
		return models.User{}, &errs.AuthError{Code: errs.AuthInvalidResponse, Message: "server returned non-JSON response"}
	}

	user, err := normalize.LoginUser(resp.body)
	if err != nil {
		return models.User{}, &errs.AuthError{Code: errs.AuthInvalidResponse, Message: err.Error()}
	}
	return user, nil
}

// Register posts the registration form. The response shape is accepted in
// three possible nestings; the wallet balance defaults to zero when absent.
func (c *Client) Register(ctx context.Context, name, phone, password string) (models.User, error) {
	req := map[string]string{
		"name":                  name,
		"phone":                 phone,
		"password":              password,
		"password_confirmation": password,
	}
	resp, err := c.send(ctx, http.MethodPost, "/api/register", "", req)
	if err != nil {
		return models.User{}, &errs.AuthError{Code: errs.AuthTransport, Err: err}
	}

	if !resp.ok() {
		msg := resp.errorMessage()
		if msg == "" {
			msg = fmt.Sprintf("server returned %d", resp.status)
		}
		return models.User{}, &errs.AuthError{Code: errs.AuthRejected, Message: msg}
	}
	if !resp.isJSON() {
		return models.User{}, &errs.AuthError{Code: errs.AuthInvalidResponse, Message: "server returned non-JSON response"}
	}

	user, err := normalize.RegisterUser(resp.body, name, phone)
	if err != nil {
		return models.User{}, &errs.AuthError{Code: errs.AuthInvalidResponse, Message: err.Error()}
	}
	return user, nil
}

// Logout tells the backend to drop the token. Callers treat this as
// best-effort: the local session is cleared whatever happens here.
func (c *Client) Logout(ctx context.Context, token string) error {
	if c.fallback == FallbackAlways {
		return nil
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/logout", token, nil)
	if err != nil {
		return &errs.TransportError{Op: "auth.logout", Err: err}
	}
	if !resp.ok() {
		return &errs.ProtocolError{Op: "auth.logout", StatusCode: resp.status, Message: resp.errorMessage()}
	}
	return nil
}

// sampleLogin is the demo-mode path: any password unlocks a sample account
// matched by phone or name.
func (c *Client) sampleLogin(identifier string) (models.User, error) {
	for _, u := range sample.Users() {
		if u.Phone == identifier || u.Name == identifier {
			return u, nil
		}
	}
	return models.User{}, &errs.AuthError{Code: errs.AuthRejected, Message: "unknown sample account"}
}
