package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tazkara/internal/cart"
	errs "tazkara/internal/errors"
	"tazkara/internal/external"
	"tazkara/internal/models"
	"tazkara/internal/session"
)

type checkoutFixture struct {
	services *Services
	sessions *session.Manager
	carts    *cart.Manager
	requests *atomic.Int64
}

func newCheckoutFixture(t *testing.T, handler http.HandlerFunc) *checkoutFixture {
	t.Helper()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := external.NewClient(external.Config{BaseURL: srv.URL, Fallback: external.FallbackNever})
	sessions := session.NewManager(session.NewMemoryStore())
	carts := cart.NewManager()

	return &checkoutFixture{
		services: NewServices(client, sessions, carts),
		sessions: sessions,
		carts:    carts,
		requests: &requests,
	}
}

func (f *checkoutFixture) login(t *testing.T, user models.User) {
	t.Helper()
	require.NoError(t, f.sessions.Establish(context.Background(), user))
}

func (f *checkoutFixture) readyCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := f.carts.Open(10)
	gen := c.BeginLoad(10)
	require.True(t, c.CommitEvent(gen, models.Event{
		ID: 10,
		TicketCategories: []models.TicketCategory{
			{ID: 1, Name: "Standard", Price: models.Number(100), QuantityAvailable: 10},
		},
	}))
	require.NoError(t, c.SetQuantity(1, 2))
	require.NoError(t, c.UpdateHolder(0, "holder_name", "A"))
	require.NoError(t, c.UpdateHolder(0, "holder_phone", "1"))
	require.NoError(t, c.UpdateHolder(1, "holder_name", "B"))
	require.NoError(t, c.UpdateHolder(1, "holder_phone", "2"))
	return c
}

func okOrder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"order_id": 55}`))
}

func TestCheckoutRequiresAuth(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	c := f.readyCart(t)

	_, err := f.services.Checkout.Checkout(context.Background(), "", c.ID())
	assert.ErrorIs(t, err, errs.ErrAuthRequired)
	assert.Zero(t, f.requests.Load())
}

func TestCheckoutPreconditionsIssueNoNetworkCall(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok", WalletBalance: 1000, BalanceKnown: true})

	empty := f.carts.Open(10)
	gen := empty.BeginLoad(10)
	require.True(t, empty.CommitEvent(gen, models.Event{ID: 10, TicketCategories: []models.TicketCategory{
		{ID: 1, Name: "Standard", Price: models.Number(100), QuantityAvailable: 10},
	}}))

	_, err := f.services.Checkout.Checkout(context.Background(), "tok", empty.ID())
	var pre *errs.PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, errs.ReasonEmptySelection, pre.Reason)

	require.NoError(t, empty.SetQuantity(1, 1))
	_, err = f.services.Checkout.Checkout(context.Background(), "tok", empty.ID())
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, errs.ReasonMissingHolderInfo, pre.Reason)

	assert.Zero(t, f.requests.Load())
}

func TestCheckoutInsufficientFunds(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok", WalletBalance: 150, BalanceKnown: true})
	c := f.readyCart(t)

	_, err := f.services.Checkout.Checkout(context.Background(), "tok", c.ID())
	var pre *errs.PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, errs.ReasonInsufficientFunds, pre.Reason)
	assert.Zero(t, f.requests.Load())
}

func TestCheckoutUnknownBalanceProceeds(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok"})
	c := f.readyCart(t)

	_, err := f.services.Checkout.Checkout(context.Background(), "tok", c.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.requests.Load())
}

func TestCheckoutSuccessDebitsAndDropsCart(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok", WalletBalance: 1000, BalanceKnown: true})
	c := f.readyCart(t)

	body, err := f.services.Checkout.Checkout(context.Background(), "tok", c.ID())
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id": 55}`, string(body))

	user, ok := f.sessions.Current(context.Background(), "tok")
	require.True(t, ok)
	assert.Equal(t, 800.0, user.WalletBalance)
	assert.True(t, user.BalancePending)

	_, ok = f.carts.Get(c.ID())
	assert.False(t, ok)
}

func TestCheckoutExpiredTokenClearsSession(t *testing.T) {
	f := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Unauthenticated"}`))
	})
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok", WalletBalance: 1000, BalanceKnown: true})
	c := f.readyCart(t)

	_, err := f.services.Checkout.Checkout(context.Background(), "tok", c.ID())
	assert.ErrorIs(t, err, errs.ErrSessionExpired)

	_, ok := f.sessions.Current(context.Background(), "tok")
	assert.False(t, ok)

	// The cart survives a failed checkout.
	_, ok = f.carts.Get(c.ID())
	assert.True(t, ok)
}

func TestCheckoutUnknownCart(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok"})

	_, err := f.services.Checkout.Checkout(context.Background(), "tok", "no-such-cart")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDepositValidatesAmountLocally(t *testing.T) {
	f := newCheckoutFixture(t, okOrder)
	f.login(t, models.User{ID: 1, Name: "A", Token: "tok"})

	for _, amount := range []float64{0, -50} {
		_, err := f.services.Wallet.Deposit(context.Background(), "tok", amount)
		var pre *errs.PreconditionError
		require.True(t, errors.As(err, &pre))
		assert.Equal(t, errs.ReasonInvalidAmount, pre.Reason)
	}
	assert.Zero(t, f.requests.Load())
}

func TestTicketStatusFilter(t *testing.T) {
	f := newCheckoutFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": 1, "availability_status": "active"},
			{"id": 2, "availability_status": "used"},
			{"id": 3, "availability_status": "cancelled"}
		]}`))
	})

	page, err := f.services.Tickets.List(context.Background(), "tok", "used")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Data[0].ID)

	all, err := f.services.Tickets.List(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)

	unknown, err := f.services.Tickets.List(context.Background(), "tok", "bogus")
	require.NoError(t, err)
	assert.Len(t, unknown.Data, 3)
}
