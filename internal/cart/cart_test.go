package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
)

func testEvent() models.Event {
	return models.Event{
		ID:    10,
		Title: "Test Concert",
		TicketCategories: []models.TicketCategory{
			{ID: 1, Name: "Standard", Price: models.Number(100), QuantityAvailable: 50},
			{ID: 2, Name: "VIP", Price: models.Number(50), QuantityAvailable: 3},
		},
	}
}

func loadedCart(t *testing.T) *Cart {
	t.Helper()
	c := newCart("cart-1", 10)
	gen := c.BeginLoad(10)
	require.True(t, c.CommitEvent(gen, testEvent()))
	return c
}

func TestSetQuantityBuildsHoldersInSelectionOrder(t *testing.T) {
	c := loadedCart(t)

	require.NoError(t, c.SetQuantity(1, 2))
	require.NoError(t, c.SetQuantity(2, 1))

	view := c.Snapshot(nil)
	require.Len(t, view.Holders, 3)
	assert.Equal(t, int64(1), view.Holders[0].TicketCategoryID)
	assert.Equal(t, int64(1), view.Holders[1].TicketCategoryID)
	assert.Equal(t, int64(2), view.Holders[2].TicketCategoryID)
	assert.Equal(t, 250.0, c.Total())
}

func TestSetQuantityPreservesEnteredDetails(t *testing.T) {
	c := loadedCart(t)

	require.NoError(t, c.SetQuantity(1, 1))
	require.NoError(t, c.UpdateHolder(0, "holder_name", "Aidar"))
	require.NoError(t, c.UpdateHolder(0, "holder_phone", "+77001112233"))

	// Changing another category must not disturb the first holder.
	require.NoError(t, c.SetQuantity(2, 2))

	view := c.Snapshot(nil)
	require.Len(t, view.Holders, 3)
	assert.Equal(t, "Aidar", view.Holders[0].HolderName)
	assert.Equal(t, "+77001112233", view.Holders[0].HolderPhone)

	// Raising the first category's own quantity keeps the filled slot too.
	require.NoError(t, c.SetQuantity(1, 3))
	view = c.Snapshot(nil)
	assert.Equal(t, "Aidar", view.Holders[0].HolderName)
	assert.Empty(t, view.Holders[1].HolderName)
}

func TestReduceQuantityDropsFromEnd(t *testing.T) {
	c := loadedCart(t)

	require.NoError(t, c.SetQuantity(1, 3))
	require.NoError(t, c.UpdateHolder(0, "holder_name", "First"))
	require.NoError(t, c.UpdateHolder(2, "holder_name", "Third"))

	require.NoError(t, c.SetQuantity(1, 1))

	view := c.Snapshot(nil)
	require.Len(t, view.Holders, 1)
	assert.Equal(t, "First", view.Holders[0].HolderName)
}

func TestSetQuantityClampsToAvailability(t *testing.T) {
	c := loadedCart(t)

	require.NoError(t, c.SetQuantity(2, 99))
	assert.Equal(t, 3, c.Snapshot(nil).Selected[2])

	require.NoError(t, c.SetQuantity(2, -5))
	_, ok := c.Snapshot(nil).Selected[2]
	assert.False(t, ok)
	assert.Empty(t, c.Snapshot(nil).Holders)
}

func TestSetQuantityUnknownCategory(t *testing.T) {
	c := loadedCart(t)
	assert.ErrorIs(t, c.SetQuantity(404, 1), errs.ErrNotFound)
}

func TestUpdateHolderValidation(t *testing.T) {
	c := loadedCart(t)
	require.NoError(t, c.SetQuantity(1, 1))

	assert.ErrorIs(t, c.UpdateHolder(5, "holder_name", "x"), errs.ErrNotFound)

	err := c.UpdateHolder(0, "holder_email", "x")
	var invalid *errs.ValidationError
	assert.True(t, errors.As(err, &invalid))
}

func TestValidatePreconditions(t *testing.T) {
	c := loadedCart(t)

	err := c.Validate()
	var pre *errs.PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, errs.ReasonEmptySelection, pre.Reason)

	require.NoError(t, c.SetQuantity(1, 1))
	require.NoError(t, c.UpdateHolder(0, "holder_name", "  "))
	err = c.Validate()
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, errs.ReasonMissingHolderInfo, pre.Reason)

	require.NoError(t, c.UpdateHolder(0, "holder_name", "Aidar"))
	require.NoError(t, c.UpdateHolder(0, "holder_phone", "+77001112233"))
	assert.NoError(t, c.Validate())
}

func TestHolderPriceSnapshotSurvivesReload(t *testing.T) {
	c := loadedCart(t)
	require.NoError(t, c.SetQuantity(1, 1))

	// The backend raises the price; the already-created slot keeps the old one.
	changed := testEvent()
	changed.TicketCategories[0].Price = models.Number(999)
	gen := c.BeginLoad(10)
	require.True(t, c.CommitEvent(gen, changed))

	assert.Equal(t, 100.0, c.Total())

	// A new slot for the same category snapshots the new price.
	require.NoError(t, c.SetQuantity(1, 2))
	assert.Equal(t, 1099.0, c.Total())
}

func TestStaleEventCommitRefused(t *testing.T) {
	c := loadedCart(t)

	stale := c.BeginLoad(10)
	fresh := c.BeginLoad(11)

	other := testEvent()
	other.ID = 11
	require.True(t, c.CommitEvent(fresh, other))
	assert.False(t, c.CommitEvent(stale, testEvent()))

	event, ok := c.Event()
	require.True(t, ok)
	assert.Equal(t, int64(11), event.ID)
}

func TestBuildOrder(t *testing.T) {
	c := loadedCart(t)
	require.NoError(t, c.SetQuantity(2, 2))
	require.NoError(t, c.UpdateHolder(0, "holder_name", "A"))
	require.NoError(t, c.UpdateHolder(0, "holder_phone", "1"))
	require.NoError(t, c.UpdateHolder(1, "holder_name", "B"))
	require.NoError(t, c.UpdateHolder(1, "holder_phone", "2"))

	order := c.BuildOrder()
	assert.Equal(t, int64(10), order.EventID)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, "A", order.Tickets[0].HolderName)
	assert.Equal(t, int64(2), order.Tickets[1].TicketCategoryID)
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	c := m.Open(10)
	require.NotEmpty(t, c.ID())

	got, ok := m.Get(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)

	m.Delete(c.ID())
	_, ok = m.Get(c.ID())
	assert.False(t, ok)
}
