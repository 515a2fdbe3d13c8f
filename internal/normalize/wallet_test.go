package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletBalanceShapes(t *testing.T) {
	cases := map[string]float64{
		`1500`:                                     1500,
		`"1234.50"`:                                1234.5,
		`{"balance": 200}`:                         200,
		`{"wallet_balance": "3,000"}`:              3000,
		`{"data": {"wallet_balance": "1234.50"}}`:  1234.5,
		`{"something_else": true}`:                 0,
		`{}`:                                       0,
	}

	for body, want := range cases {
		assert.Equal(t, want, WalletBalance([]byte(body)), body)
	}
}

func TestTransactionsShapes(t *testing.T) {
	bare := Transactions([]byte(`[{"id": 1, "type": "deposit", "amount": "500"}]`))
	require.Len(t, bare, 1)
	assert.Equal(t, 500.0, bare[0].Amount.Float())

	wrapped := Transactions([]byte(`{"data": [{"id": 2, "type": "purchase", "amount": 750}]}`))
	require.Len(t, wrapped, 1)
	assert.Equal(t, int64(2), wrapped[0].ID)

	assert.Empty(t, Transactions([]byte(`null`)))
	assert.Empty(t, Transactions([]byte(`"garbage"`)))
	assert.NotNil(t, Transactions([]byte(`"garbage"`)))
}

func TestTicketsPageEnvelopeDefaulting(t *testing.T) {
	page, err := TicketsPage([]byte(`{"data": [{"id": 1, "event_name": "Show"}]}`))
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Show", page.Data[0].EventTitle)
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.Equal(t, 10, page.Meta.PerPage)
	assert.NotNil(t, page.Meta.Links)
}

func TestTicketsPageBareArray(t *testing.T) {
	page, err := TicketsPage([]byte(`[{"id": 1}, {"id": 2}]`))
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
}

func TestTicketFieldResolution(t *testing.T) {
	page, err := TicketsPage([]byte(`{"data": [{
		"id": 4,
		"event_title": "Fallback Title",
		"qr_code_svg": "<svg/>",
		"qr_code": "ignored",
		"availability_status": "Active",
		"created_at": "2026-05-01"
	}]}`))
	require.NoError(t, err)

	tk := page.Data[0]
	assert.Equal(t, "Fallback Title", tk.EventTitle)
	assert.Equal(t, "<svg/>", tk.QRCode)
	assert.Equal(t, "available", tk.AvailabilityStatus)
	assert.Equal(t, "2026-05-01", tk.EventDate)
	assert.Equal(t, "Venue details not provided", tk.EventLocation)
}

func TestTicketStatusFolding(t *testing.T) {
	cases := map[string]string{
		"used":      "used",
		"USED":      "used",
		"cancelled": "cancelled",
		"canceled":  "cancelled",
		"void":      "cancelled",
		"active":    "available",
		"":          "available",
	}
	for in, want := range cases {
		assert.Equal(t, want, ticketStatus(in), in)
	}
}
