package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleBool parses booleans that the upstream may send as bool, number or
// string ("1", "true", "yes").
type FlexibleBool bool

func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	str := strings.Trim(strings.TrimSpace(string(data)), `"`)

	switch strings.ToLower(str) {
	case "true", "1", "yes", "on":
		*fb = true
	case "false", "0", "no", "off", "", "null":
		*fb = false
	default:
		return fmt.Errorf("invalid boolean value: %s", str)
	}
	return nil
}

func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// FlexibleNumber parses numbers that may arrive as JSON numbers or as strings
// ("1234.50", "1,500"). A value that cannot be parsed is recorded as invalid
// instead of failing the whole document, so one junk price cannot take down a
// list response.
type FlexibleNumber struct {
	Value float64
	Valid bool
}

func (fn *FlexibleNumber) UnmarshalJSON(data []byte) error {
	str := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if str == "" || str == "null" {
		*fn = FlexibleNumber{}
		return nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(str, ",", ""), 64)
	if err != nil {
		*fn = FlexibleNumber{}
		return nil
	}

	*fn = FlexibleNumber{Value: v, Valid: true}
	return nil
}

func (fn FlexibleNumber) MarshalJSON() ([]byte, error) {
	if !fn.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(fn.Value)
}

func (fn FlexibleNumber) Float() float64 {
	return fn.Value
}

func Number(v float64) FlexibleNumber {
	return FlexibleNumber{Value: v, Valid: true}
}

// User is the authenticated session record. A user without a token is
// treated as anonymous regardless of the other fields.
type User struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Token         string  `json:"token,omitempty"`
	WalletBalance float64 `json:"wallet_balance"`
	// BalanceKnown is false until the balance has been fetched at least once.
	BalanceKnown bool `json:"balance_known"`
	// BalancePending marks an optimistic local debit that has not yet been
	// confirmed by an authoritative wallet fetch.
	BalancePending bool `json:"balance_pending,omitempty"`
}

func (u *User) Authenticated() bool {
	return u != nil && u.Token != ""
}

// Event is the canonical, display-ready event shape. Venue and category are
// always plain strings here; the normalization layer resolves the upstream's
// object-or-string ambiguity before an Event is built.
type Event struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Date             string           `json:"date"`
	EndDate          string           `json:"end_date,omitempty"`
	Venue            string           `json:"venue"`
	Location         string           `json:"location"`
	Category         string           `json:"category"`
	Image            string           `json:"image"`
	Price            string           `json:"price"`
	Featured         bool             `json:"featured"`
	Description      string           `json:"description,omitempty"`
	TicketCategories []TicketCategory `json:"ticket_categories,omitempty"`
}

type TicketCategory struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Price             FlexibleNumber `json:"price"`
	IsFree            FlexibleBool   `json:"is_free"`
	Details           string         `json:"details,omitempty"`
	SaleStartDate     string         `json:"sale_start_date,omitempty"`
	SaleEndDate       string         `json:"sale_end_date,omitempty"`
	QuantityAvailable int            `json:"quantity_available"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

type Banner struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// Ticket availability tri-state assigned by the backend.
const (
	TicketAvailable = "available"
	TicketUsed      = "used"
	TicketCancelled = "cancelled"
)

// PurchasedTicket is a ticket the user already owns, as rendered on the
// ticket wall. Immutable from this side except for the filter bucket it
// falls into.
type PurchasedTicket struct {
	ID                 int64           `json:"id"`
	EventID            int64           `json:"event_id"`
	OrderID            int64           `json:"order_id"`
	TicketNumber       string          `json:"ticket_number"`
	EventTitle         string          `json:"event_title"`
	EventDate          string          `json:"event_date"`
	EventLocation      string          `json:"event_location"`
	EventImage         string          `json:"event_image"`
	QRCode             string          `json:"qr_code"`
	IsValid            bool            `json:"is_valid"`
	AvailabilityStatus string          `json:"availability_status"`
	HolderName         string          `json:"holder_name"`
	HolderPhone        string          `json:"holder_phone"`
	PurchasedAt        string          `json:"purchased_at,omitempty"`
	TicketCategory     *TicketCategory `json:"ticket_category,omitempty"`
}

// OrderTicket is one ticket line of an outbound order.
type OrderTicket struct {
	TicketCategoryID int64  `json:"ticket_category_id"`
	HolderName       string `json:"holder_name"`
	HolderPhone      string `json:"holder_phone"`
}

// Order is constructed once at checkout and never mutated afterwards.
type Order struct {
	EventID int64         `json:"event_id" binding:"required"`
	Tickets []OrderTicket `json:"tickets" binding:"required"`
}

type Transaction struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Amount    FlexibleNumber `json:"amount"`
	CreatedAt string         `json:"created_at,omitempty"`
}

type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

type PaginationLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PaginationMeta struct {
	CurrentPage int        `json:"current_page"`
	From        int        `json:"from"`
	LastPage    int        `json:"last_page"`
	Links       []PageLink `json:"links"`
	Path        string     `json:"path"`
	PerPage     int        `json:"per_page"`
	To          int        `json:"to"`
	Total       int        `json:"total"`
}

// PaginatedTickets is the envelope returned by the my-tickets endpoint. The
// envelope is always fully populated even when the upstream omits pagination
// metadata.
type PaginatedTickets struct {
	Data  []PurchasedTicket `json:"data"`
	Links PaginationLinks   `json:"links"`
	Meta  PaginationMeta    `json:"meta"`
}
