package normalize

import (
	"encoding/json"
	"strings"

	"tazkara/internal/models"
)

const unknownVenue = "Venue details not provided"

// RawTicket covers the competing key names purchased tickets arrive under.
type RawTicket struct {
	ID            int64                  `json:"id"`
	EventID       int64                  `json:"event_id"`
	OrderID       int64                  `json:"order_id"`
	TicketNumber  string                 `json:"ticket_number"`
	EventName     string                 `json:"event_name"`
	EventTitle    string                 `json:"event_title"`
	EventDate     string                 `json:"event_date"`
	EventLocation string                 `json:"event_location"`
	EventImage    string                 `json:"event_image"`
	QRCodeSVG     string                 `json:"qr_code_svg"`
	QRCode        string                 `json:"qr_code"`
	Status        string                 `json:"availability_status"`
	HolderName    string                 `json:"holder_name"`
	HolderPhone   string                 `json:"holder_phone"`
	IsValid       models.FlexibleBool    `json:"is_valid"`
	CreatedAt     string                 `json:"created_at"`
	PurchasedAt   string                 `json:"purchased_at"`
	Category      *models.TicketCategory `json:"ticket_category"`
}

// Ticket maps one raw purchased-ticket record to the canonical shape.
func Ticket(raw RawTicket) models.PurchasedTicket {
	date := firstNonEmpty(raw.EventDate, categorySaleEnd(raw.Category), raw.CreatedAt, TBD)

	return models.PurchasedTicket{
		ID:                 raw.ID,
		EventID:            raw.EventID,
		OrderID:            raw.OrderID,
		TicketNumber:       raw.TicketNumber,
		EventTitle:         firstNonEmpty(raw.EventName, raw.EventTitle, DefaultTitle),
		EventDate:          date,
		EventLocation:      firstNonEmpty(raw.EventLocation, unknownVenue),
		EventImage:         firstNonEmpty(raw.EventImage, PlaceholderImage),
		QRCode:             firstNonEmpty(raw.QRCodeSVG, raw.QRCode),
		IsValid:            raw.IsValid.Bool(),
		AvailabilityStatus: ticketStatus(raw.Status),
		HolderName:         raw.HolderName,
		HolderPhone:        raw.HolderPhone,
		PurchasedAt:        firstNonEmpty(raw.PurchasedAt, raw.CreatedAt),
		TicketCategory:     raw.Category,
	}
}

// TicketsPage decodes a my-tickets response and always returns a fully
// populated pagination envelope, whatever the upstream omitted. A bare array
// body is accepted too.
func TicketsPage(data []byte) (models.PaginatedTickets, error) {
	var envelope struct {
		Data  []RawTicket             `json:"data"`
		Links *models.PaginationLinks `json:"links"`
		Meta  *models.PaginationMeta  `json:"meta"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		var raws []RawTicket
		if err2 := json.Unmarshal(data, &raws); err2 != nil {
			return models.PaginatedTickets{}, err
		}
		envelope.Data = raws
	}

	tickets := make([]models.PurchasedTicket, len(envelope.Data))
	for i, raw := range envelope.Data {
		tickets[i] = Ticket(raw)
	}

	page := models.PaginatedTickets{Data: tickets}
	if envelope.Links != nil {
		page.Links = *envelope.Links
	}
	if envelope.Meta != nil {
		page.Meta = *envelope.Meta
	} else {
		page.Meta = models.PaginationMeta{
			CurrentPage: 1,
			From:        1,
			LastPage:    1,
			PerPage:     10,
		}
	}
	if page.Meta.Links == nil {
		page.Meta.Links = []models.PageLink{}
	}
	return page, nil
}

// ticketStatus folds the backend's status spellings into the tri-state the
// ticket wall filters on.
func ticketStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "used":
		return models.TicketUsed
	case "cancelled", "canceled", "void":
		return models.TicketCancelled
	default:
		return models.TicketAvailable
	}
}

func categorySaleEnd(cat *models.TicketCategory) string {
	if cat == nil {
		return ""
	}
	return cat.SaleEndDate
}
