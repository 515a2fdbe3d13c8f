package sample

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"tazkara/internal/models"
)

// Signing secret for sample QR payloads only; real tickets carry QR markup
// issued by the backend.
const qrSecret = "tazkara-sample-tickets"

// qrPayload builds the scannable string: eventID|ticketNumber|signature.
func qrPayload(eventID int64, ticketNumber string) string {
	data := fmt.Sprintf("%d|%s", eventID, ticketNumber)

	h := hmac.New(sha256.New, []byte(qrSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// qrMarkup renders the payload as inline <img> markup with a data URI, the
// same kind of inline QR markup the backend embeds in live tickets.
func qrMarkup(eventID int64, ticketNumber string) string {
	png, err := qrcode.Encode(qrPayload(eventID, ticketNumber), qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return fmt.Sprintf(`<img src="%s" alt="ticket %s"/>`, uri, ticketNumber)
}

func buildTickets() []models.PurchasedTicket {
	ticket := func(id, eventID, orderID int64, number, title, date, status, holder, phone string, valid bool, cat models.TicketCategory) models.PurchasedTicket {
		return models.PurchasedTicket{
			ID:                 id,
			EventID:            eventID,
			OrderID:            orderID,
			TicketNumber:       number,
			EventTitle:         title,
			EventDate:          date,
			EventLocation:      "Venue details not provided",
			EventImage:         PlaceholderImage,
			QRCode:             qrMarkup(eventID, number),
			IsValid:            valid,
			AvailabilityStatus: status,
			HolderName:         holder,
			HolderPhone:        phone,
			PurchasedAt:        "2024-01-01T00:00:00Z",
			TicketCategory:     &cat,
		}
	}

	return []models.PurchasedTicket{
		ticket(1, 1, 1, "TICKET-001", "Tech Conference 2024", "2024-03-15", models.TicketAvailable,
			"John Doe", "+1234567890", true,
			models.TicketCategory{ID: 1, Name: "Early Bird", Price: models.Number(299.99), QuantityAvailable: 100}),
		ticket(2, 2, 2, "TICKET-002", "Summer Music Festival", "2024-06-15", models.TicketAvailable,
			"Jane Smith", "+1987654321", true,
			models.TicketCategory{ID: 2, Name: "General Admission", Price: models.Number(199.99), QuantityAvailable: 1000}),
		ticket(3, 3, 3, "TICKET-003", "Baghdad Comedy Festival", "2024-05-12", models.TicketAvailable,
			"John Doe", "+1234567890", true,
			models.TicketCategory{ID: 4, Name: "Standard Ticket", Price: models.Number(150), QuantityAvailable: 200}),
		ticket(4, 4, 4, "TICKET-004", "Swan Lake Ballet", "2024-06-03", models.TicketUsed,
			"John Doe", "+1234567890", false,
			models.TicketCategory{ID: 6, Name: "Silver", Price: models.Number(250), QuantityAvailable: 150}),
		ticket(5, 2, 5, "TICKET-005", "Summer Music Festival", "2024-06-15", models.TicketCancelled,
			"Jane Smith", "+1987654321", false,
			models.TicketCategory{ID: 3, Name: "VIP", Price: models.Number(499.99), QuantityAvailable: 100}),
	}
}
