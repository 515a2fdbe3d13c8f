// Package sample holds the bundled catalog served in degraded mode, when the
// upstream backend is unreachable or answering garbage. Browse endpoints fall
// back to this data so the storefront stays usable; write operations never do.
package sample

import (
	"tazkara/internal/models"
)

// Catalog is an immutable bundle of sample storefront data. Callers get
// copies, never the backing slices.
type Catalog struct {
	events     []models.Event
	categories []models.Category
	banners    []models.Banner
	tickets    []models.PurchasedTicket
}

func NewCatalog() *Catalog {
	c := &Catalog{
		events:     buildEvents(),
		categories: buildCategories(),
		banners:    buildBanners(),
	}
	c.tickets = buildTickets()
	return c
}

func (c *Catalog) Events() []models.Event {
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Catalog) EventByID(id int64) (models.Event, bool) {
	for _, ev := range c.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.Event{}, false
}

// EventsByCategory filters the sample events on the category's sample id.
func (c *Catalog) EventsByCategory(categoryID int64) []models.Event {
	var name string
	for _, cat := range c.categories {
		if cat.ID == categoryID {
			name = cat.Name
			break
		}
	}

	var out []models.Event
	for _, ev := range c.events {
		if ev.Category == name {
			out = append(out, ev)
		}
	}
	return out
}

func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Banners() []models.Banner {
	out := make([]models.Banner, len(c.banners))
	copy(out, c.banners)
	return out
}

// Tickets returns the sample purchased tickets wrapped in a complete
// pagination envelope, matching what the live endpoint yields.
func (c *Catalog) Tickets() models.PaginatedTickets {
	data := make([]models.PurchasedTicket, len(c.tickets))
	copy(data, c.tickets)

	return models.PaginatedTickets{
		Data: data,
		Meta: models.PaginationMeta{
			CurrentPage: 1,
			From:        1,
			LastPage:    1,
			Links:       []models.PageLink{},
			PerPage:     10,
			To:          len(data),
			Total:       len(data),
		},
	}
}

func buildCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Concerts", Slug: "concerts", Description: "Live music performances"},
		{ID: 2, Name: "Sports", Slug: "sports", Description: "Sporting events and competitions"},
		{ID: 3, Name: "Theatre", Slug: "theatre", Description: "Plays, musicals, and performances"},
		{ID: 4, Name: "Comedy", Slug: "comedy", Description: "Stand-up comedy and shows"},
		{ID: 5, Name: "Family", Slug: "family", Description: "Family-friendly events"},
	}
}

func buildBanners() []models.Banner {
	return []models.Banner{
		{ID: 1, Title: "Summer Season On Sale", Image: "/images/banners/summer.jpg", Link: "/events"},
		{ID: 2, Title: "Top Up, Get Going", Image: "/images/banners/wallet.jpg", Link: "/wallet"},
	}
}

func buildEvents() []models.Event {
	return []models.Event{
		{
			ID:          1,
			Title:       "Tech Conference 2024",
			Date:        "2024-03-15",
			Venue:       "Convention Center",
			Location:    "New York",
			Category:    "Conference",
			Image:       "/images/events/tech-conference.jpg",
			Price:       "299.99",
			Featured:    true,
			Description: "Join us for the biggest tech conference of the year",
			TicketCategories: []models.TicketCategory{
				{
					ID:                1,
					Name:              "Early Bird",
					Price:             models.Number(299.99),
					Details:           "Access to all sessions",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-02-01",
					QuantityAvailable: 100,
				},
			},
		},
		{
			ID:          2,
			Title:       "Summer Music Festival",
			Date:        "2024-06-15",
			EndDate:     "2024-06-17",
			Venue:       "Central Park",
			Location:    "New York",
			Category:    "Concerts",
			Image:       "/images/events/music-festival.jpg",
			Price:       "199.99",
			Featured:    true,
			Description: "The biggest music festival of the year",
			TicketCategories: []models.TicketCategory{
				{
					ID:                2,
					Name:              "General Admission",
					Price:             models.Number(199.99),
					Details:           "Access to all stages",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-05-01",
					QuantityAvailable: 1000,
				},
				{
					ID:                3,
					Name:              "VIP",
					Price:             models.Number(499.99),
					Details:           "VIP access with exclusive areas",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-05-01",
					QuantityAvailable: 100,
				},
			},
		},
		{
			ID:          3,
			Title:       "Baghdad Comedy Festival",
			Date:        "May 12-22, 2024",
			Venue:       "Multiple Venues",
			Location:    "Baghdad",
			Category:    "Comedy",
			Image:       PlaceholderImage,
			Price:       "150",
			Description: "The funniest comedians from around the region, a week of laughter.",
			TicketCategories: []models.TicketCategory{
				{
					ID:                4,
					Name:              "Standard Ticket",
					Price:             models.Number(150),
					Details:           "Access to all shows",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-05-01",
					QuantityAvailable: 200,
				},
				{
					ID:                5,
					Name:              "Premium Seating",
					Price:             models.Number(250),
					Details:           "Premium seating with better views",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-05-01",
					QuantityAvailable: 100,
				},
			},
		},
		{
			ID:          4,
			Title:       "Swan Lake Ballet",
			Date:        "June 3-5, 2024",
			Venue:       "National Opera House",
			Location:    "Downtown",
			Category:    "Theatre",
			Image:       PlaceholderImage,
			Price:       "250",
			Description: "The timeless beauty of Tchaikovsky's Swan Lake.",
			TicketCategories: []models.TicketCategory{
				{
					ID:                6,
					Name:              "Silver",
					Price:             models.Number(250),
					Details:           "Standard seating",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-06-01",
					QuantityAvailable: 150,
				},
				{
					ID:                7,
					Name:              "Gold",
					Price:             models.Number(400),
					Details:           "Front section seating",
					SaleStartDate:     "2024-01-01",
					SaleEndDate:       "2024-06-01",
					QuantityAvailable: 60,
				},
			},
		},
	}
}

// PlaceholderImage mirrors the normalization default so sample records look
// the same as normalized live ones.
const PlaceholderImage = "/images/placeholder.jpg"

// Users returns the demo accounts accepted while degraded.
func Users() []models.User {
	return []models.User{
		{ID: 1, Name: "John Doe", Phone: "+1234567890", Token: "sample-token", WalletBalance: 1000, BalanceKnown: true},
		{ID: 2, Name: "Jane Smith", Phone: "+1987654321", Token: "sample-token-2", WalletBalance: 500, BalanceKnown: true},
	}
}
