// Package cart holds the in-progress ticket selection for one event page
// visit: the per-category quantities, the derived ticket-holder records with
// user-entered names and phones, and the running total.
package cart

import (
	"encoding/json"
	"strings"
	"sync"

	errs "tazkara/internal/errors"
	"tazkara/internal/models"
)

// Holder is one ticket unit awaiting an attendee's details. Category name
// and unit price are snapshotted when the slot is created, so a price change
// on the source data cannot silently alter an in-progress cart.
type Holder struct {
	TicketCategoryID   int64   `json:"ticket_category_id"`
	TicketCategoryName string  `json:"ticket_category_name"`
	UnitPrice          float64 `json:"ticket_price"`
	HolderName         string  `json:"holder_name"`
	HolderPhone        string  `json:"holder_phone"`
}

// Cart is safe for concurrent use; every operation takes the cart lock.
type Cart struct {
	mu sync.Mutex

	id      string
	eventID int64
	event   *models.Event

	// generation guards against a stale event fetch committing over a newer
	// one; see BeginLoad/CommitEvent.
	generation uint64

	order    []int64 // category ids in first-selection order
	selected map[int64]int
	holders  []Holder
}

func newCart(id string, eventID int64) *Cart {
	return &Cart{
		id:       id,
		eventID:  eventID,
		selected: make(map[int64]int),
	}
}

func (c *Cart) ID() string { return c.id }

func (c *Cart) EventID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventID
}

// BeginLoad starts (re)loading the cart's event and returns the generation
// the caller must present to CommitEvent. A later BeginLoad invalidates all
// earlier generations.
func (c *Cart) BeginLoad(eventID int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.eventID = eventID
	return c.generation
}

// CommitEvent installs a fetched event if gen is still current. A stale
// commit is refused so a slow response for a previous event id cannot
// overwrite the state of a newer request.
func (c *Cart) CommitEvent(gen uint64, event models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.event = &event
	c.eventID = event.ID
	return true
}

func (c *Cart) Event() (models.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.event == nil {
		return models.Event{}, false
	}
	return *c.event, true
}

// SetQuantity clamps qty to [0, available] for the category and rebuilds the
// holder list. Slots for every category are reused in order before blanks
// are appended, so names and phones already entered survive quantity changes
// on any category; reducing a quantity drops slots from the end only.
func (c *Cart) SetQuantity(categoryID int64, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, ok := c.findCategory(categoryID)
	if !ok {
		return errs.ErrNotFound
	}

	if qty < 0 {
		qty = 0
	}
	if qty > cat.QuantityAvailable {
		qty = cat.QuantityAvailable
	}

	if _, tracked := c.selected[categoryID]; !tracked && qty > 0 {
		c.order = append(c.order, categoryID)
	}
	if qty == 0 {
		delete(c.selected, categoryID)
		c.dropFromOrder(categoryID)
	} else {
		c.selected[categoryID] = qty
	}

	c.rebuildHolders()
	return nil
}

func (c *Cart) rebuildHolders() {
	existing := make(map[int64][]Holder)
	for _, h := range c.holders {
		existing[h.TicketCategoryID] = append(existing[h.TicketCategoryID], h)
	}

	var rebuilt []Holder
	for _, catID := range c.order {
		qty := c.selected[catID]
		cat, _ := c.findCategory(catID)
		for i := 0; i < qty; i++ {
			if prev := existing[catID]; i < len(prev) {
				rebuilt = append(rebuilt, prev[i])
				continue
			}
			rebuilt = append(rebuilt, Holder{
				TicketCategoryID:   catID,
				TicketCategoryName: cat.Name,
				UnitPrice:          cat.Price.Float(),
			})
		}
	}
	c.holders = rebuilt
}

// UpdateHolder mutates a single field of one holder record.
func (c *Cart) UpdateHolder(index int, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.holders) {
		return errs.ErrNotFound
	}

	switch field {
	case "holder_name":
		c.holders[index].HolderName = value
	case "holder_phone":
		c.holders[index].HolderPhone = value
	default:
		return &errs.ValidationError{Op: "cart.update_holder", Reason: "field must be holder_name or holder_phone"}
	}
	return nil
}

// Total recomputes the price from the holder snapshots, never from the
// category list.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Cart) totalLocked() float64 {
	var total float64
	for _, h := range c.holders {
		total += h.UnitPrice
	}
	return total
}

// Validate checks the checkout preconditions that belong to the cart itself.
func (c *Cart) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.holders) == 0 {
		return &errs.PreconditionError{
			Reason:  errs.ReasonEmptySelection,
			Message: "no tickets selected",
		}
	}
	for _, h := range c.holders {
		if strings.TrimSpace(h.HolderName) == "" || strings.TrimSpace(h.HolderPhone) == "" {
			return &errs.PreconditionError{
				Reason:  errs.ReasonMissingHolderInfo,
				Message: "every ticket needs a holder name and phone",
			}
		}
	}
	return nil
}

// BuildOrder snapshots the cart into an outbound order. The order is never
// mutated after this point.
func (c *Cart) BuildOrder() models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	tickets := make([]models.OrderTicket, len(c.holders))
	for i, h := range c.holders {
		tickets[i] = models.OrderTicket{
			TicketCategoryID: h.TicketCategoryID,
			HolderName:       h.HolderName,
			HolderPhone:      h.HolderPhone,
		}
	}
	return models.Order{EventID: c.eventID, Tickets: tickets}
}

// View is the JSON snapshot served to the client.
type View struct {
	ID        string        `json:"id"`
	EventID   int64         `json:"event_id"`
	Event     *models.Event `json:"event,omitempty"`
	Selected  map[int64]int `json:"selected"`
	Holders   []Holder      `json:"holders"`
	Total     float64       `json:"total"`
	TotalText string        `json:"total_text"`
}

func (c *Cart) Snapshot(formatPrice func(float64) string) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := make(map[int64]int, len(c.selected))
	for k, v := range c.selected {
		selected[k] = v
	}
	holders := make([]Holder, len(c.holders))
	copy(holders, c.holders)

	total := c.totalLocked()
	view := View{
		ID:       c.id,
		EventID:  c.eventID,
		Event:    c.event,
		Selected: selected,
		Holders:  holders,
		Total:    total,
	}
	if formatPrice != nil {
		view.TotalText = formatPrice(total)
	}
	return view
}

func (c *Cart) findCategory(categoryID int64) (models.TicketCategory, bool) {
	if c.event == nil {
		return models.TicketCategory{}, false
	}
	for _, cat := range c.event.TicketCategories {
		if cat.ID == categoryID {
			return cat, true
		}
	}
	return models.TicketCategory{}, false
}

func (c *Cart) dropFromOrder(categoryID int64) {
	for i, id := range c.order {
		if id == categoryID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// MarshalJSON lets a bare cart render as its view without a price formatter.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot(nil))
}
