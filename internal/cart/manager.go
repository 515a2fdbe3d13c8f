package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const cartLifetime = 2 * time.Hour

// Manager tracks open carts by id. Carts are in-process only; an abandoned
// cart simply ages out.
type Manager struct {
	mu       sync.RWMutex
	carts    map[string]*entry
	lifetime time.Duration
	now      func() time.Time
}

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

func NewManager() *Manager {
	return &Manager{
		carts:    make(map[string]*entry),
		lifetime: cartLifetime,
		now:      time.Now,
	}
}

func (m *Manager) Open(eventID int64) *Cart {
	c := newCart(uuid.New().String(), eventID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.carts[c.id] = &entry{cart: c, lastSeen: m.now()}
	return c
}

func (m *Manager) Get(id string) (*Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.carts[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.cart, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
}

func (m *Manager) sweepLocked() {
	cutoff := m.now().Add(-m.lifetime)
	for id, e := range m.carts {
		if e.lastSeen.Before(cutoff) {
			delete(m.carts, id)
		}
	}
}
