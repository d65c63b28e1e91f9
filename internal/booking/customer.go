package booking

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces ticket identifiers. The production generator is
// UUID-backed; tests swap in a sequential one.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator issues random UUIDs as ticket IDs. A canceled ticket's ID
// is never reissued.
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string { return uuid.New().String() }

// InMemoryCustomer is the default Customer: a traveler with a running
// balance and the set of tickets currently held. Safe for concurrent use.
type InMemoryCustomer struct {
	id   string
	name string

	mu      sync.Mutex
	balance float64
	tickets map[string]*Ticket
}

func NewCustomer(id, name string) *InMemoryCustomer {
	return &InMemoryCustomer{
		id:      id,
		name:    name,
		tickets: make(map[string]*Ticket),
	}
}

func (c *InMemoryCustomer) ID() string   { return c.id }
func (c *InMemoryCustomer) Name() string { return c.name }

func (c *InMemoryCustomer) AddTicket(t *Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickets[t.ID()] = t
}

func (c *InMemoryCustomer) RemoveTicket(t *Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tickets, t.ID())
}

// Tickets returns a snapshot of the customer's held tickets.
func (c *InMemoryCustomer) Tickets() []*Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Ticket, 0, len(c.tickets))
	for _, t := range c.tickets {
		out = append(out, t)
	}
	return out
}

func (c *InMemoryCustomer) Balance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

func (c *InMemoryCustomer) SetBalance(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = v
}

// AdjustBalance applies a delta in one critical section, so concurrent
// purchases against the same customer never lose an update.
func (c *InMemoryCustomer) AdjustBalance(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance += delta
}
