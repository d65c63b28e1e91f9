package booking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/flight"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
)

var (
	ErrNoCrew           = errors.New("flight does not have the required crew")
	ErrPlaneNotOperable = errors.New("plane is not operable")
	ErrNotPending       = errors.New("only a pending reservation can be purchased")
	ErrAlreadyCanceled  = errors.New("ticket is already canceled")
	ErrCanceled         = errors.New("ticket is canceled")
	ErrNilFlight        = errors.New("ticket requires a flight")
	ErrNilCustomer      = errors.New("ticket requires a customer")
)

// Status is a ticket's place in the reservation lifecycle. The only legal
// paths are PENDING -> CONFIRMED -> CANCELED and PENDING -> CANCELED;
// CANCELED is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Customer is the collaborator holding a traveler's tickets and balance.
// The core calls it as a black box; identity resolution lives elsewhere.
type Customer interface {
	ID() string
	AddTicket(t *Ticket)
	RemoveTicket(t *Ticket)
	Balance() float64
	SetBalance(v float64)
}

// BalanceAdjuster is an optional Customer capability: applying a balance
// delta as one atomic step. Customers that implement it are safe against
// concurrent purchases; the Balance/SetBalance pair is the fallback.
type BalanceAdjuster interface {
	AdjustBalance(delta float64)
}

func adjustBalance(c Customer, delta float64) {
	if a, ok := c.(BalanceAdjuster); ok {
		a.AdjustBalance(delta)
		return
	}
	c.SetBalance(c.Balance() + delta)
}

// Ticket is a reservation for one seat in one fare class on one flight.
// Price is fixed at creation from the plane's fare table and changes only
// through Upgrade. Purchase and Cancel are serialized per ticket.
type Ticket struct {
	id       string
	flight   *flight.Flight
	customer Customer

	mu        sync.Mutex
	fareClass inventory.FareClass
	price     float64
	status    Status
	createdAt time.Time
}

// NewTicket creates a PENDING ticket priced from the plane's fare table.
// No seat is consumed until Purchase succeeds.
func NewTicket(gen IDGenerator, f *flight.Flight, c Customer, class inventory.FareClass) (*Ticket, error) {
	if f == nil {
		return nil, ErrNilFlight
	}
	if c == nil {
		return nil, ErrNilCustomer
	}
	price, err := f.Plane().PriceOf(class)
	if err != nil {
		return nil, err
	}
	return &Ticket{
		id:        gen.NextID(),
		flight:    f,
		customer:  c,
		fareClass: class,
		price:     price,
		status:    StatusPending,
		createdAt: time.Now(),
	}, nil
}

func (t *Ticket) ID() string             { return t.id }
func (t *Ticket) Flight() *flight.Flight { return t.flight }
func (t *Ticket) Customer() Customer     { return t.customer }
func (t *Ticket) CreatedAt() time.Time   { return t.createdAt }

func (t *Ticket) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Ticket) FareClass() inventory.FareClass {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fareClass
}

func (t *Ticket) Price() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.price
}

// Purchase confirms the reservation. Preconditions are checked in order,
// each with its own failure: required crew, an operable plane, then an
// available seat. The crew and operability checks run inside the plane's
// inventory critical section together with the seat decrement, so a
// flight cannot lose its crew between the check and the reservation. On
// any failure nothing changes.
func (t *Ticket) Purchase() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPending {
		return fmt.Errorf("%w: ticket %s is %s", ErrNotPending, t.id, t.status)
	}

	err := t.flight.Plane().ReserveIf(t.fareClass, func() error {
		if !t.flight.HasRequiredCrew() {
			return fmt.Errorf("%w: flight %s", ErrNoCrew, t.flight.Number())
		}
		if !t.flight.Plane().Operable() {
			return fmt.Errorf("%w: plane %s", ErrPlaneNotOperable, t.flight.Plane().ID())
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The seat is held; the purchase can no longer fail.
	t.status = StatusConfirmed
	t.customer.AddTicket(t)
	adjustBalance(t.customer, t.price)
	return nil
}

// Cancel releases the reservation. Canceling an already-canceled ticket
// reports ErrAlreadyCanceled, which callers treat as a no-op rather than
// a failure. A confirmed ticket's seat goes back to the fare class it was
// booked under, keeping the class/total invariant intact.
func (t *Ticket) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusCanceled {
		return fmt.Errorf("%w: ticket %s", ErrAlreadyCanceled, t.id)
	}

	wasConfirmed := t.status == StatusConfirmed
	t.status = StatusCanceled

	if wasConfirmed {
		t.customer.RemoveTicket(t)
		adjustBalance(t.customer, -t.price)
		if err := t.flight.Plane().Release(t.fareClass); err != nil {
			return err
		}
	}
	return nil
}

// Expire cancels the ticket only if it is still pending. The status check
// and the transition share one critical section, so a purchase landing
// concurrently is never reversed: whichever acquires the lock first wins
// and the loser sees the terminal state. It reports whether the cancel
// happened and the status the ticket ended in. A pending ticket holds no
// seat and has charged nothing, so expiring it has no side effects.
func (t *Ticket) Expire() (bool, Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPending {
		return false, t.status
	}
	t.status = StatusCanceled
	return true, StatusCanceled
}

// Upgrade moves the ticket to a new fare class at the given price,
// normally the class's current fare. The new class must have an open
// seat. An upgrade that costs more charges the customer the difference; a
// downgrade never refunds. Class and price change together or not at all.
func (t *Ticket) Upgrade(newClass inventory.FareClass, newPrice float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusCanceled {
		return fmt.Errorf("%w: ticket %s", ErrCanceled, t.id)
	}

	plane := t.flight.Plane()
	if _, err := plane.PriceOf(newClass); err != nil {
		return err
	}
	if newClass == t.fareClass {
		return nil
	}

	if t.status == StatusConfirmed {
		// Move the held seat between class buckets.
		if err := plane.Reserve(newClass); err != nil {
			return err
		}
		if err := plane.Release(t.fareClass); err != nil {
			return err
		}
	} else {
		// Pending: no seat held yet, but the target class must be open.
		free, err := plane.AvailableIn(newClass)
		if err != nil {
			return err
		}
		if free <= 0 {
			return fmt.Errorf("%w in %s class on plane %s", inventory.ErrSoldOut, newClass, plane.ID())
		}
	}

	if newPrice > t.price {
		adjustBalance(t.customer, newPrice-t.price)
	}
	t.fareClass = newClass
	t.price = newPrice
	return nil
}
