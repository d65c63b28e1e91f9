package inventory

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cocopuff2234/airline-ops/internal/fleet"
)

var (
	ErrSoldOut          = errors.New("no seats available")
	ErrUnknownFareClass = errors.New("unknown fare class")
	ErrBadCapacity      = errors.New("capacity must be positive")
)

// FareClass partitions a plane's cabin. Each class carries its own seat
// count and price.
type FareClass string

const (
	FareFirst   FareClass = "first"
	FareEconomy FareClass = "economy"
)

// ParseFareClass resolves a free-text fare class, case preserved by callers.
func ParseFareClass(s string) (FareClass, error) {
	switch FareClass(s) {
	case FareFirst, FareEconomy:
		return FareClass(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFareClass, s)
	}
}

// Plane owns the seat inventory for a single flight. All counter mutation
// happens under one mutex so the class/total invariant holds at every
// observable point:
//
//	available == sum(availablePerClass)
//	0 <= availablePerClass[c] <= capacityPerClass[c]
type Plane struct {
	id           string
	aircraftType fleet.AircraftType
	capacity     int

	mu        sync.Mutex
	available int
	classCap  map[FareClass]int
	classFree map[FareClass]int
	prices    map[FareClass]float64
}

// NewPlane builds a plane from a flat seat count. First class gets
// round(capacity * 0.2) seats, economy the remainder; the split is fixed
// for the life of the plane.
func NewPlane(id string, aircraftType fleet.AircraftType, capacity int, firstPrice, economyPrice float64) (*Plane, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, capacity)
	}
	firstCap := int(math.Round(float64(capacity) * 0.2))
	return &Plane{
		id:           id,
		aircraftType: aircraftType,
		capacity:     capacity,
		available:    capacity,
		classCap:     map[FareClass]int{FareFirst: firstCap, FareEconomy: capacity - firstCap},
		classFree:    map[FareClass]int{FareFirst: firstCap, FareEconomy: capacity - firstCap},
		prices:       map[FareClass]float64{FareFirst: firstPrice, FareEconomy: economyPrice},
	}, nil
}

func (p *Plane) ID() string               { return p.id }
func (p *Plane) Type() fleet.AircraftType { return p.aircraftType }
func (p *Plane) Capacity() int            { return p.capacity }

// Operable reports whether the plane may fly. Always true here; a
// maintenance subsystem would override this.
func (p *Plane) Operable() bool { return true }

// Available returns the total free seat count across classes.
func (p *Plane) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// AvailableIn returns the free seat count for one fare class.
func (p *Plane) AvailableIn(class FareClass) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	free, ok := p.classFree[class]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFareClass, class)
	}
	return free, nil
}

// CapacityOf returns the fixed seat capacity of one fare class.
func (p *Plane) CapacityOf(class FareClass) (int, error) {
	cap, ok := p.classCap[class]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFareClass, class)
	}
	return cap, nil
}

// PriceOf returns the per-seat price for a fare class, or 0 and an error
// for an unknown class.
func (p *Plane) PriceOf(class FareClass) (float64, error) {
	price, ok := p.prices[class]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFareClass, class)
	}
	return price, nil
}

// Reserve takes one seat from the given fare class. The class counter and
// the total move together; no caller can observe a partial decrement.
func (p *Plane) Reserve(class FareClass) error {
	return p.ReserveIf(class, nil)
}

// ReserveIf runs check inside the inventory critical section and, only if
// it passes, takes one seat from the given fare class. This lets the
// reservation lifecycle make its crew/operability decision and the seat
// decrement one atomic step. check must not block or perform I/O.
func (p *Plane) ReserveIf(class FareClass, check func() error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	free, ok := p.classFree[class]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFareClass, class)
	}
	if check != nil {
		if err := check(); err != nil {
			return err
		}
	}
	if free <= 0 || p.available <= 0 {
		return fmt.Errorf("%w in %s class on plane %s", ErrSoldOut, class, p.id)
	}
	p.classFree[class] = free - 1
	p.available--
	return nil
}

// Release returns one seat to the given fare class. Counters are clamped
// at their capacities so a stray double release cannot overflow them; the
// reservation lifecycle is the only caller and releases once per ticket.
func (p *Plane) Release(class FareClass) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	free, ok := p.classFree[class]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFareClass, class)
	}
	if free < p.classCap[class] {
		p.classFree[class] = free + 1
	}
	if p.available < p.capacity {
		p.available++
	}
	return nil
}

// SeatCodes generates the plane's seat map: rows filled sequentially,
// letters in catalog order, the final partial row filled from the first
// letter. Same configuration always yields the same ordered sequence.
func (p *Plane) SeatCodes() []string {
	letters := p.aircraftType.SeatLetters
	perRow := p.aircraftType.SeatsPerRow
	if perRow > len(letters) {
		perRow = len(letters)
	}
	if perRow <= 0 {
		return nil
	}

	codes := make([]string, 0, p.capacity)
	for row := 1; len(codes) < p.capacity; row++ {
		for i := 0; i < perRow && len(codes) < p.capacity; i++ {
			codes = append(codes, fmt.Sprintf("%d%c", row, letters[i]))
		}
	}
	return codes
}
