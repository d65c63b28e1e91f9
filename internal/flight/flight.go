package flight

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/crew"
	"github.com/cocopuff2234/airline-ops/internal/fleet"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
)

var (
	ErrNilCrew            = errors.New("crew member must not be nil")
	ErrCrewUnavailable    = errors.New("crew member is not available for duty")
	ErrWrongRank          = errors.New("pilot has the wrong rank for this seat")
	ErrNotRated           = errors.New("crew member lacks a rating for this aircraft type")
	ErrDuplicateAttendant = errors.New("attendant already assigned to this flight")
	ErrBadSchedule        = errors.New("arrival time must not be before departure time")
	ErrBadDelay           = errors.New("delay must be a positive number of minutes")
	ErrNilPlane           = errors.New("flight requires a plane")
)

// Status is the coarse flight state derived from the clock.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusDeparted  Status = "Departed"
)

// Notifier receives structured flight events. Subscribers (logging, the
// websocket hub) decide how to surface them; the flight itself never
// formats user-facing text.
type Notifier interface {
	OnGateChanged(flightNumber, oldGate, newGate string)
	OnDelayed(flightNumber string, minutes int, newDeparture, newArrival time.Time)
}

// Flight is the aggregate tying together schedule, aircraft, seat
// inventory and the crew roster. Identity is (number, scheduled
// departure). All mutable state is guarded by one mutex per flight.
type Flight struct {
	number       string
	airline      string
	origin       string
	destination  string
	aircraftType fleet.AircraftType
	plane        *inventory.Plane

	mu            sync.Mutex
	departure     time.Time
	arrival       time.Time
	gate          string
	captain       *crew.Pilot
	firstOfficer  *crew.Pilot
	attendants    []*crew.CabinCrew
	minAttendants int
	notifiers     []Notifier
}

// New validates the schedule and builds a flight. A minimum attendant
// count below one is raised to one.
func New(number, airline, origin, destination string, departure, arrival time.Time, plane *inventory.Plane, minAttendants int) (*Flight, error) {
	if plane == nil {
		return nil, ErrNilPlane
	}
	if arrival.Before(departure) {
		return nil, fmt.Errorf("%w: departs %s, arrives %s", ErrBadSchedule, departure, arrival)
	}
	if minAttendants < 1 {
		minAttendants = 1
	}
	return &Flight{
		number:        number,
		airline:       airline,
		origin:        origin,
		destination:   destination,
		aircraftType:  plane.Type(),
		plane:         plane,
		departure:     departure,
		arrival:       arrival,
		minAttendants: minAttendants,
	}, nil
}

func (f *Flight) Number() string                   { return f.number }
func (f *Flight) Airline() string                  { return f.airline }
func (f *Flight) Origin() string                   { return f.origin }
func (f *Flight) Destination() string              { return f.destination }
func (f *Flight) AircraftType() fleet.AircraftType { return f.aircraftType }
func (f *Flight) Plane() *inventory.Plane          { return f.plane }

func (f *Flight) Departure() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.departure
}

func (f *Flight) Arrival() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.arrival
}

// Duration is the scheduled block time.
func (f *Flight) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.arrival.Sub(f.departure)
}

// Gate returns the assigned gate, empty when unassigned.
func (f *Flight) Gate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gate
}

func (f *Flight) MinAttendants() int { return f.minAttendants }

// CurrentStatus derives the flight state from the given clock reading.
func (f *Flight) CurrentStatus(now time.Time) Status {
	if now.After(f.Departure()) {
		return StatusDeparted
	}
	return StatusScheduled
}

// Subscribe registers a notifier for this flight's events.
func (f *Flight) Subscribe(n Notifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifiers = append(f.notifiers, n)
}

// AssignCaptain seats a pilot in the left seat. A later assignment
// overwrites an earlier one.
func (f *Flight) AssignCaptain(p *crew.Pilot) error {
	if err := f.checkPilot(p, crew.RankCaptain); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captain = p
	return nil
}

// AssignFirstOfficer seats a pilot in the right seat. A later assignment
// overwrites an earlier one.
func (f *Flight) AssignFirstOfficer(p *crew.Pilot) error {
	if err := f.checkPilot(p, crew.RankFirstOfficer); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.firstOfficer = p
	return nil
}

func (f *Flight) checkPilot(p *crew.Pilot, want crew.Rank) error {
	if p == nil {
		return ErrNilCrew
	}
	if p.Status() != crew.StatusAvailable {
		return fmt.Errorf("%w: %s is %s", ErrCrewUnavailable, p.EmployeeID(), p.Status())
	}
	if p.Rank() != want {
		return fmt.Errorf("%w: %s is %s, want %s", ErrWrongRank, p.EmployeeID(), p.Rank(), want)
	}
	if !p.CanOperate(f.aircraftType) {
		return fmt.Errorf("%w: %s on %s", ErrNotRated, p.EmployeeID(), f.aircraftType.Code)
	}
	return nil
}

// AddAttendant adds a cabin crew member to the roster. The same member
// cannot be added twice.
func (f *Flight) AddAttendant(c *crew.CabinCrew) error {
	if c == nil {
		return ErrNilCrew
	}
	if c.Status() != crew.StatusAvailable {
		return fmt.Errorf("%w: %s is %s", ErrCrewUnavailable, c.EmployeeID(), c.Status())
	}
	if !c.CanOperate(f.aircraftType) {
		return fmt.Errorf("%w: %s on %s", ErrNotRated, c.EmployeeID(), f.aircraftType.Code)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.attendants {
		if existing.EmployeeID() == c.EmployeeID() {
			return fmt.Errorf("%w: %s", ErrDuplicateAttendant, c.EmployeeID())
		}
	}
	f.attendants = append(f.attendants, c)
	return nil
}

// RemoveAttendant takes a member off the roster, reporting whether they
// were on it.
func (f *Flight) RemoveAttendant(c *crew.CabinCrew) bool {
	if c == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.attendants {
		if existing.EmployeeID() == c.EmployeeID() {
			f.attendants = append(f.attendants[:i], f.attendants[i+1:]...)
			return true
		}
	}
	return false
}

// Captain returns the assigned captain, nil when the seat is open.
func (f *Flight) Captain() *crew.Pilot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captain
}

func (f *Flight) FirstOfficer() *crew.Pilot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.firstOfficer
}

// Attendants returns a snapshot of the cabin roster.
func (f *Flight) Attendants() []*crew.CabinCrew {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*crew.CabinCrew, len(f.attendants))
	copy(out, f.attendants)
	return out
}

// HasRequiredCrew reports whether both pilot seats are filled and the
// cabin roster meets the minimum. Computed fresh on every call; this is
// the single gate the reservation lifecycle consults.
func (f *Flight) HasRequiredCrew() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captain != nil && f.firstOfficer != nil && len(f.attendants) >= f.minAttendants
}

// DelayBy pushes departure and arrival back by the given number of
// minutes and emits an OnDelayed event.
func (f *Flight) DelayBy(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", ErrBadDelay, minutes)
	}

	f.mu.Lock()
	d := time.Duration(minutes) * time.Minute
	f.departure = f.departure.Add(d)
	f.arrival = f.arrival.Add(d)
	newDep, newArr := f.departure, f.arrival
	notifiers := append([]Notifier(nil), f.notifiers...)
	f.mu.Unlock()

	// Notify outside the lock; subscribers may do I/O.
	for _, n := range notifiers {
		n.OnDelayed(f.number, minutes, newDep, newArr)
	}
	return nil
}

// SetGate records the gate assignment and emits an OnGateChanged event
// when the gate actually changes. The airport's gate scheduler is the
// only intended caller.
func (f *Flight) SetGate(gate string) {
	f.mu.Lock()
	oldGate := f.gate
	f.gate = gate
	notifiers := append([]Notifier(nil), f.notifiers...)
	f.mu.Unlock()

	if oldGate == gate {
		return
	}
	for _, n := range notifiers {
		n.OnGateChanged(f.number, oldGate, gate)
	}
}

// ClearGate removes any gate assignment.
func (f *Flight) ClearGate() {
	f.SetGate("")
}

func (f *Flight) String() string {
	return fmt.Sprintf("%s %s: %s -> %s (%s)", f.airline, f.number, f.origin, f.destination, f.aircraftType.Code)
}
