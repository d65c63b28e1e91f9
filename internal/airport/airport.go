package airport

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/flight"
)

var (
	ErrUnknownGate     = errors.New("unknown gate")
	ErrGateConflict    = errors.New("gate already claimed in that minute")
	ErrNoGateAvailable = errors.New("no gate available")
	ErrNilFlight       = errors.New("flight must not be nil")
)

// Airport owns a set of gates and the flights scheduled through it. Gate
// assignment scans for conflicts and assigns inside one critical section
// per airport, so two flights can never both claim a free gate.
type Airport struct {
	id        string
	name      string
	terminals []string

	mu      sync.Mutex
	gates   map[string]bool
	flights map[*flight.Flight]bool
}

func New(id, name string, terminals []string, gates []string) *Airport {
	a := &Airport{
		id:        id,
		name:      name,
		terminals: append([]string(nil), terminals...),
		gates:     make(map[string]bool, len(gates)),
		flights:   make(map[*flight.Flight]bool),
	}
	for _, g := range gates {
		a.gates[g] = true
	}
	return a
}

func (a *Airport) ID() string   { return a.id }
func (a *Airport) Name() string { return a.name }

func (a *Airport) Terminals() []string {
	return append([]string(nil), a.terminals...)
}

// Gates returns the gate identifiers in sorted order.
func (a *Airport) Gates() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortedGates()
}

func (a *Airport) sortedGates() []string {
	gates := make([]string, 0, len(a.gates))
	for g := range a.gates {
		gates = append(gates, g)
	}
	sort.Strings(gates)
	return gates
}

// ScheduleFlight registers a flight that uses this airport as origin or
// destination. Re-scheduling the same flight is a no-op.
func (a *Airport) ScheduleFlight(f *flight.Flight) error {
	if f == nil {
		return ErrNilFlight
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flights[f] = true
	return nil
}

// AssignGate gives the flight a gate, failing on an unknown gate or when
// another flight departing in the same minute already holds it. Conflict
// granularity is the minute bucket: times truncated to the minute must
// differ.
func (a *Airport) AssignGate(f *flight.Flight, gate string) error {
	if f == nil {
		return ErrNilFlight
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gates[gate] {
		return fmt.Errorf("%w: %q at %s", ErrUnknownGate, gate, a.id)
	}
	dep := f.Departure()
	for other := range a.flights {
		if other == f {
			continue
		}
		if other.Gate() == gate && sameMinute(dep, other.Departure()) {
			return fmt.Errorf("%w: gate %s at %s is held by flight %s",
				ErrGateConflict, gate, dep.Truncate(time.Minute).Format(time.RFC3339), other.Number())
		}
	}
	f.SetGate(gate)
	return nil
}

// ReleaseGate clears the gate on every flight holding it whose departure
// is strictly before asOf. This sweep is the airport's only cleanup
// mechanism; a scheduler outside the core invokes it.
func (a *Airport) ReleaseGate(gate string, asOf time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gates[gate] {
		return fmt.Errorf("%w: %q at %s", ErrUnknownGate, gate, a.id)
	}
	for f := range a.flights {
		if f.Gate() == gate && f.Departure().Before(asOf) {
			f.ClearGate()
		}
	}
	return nil
}

// FindAvailableGate returns the first gate, in sorted gate-ID order, not
// claimed by any flight departing in the given minute bucket.
func (a *Airport) FindAvailableGate(minute time.Time) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, gate := range a.sortedGates() {
		busy := false
		for f := range a.flights {
			if f.Gate() == gate && sameMinute(minute, f.Departure()) {
				busy = true
				break
			}
		}
		if !busy {
			return gate, nil
		}
	}
	return "", fmt.Errorf("%w at %s for %s", ErrNoGateAvailable, a.id, minute.Truncate(time.Minute).Format(time.RFC3339))
}

// FlightsDepartingOn lists flights that depart from this airport on the
// given calendar date, ordered by departure time, ties broken by flight
// number.
func (a *Airport) FlightsDepartingOn(date time.Time) []*flight.Flight {
	a.mu.Lock()
	defer a.mu.Unlock()

	y, m, d := date.Date()
	var out []*flight.Flight
	for f := range a.flights {
		if f.Origin() != a.id {
			continue
		}
		fy, fm, fd := f.Departure().Date()
		if fy == y && fm == m && fd == d {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Departure(), out[j].Departure()
		if di.Equal(dj) {
			return out[i].Number() < out[j].Number()
		}
		return di.Before(dj)
	})
	return out
}

// sameMinute reports whether two times fall in the same minute bucket:
// equal after truncation to the minute.
func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

func (a *Airport) String() string {
	return fmt.Sprintf("Airport{%s, %s}", a.id, a.name)
}
