package crew

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/fleet"
)

var ErrNegativeHours = errors.New("flight hours delta must be non-negative")

// Status is a crew member's duty status. Only AVAILABLE members may be
// assigned to a flight.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOnLeave   Status = "ON_LEAVE"
	StatusSuspended Status = "SUSPENDED"
)

// Rank is a pilot's seat in the cockpit.
type Rank string

const (
	RankCaptain      Rank = "CAPTAIN"
	RankFirstOfficer Rank = "FIRST_OFFICER"
)

// Position is a cabin crew member's role in the cabin.
type Position string

const (
	PositionLead   Position = "LEAD"
	PositionJunior Position = "JUNIOR"
)

// Eligible is the capability every crew variant exposes to flight
// assignment: duty status plus a type-rating check for one aircraft type.
type Eligible interface {
	Status() Status
	CanOperate(t fleet.AircraftType) bool
}

// Member carries the identity and status fields shared by all crew
// variants. Equality is by employee ID.
type Member struct {
	employeeID  string
	fullName    string
	hiredOn     time.Time
	baseAirport string
	status      Status
}

func newMember(employeeID, fullName string, hiredOn time.Time, baseAirport string) Member {
	return Member{
		employeeID:  employeeID,
		fullName:    fullName,
		hiredOn:     hiredOn,
		baseAirport: baseAirport,
		status:      StatusAvailable,
	}
}

func (m *Member) EmployeeID() string  { return m.employeeID }
func (m *Member) FullName() string    { return m.fullName }
func (m *Member) HiredOn() time.Time  { return m.hiredOn }
func (m *Member) BaseAirport() string { return m.baseAirport }
func (m *Member) Status() Status      { return m.status }

func (m *Member) SetStatus(s Status)      { m.status = s }
func (m *Member) SetBaseAirport(a string) { m.baseAirport = a }

// eligible is the one eligibility rule both variants share: the member is
// on duty and holds a rating for the aircraft type. Variants differ only
// in which qualification set they pass in.
func eligible(status Status, ratings map[string]bool, t fleet.AircraftType) bool {
	return status == StatusAvailable && ratings[t.Code]
}

func sortedCodes(set map[string]bool) []string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Pilot is a cockpit crew member with a rank and a set of type ratings.
type Pilot struct {
	Member
	rank        Rank
	typeRatings map[string]bool
	flightHours int
}

// NewPilot builds a pilot. Negative starting hours are clamped to zero.
func NewPilot(employeeID, fullName string, hiredOn time.Time, baseAirport string, rank Rank, ratings []fleet.AircraftType, flightHours int) *Pilot {
	p := &Pilot{
		Member:      newMember(employeeID, fullName, hiredOn, baseAirport),
		rank:        rank,
		typeRatings: make(map[string]bool, len(ratings)),
	}
	for _, t := range ratings {
		p.typeRatings[t.Code] = true
	}
	if flightHours > 0 {
		p.flightHours = flightHours
	}
	return p
}

func (p *Pilot) Rank() Rank       { return p.rank }
func (p *Pilot) FlightHours() int { return p.flightHours }

// CanOperate reports whether the pilot may fly the given aircraft type.
func (p *Pilot) CanOperate(t fleet.AircraftType) bool {
	return eligible(p.Status(), p.typeRatings, t)
}

// AddTypeRating grants a rating for an aircraft type. Adding an existing
// rating is a no-op.
func (p *Pilot) AddTypeRating(t fleet.AircraftType) {
	p.typeRatings[t.Code] = true
}

// TypeRatings lists the rated aircraft type codes in sorted order.
func (p *Pilot) TypeRatings() []string {
	return sortedCodes(p.typeRatings)
}

// AddFlightHours credits flown hours. Hours only ever accumulate.
func (p *Pilot) AddFlightHours(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeHours, n)
	}
	p.flightHours += n
	return nil
}

func (p *Pilot) String() string {
	return fmt.Sprintf("%s(%s %s)", p.rank, p.FullName(), p.EmployeeID())
}

// CabinCrew is a flight attendant with a cabin position and a set of
// cabin qualifications.
type CabinCrew struct {
	Member
	position       Position
	qualifications map[string]bool
}

func NewCabinCrew(employeeID, fullName string, hiredOn time.Time, baseAirport string, position Position, qualifications []fleet.AircraftType) *CabinCrew {
	c := &CabinCrew{
		Member:         newMember(employeeID, fullName, hiredOn, baseAirport),
		position:       position,
		qualifications: make(map[string]bool, len(qualifications)),
	}
	for _, t := range qualifications {
		c.qualifications[t.Code] = true
	}
	return c
}

func (c *CabinCrew) Position() Position { return c.position }

// CanOperate reports whether the attendant may serve on the given
// aircraft type.
func (c *CabinCrew) CanOperate(t fleet.AircraftType) bool {
	return eligible(c.Status(), c.qualifications, t)
}

// AddQualification certifies the attendant for an aircraft type.
func (c *CabinCrew) AddQualification(t fleet.AircraftType) {
	c.qualifications[t.Code] = true
}

// Qualifications lists the certified aircraft type codes in sorted order.
func (c *CabinCrew) Qualifications() []string {
	return sortedCodes(c.qualifications)
}

func (c *CabinCrew) String() string {
	return fmt.Sprintf("%s(%s %s)", c.position, c.FullName(), c.EmployeeID())
}
