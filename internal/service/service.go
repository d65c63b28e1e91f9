package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/cocopuff2234/airline-ops/internal/airport"
	"github.com/cocopuff2234/airline-ops/internal/booking"
	"github.com/cocopuff2234/airline-ops/internal/crew"
	"github.com/cocopuff2234/airline-ops/internal/database"
	"github.com/cocopuff2234/airline-ops/internal/fleet"
	"github.com/cocopuff2234/airline-ops/internal/flight"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
	"github.com/cocopuff2234/airline-ops/internal/models"
	"github.com/cocopuff2234/airline-ops/internal/websocket"
	"github.com/cocopuff2234/airline-ops/internal/workflows"
)

const (
	TaskQueue = "airline-ops-queue"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrAirportNotFound   = errors.New("airport not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrCrewNotFound      = errors.New("crew member not found")
	ErrDuplicateFlight   = errors.New("flight number already in use")
	ErrDuplicateAirport  = errors.New("airport already registered")
	ErrDuplicateCustomer = errors.New("customer already registered")
	ErrDuplicateCrew     = errors.New("employee id already in use")
	ErrInvalidInput      = errors.New("invalid input")
)

// Store persists flight and ticket snapshots for reporting. A nil store
// disables persistence; the in-memory core stays authoritative either way.
type Store interface {
	UpsertFlight(ctx context.Context, f database.FlightRecord) error
	SaveTicket(ctx context.Context, t database.TicketRecord) error
	RecordTicketEvent(ctx context.Context, ticketID, flightNumber, eventType, detail string) error
}

// BookingService defines the operational resource API
type BookingService interface {
	CreateAirport(ctx context.Context, req *models.CreateAirportRequest) (*models.AirportView, error)
	GetAirport(ctx context.Context, id string) (*models.AirportView, error)
	AssignGate(ctx context.Context, airportID, flightNumber, gate string) error
	ReleaseGate(ctx context.Context, airportID, gate string, asOf time.Time) error
	FindAvailableGate(ctx context.Context, airportID string, minute time.Time) (*models.GateSuggestion, error)
	GetDepartures(ctx context.Context, airportID string, date time.Time) ([]*models.FlightView, error)

	CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.FlightView, error)
	GetFlights(ctx context.Context) []*models.FlightView
	GetFlight(ctx context.Context, number string) (*models.FlightView, error)
	DelayFlight(ctx context.Context, number string, minutes int) (*models.FlightView, error)
	GetSeatMap(ctx context.Context, number string) (*models.SeatMapView, error)

	RegisterPilot(ctx context.Context, req *models.RegisterPilotRequest) (*models.CrewMemberView, error)
	RegisterCabinCrew(ctx context.Context, req *models.RegisterCabinCrewRequest) (*models.CrewMemberView, error)
	SetCrewStatus(ctx context.Context, employeeID, status string) error
	AssignCaptain(ctx context.Context, flightNumber, employeeID string) error
	AssignFirstOfficer(ctx context.Context, flightNumber, employeeID string) error
	AddAttendant(ctx context.Context, flightNumber, employeeID string) error
	RemoveAttendant(ctx context.Context, flightNumber, employeeID string) error

	CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerView, error)
	GetCustomer(ctx context.Context, id string) (*models.CustomerView, error)

	BookTicket(ctx context.Context, req *models.BookTicketRequest) (*models.TicketView, error)
	GetTicket(ctx context.Context, id string) (*models.TicketView, error)
	PurchaseTicket(ctx context.Context, id string) (*models.TicketView, error)
	CancelTicket(ctx context.Context, id string) (*models.TicketView, error)
	UpgradeTicket(ctx context.Context, id, fareClass string) (*models.TicketView, error)
	ExpireTicket(ctx context.Context, id string) (bool, string, error)
}

// bookingServiceImpl implements BookingService on top of the in-memory
// domain. The temporal client, store and hub are all optional.
type bookingServiceImpl struct {
	mu        sync.RWMutex
	airports  map[string]*airport.Airport
	flights   map[string]*flight.Flight
	customers map[string]*booking.InMemoryCustomer
	tickets   map[string]*booking.Ticket
	pilots    map[string]*crew.Pilot
	cabin     map[string]*crew.CabinCrew

	idgen          booking.IDGenerator
	temporalClient client.Client
	store          Store
	hub            *websocket.Hub
	now            func() time.Time
}

// NewBookingService creates a new BookingService. temporalClient, store
// and hub may each be nil.
func NewBookingService(temporalClient client.Client, store Store, hub *websocket.Hub) BookingService {
	return &bookingServiceImpl{
		airports:       make(map[string]*airport.Airport),
		flights:        make(map[string]*flight.Flight),
		customers:      make(map[string]*booking.InMemoryCustomer),
		tickets:        make(map[string]*booking.Ticket),
		pilots:         make(map[string]*crew.Pilot),
		cabin:          make(map[string]*crew.CabinCrew),
		idgen:          booking.UUIDGenerator{},
		temporalClient: temporalClient,
		store:          store,
		hub:            hub,
		now:            time.Now,
	}
}

// --- Airports ---

func (s *bookingServiceImpl) CreateAirport(ctx context.Context, req *models.CreateAirportRequest) (*models.AirportView, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: airport id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.airports[req.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAirport, req.ID)
	}
	a := airport.New(req.ID, req.Name, req.Terminals, req.Gates)
	s.airports[req.ID] = a
	return airportView(a), nil
}

func (s *bookingServiceImpl) GetAirport(ctx context.Context, id string) (*models.AirportView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.airports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAirportNotFound, id)
	}
	return airportView(a), nil
}

func (s *bookingServiceImpl) AssignGate(ctx context.Context, airportID, flightNumber, gate string) error {
	s.mu.RLock()
	a, okA := s.airports[airportID]
	f, okF := s.flights[flightNumber]
	s.mu.RUnlock()
	if !okA {
		return fmt.Errorf("%w: %s", ErrAirportNotFound, airportID)
	}
	if !okF {
		return fmt.Errorf("%w: %s", ErrFlightNotFound, flightNumber)
	}

	if err := a.AssignGate(f, gate); err != nil {
		return err
	}
	s.persistFlight(ctx, f)
	return nil
}

func (s *bookingServiceImpl) ReleaseGate(ctx context.Context, airportID, gate string, asOf time.Time) error {
	s.mu.RLock()
	a, ok := s.airports[airportID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrAirportNotFound, airportID)
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	return a.ReleaseGate(gate, asOf)
}

func (s *bookingServiceImpl) FindAvailableGate(ctx context.Context, airportID string, minute time.Time) (*models.GateSuggestion, error) {
	s.mu.RLock()
	a, ok := s.airports[airportID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAirportNotFound, airportID)
	}
	gate, err := a.FindAvailableGate(minute)
	if err != nil {
		return nil, err
	}
	return &models.GateSuggestion{Airport: airportID, Gate: gate, Minute: minute.Truncate(time.Minute)}, nil
}

func (s *bookingServiceImpl) GetDepartures(ctx context.Context, airportID string, date time.Time) ([]*models.FlightView, error) {
	s.mu.RLock()
	a, ok := s.airports[airportID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAirportNotFound, airportID)
	}

	departures := a.FlightsDepartingOn(date)
	views := make([]*models.FlightView, 0, len(departures))
	for _, f := range departures {
		views = append(views, s.flightView(f))
	}
	return views, nil
}

// --- Flights ---

func (s *bookingServiceImpl) CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.FlightView, error) {
	if req.FlightNumber == "" {
		return nil, fmt.Errorf("%w: flight number is required", ErrInvalidInput)
	}
	aircraftType, err := fleet.Parse(req.AircraftType)
	if err != nil {
		return nil, err
	}
	plane, err := inventory.NewPlane("PL-"+req.FlightNumber, aircraftType, req.Capacity, req.FirstPrice, req.EconomyPrice)
	if err != nil {
		return nil, err
	}
	f, err := flight.New(req.FlightNumber, req.Airline, req.Origin, req.Destination,
		req.DepartureTime, req.ArrivalTime, plane, req.MinAttendants)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, ok := s.flights[req.FlightNumber]; ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateFlight, req.FlightNumber)
	}
	s.flights[req.FlightNumber] = f
	for _, a := range s.airports {
		if a.ID() == req.Origin || a.ID() == req.Destination {
			_ = a.ScheduleFlight(f)
		}
	}
	s.mu.Unlock()

	if s.hub != nil {
		f.Subscribe(s.hub)
	}
	s.persistFlight(ctx, f)
	return s.flightView(f), nil
}

func (s *bookingServiceImpl) GetFlights(ctx context.Context) []*models.FlightView {
	s.mu.RLock()
	flights := make([]*flight.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		flights = append(flights, f)
	}
	s.mu.RUnlock()

	views := make([]*models.FlightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, s.flightView(f))
	}
	return views
}

func (s *bookingServiceImpl) GetFlight(ctx context.Context, number string) (*models.FlightView, error) {
	f, err := s.lookupFlight(number)
	if err != nil {
		return nil, err
	}
	return s.flightView(f), nil
}

func (s *bookingServiceImpl) DelayFlight(ctx context.Context, number string, minutes int) (*models.FlightView, error) {
	f, err := s.lookupFlight(number)
	if err != nil {
		return nil, err
	}
	if err := f.DelayBy(minutes); err != nil {
		return nil, err
	}
	s.persistFlight(ctx, f)
	return s.flightView(f), nil
}

func (s *bookingServiceImpl) GetSeatMap(ctx context.Context, number string) (*models.SeatMapView, error) {
	f, err := s.lookupFlight(number)
	if err != nil {
		return nil, err
	}
	return &models.SeatMapView{
		FlightNumber:   f.Number(),
		AircraftType:   f.AircraftType().Code,
		SeatCodes:      f.Plane().SeatCodes(),
		AvailableSeats: f.Plane().Available(),
	}, nil
}

// --- Crew ---

func (s *bookingServiceImpl) RegisterPilot(ctx context.Context, req *models.RegisterPilotRequest) (*models.CrewMemberView, error) {
	rank, err := parseRank(req.Rank)
	if err != nil {
		return nil, err
	}
	ratings, err := parseRatings(req.TypeRatings)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pilots[req.EmployeeID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCrew, req.EmployeeID)
	}
	if _, ok := s.cabin[req.EmployeeID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCrew, req.EmployeeID)
	}
	p := crew.NewPilot(req.EmployeeID, req.FullName, req.HiredOn, req.BaseAirport, rank, ratings, req.FlightHours)
	s.pilots[req.EmployeeID] = p
	return pilotView(p), nil
}

func (s *bookingServiceImpl) RegisterCabinCrew(ctx context.Context, req *models.RegisterCabinCrewRequest) (*models.CrewMemberView, error) {
	position, err := parsePosition(req.Position)
	if err != nil {
		return nil, err
	}
	quals, err := parseRatings(req.Qualifications)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pilots[req.EmployeeID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCrew, req.EmployeeID)
	}
	if _, ok := s.cabin[req.EmployeeID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCrew, req.EmployeeID)
	}
	c := crew.NewCabinCrew(req.EmployeeID, req.FullName, req.HiredOn, req.BaseAirport, position, quals)
	s.cabin[req.EmployeeID] = c
	return cabinView(c), nil
}

func (s *bookingServiceImpl) SetCrewStatus(ctx context.Context, employeeID, status string) error {
	st, err := parseStatus(status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pilots[employeeID]; ok {
		p.SetStatus(st)
		return nil
	}
	if c, ok := s.cabin[employeeID]; ok {
		c.SetStatus(st)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCrewNotFound, employeeID)
}

func (s *bookingServiceImpl) AssignCaptain(ctx context.Context, flightNumber, employeeID string) error {
	f, err := s.lookupFlight(flightNumber)
	if err != nil {
		return err
	}
	p, err := s.lookupPilot(employeeID)
	if err != nil {
		return err
	}
	return f.AssignCaptain(p)
}

func (s *bookingServiceImpl) AssignFirstOfficer(ctx context.Context, flightNumber, employeeID string) error {
	f, err := s.lookupFlight(flightNumber)
	if err != nil {
		return err
	}
	p, err := s.lookupPilot(employeeID)
	if err != nil {
		return err
	}
	return f.AssignFirstOfficer(p)
}

func (s *bookingServiceImpl) AddAttendant(ctx context.Context, flightNumber, employeeID string) error {
	f, err := s.lookupFlight(flightNumber)
	if err != nil {
		return err
	}
	c, err := s.lookupCabinCrew(employeeID)
	if err != nil {
		return err
	}
	return f.AddAttendant(c)
}

func (s *bookingServiceImpl) RemoveAttendant(ctx context.Context, flightNumber, employeeID string) error {
	f, err := s.lookupFlight(flightNumber)
	if err != nil {
		return err
	}
	c, err := s.lookupCabinCrew(employeeID)
	if err != nil {
		return err
	}
	if !f.RemoveAttendant(c) {
		return fmt.Errorf("%w: %s is not on flight %s", ErrCrewNotFound, employeeID, flightNumber)
	}
	return nil
}

// --- Customers ---

func (s *bookingServiceImpl) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerView, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[req.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCustomer, req.ID)
	}
	c := booking.NewCustomer(req.ID, req.Name)
	s.customers[req.ID] = c
	return customerView(c), nil
}

func (s *bookingServiceImpl) GetCustomer(ctx context.Context, id string) (*models.CustomerView, error) {
	s.mu.RLock()
	c, ok := s.customers[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return customerView(c), nil
}

// --- Tickets ---

func (s *bookingServiceImpl) BookTicket(ctx context.Context, req *models.BookTicketRequest) (*models.TicketView, error) {
	class, err := inventory.ParseFareClass(req.FareClass)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	f, okF := s.flights[req.FlightNumber]
	c, okC := s.customers[req.CustomerID]
	s.mu.RUnlock()
	if !okF {
		return nil, fmt.Errorf("%w: %s", ErrFlightNotFound, req.FlightNumber)
	}
	if !okC {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, req.CustomerID)
	}

	t, err := booking.NewTicket(s.idgen, f, c, class)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tickets[t.ID()] = t
	s.mu.Unlock()

	s.persistTicket(ctx, t)
	s.recordEvent(ctx, t, "booked", "reservation opened")
	s.startHoldWorkflow(ctx, t)
	return ticketView(t), nil
}

func (s *bookingServiceImpl) GetTicket(ctx context.Context, id string) (*models.TicketView, error) {
	t, err := s.lookupTicket(id)
	if err != nil {
		return nil, err
	}
	return ticketView(t), nil
}

func (s *bookingServiceImpl) PurchaseTicket(ctx context.Context, id string) (*models.TicketView, error) {
	t, err := s.lookupTicket(id)
	if err != nil {
		return nil, err
	}
	if err := t.Purchase(); err != nil {
		return nil, err
	}

	s.persistTicket(ctx, t)
	s.persistFlight(ctx, t.Flight())
	s.recordEvent(ctx, t, "purchased", "")
	s.signalFinalized(ctx, t, "confirmed")
	s.broadcastTicket(websocket.MessageTypeTicketPurchased, t)
	return ticketView(t), nil
}

func (s *bookingServiceImpl) CancelTicket(ctx context.Context, id string) (*models.TicketView, error) {
	t, err := s.lookupTicket(id)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(); err != nil {
		return nil, err
	}

	s.persistTicket(ctx, t)
	s.persistFlight(ctx, t.Flight())
	s.recordEvent(ctx, t, "canceled", "")
	s.signalFinalized(ctx, t, "canceled")
	s.broadcastTicket(websocket.MessageTypeTicketCanceled, t)
	return ticketView(t), nil
}

func (s *bookingServiceImpl) UpgradeTicket(ctx context.Context, id, fareClass string) (*models.TicketView, error) {
	class, err := inventory.ParseFareClass(fareClass)
	if err != nil {
		return nil, err
	}
	t, err := s.lookupTicket(id)
	if err != nil {
		return nil, err
	}
	newPrice, err := t.Flight().Plane().PriceOf(class)
	if err != nil {
		return nil, err
	}
	if err := t.Upgrade(class, newPrice); err != nil {
		return nil, err
	}

	s.persistTicket(ctx, t)
	s.persistFlight(ctx, t.Flight())
	s.recordEvent(ctx, t, "upgraded", "fare class "+string(class))
	s.broadcastTicket(websocket.MessageTypeTicketUpgraded, t)
	return ticketView(t), nil
}

// ExpireTicket cancels a still-pending ticket on behalf of the hold
// workflow. A ticket already confirmed or canceled is left alone. The
// check and the cancel happen atomically inside the ticket, so a
// purchase racing the hold timer is never reversed.
func (s *bookingServiceImpl) ExpireTicket(ctx context.Context, id string) (bool, string, error) {
	t, err := s.lookupTicket(id)
	if err != nil {
		return false, "", err
	}
	expired, status := t.Expire()
	if !expired {
		return false, string(status), nil
	}

	s.persistTicket(ctx, t)
	s.broadcastTicket(websocket.MessageTypeTicketCanceled, t)
	return true, string(status), nil
}

// --- internal helpers ---

func (s *bookingServiceImpl) lookupFlight(number string) (*flight.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flights[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlightNotFound, number)
	}
	return f, nil
}

func (s *bookingServiceImpl) lookupTicket(id string) (*booking.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	return t, nil
}

func (s *bookingServiceImpl) lookupPilot(employeeID string) (*crew.Pilot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pilots[employeeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCrewNotFound, employeeID)
	}
	return p, nil
}

func (s *bookingServiceImpl) lookupCabinCrew(employeeID string) (*crew.CabinCrew, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cabin[employeeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCrewNotFound, employeeID)
	}
	return c, nil
}

func (s *bookingServiceImpl) startHoldWorkflow(ctx context.Context, t *booking.Ticket) {
	if s.temporalClient == nil {
		return
	}
	opts := client.StartWorkflowOptions{
		ID:        "hold-" + t.ID(),
		TaskQueue: TaskQueue,
	}
	_, err := s.temporalClient.ExecuteWorkflow(ctx, opts, "ReservationHoldWorkflow", workflows.HoldWorkflowInput{
		TicketID:     t.ID(),
		FlightNumber: t.Flight().Number(),
	})
	if err != nil {
		log.Printf("Failed to start hold workflow for ticket %s: %v", t.ID(), err)
	}
}

func (s *bookingServiceImpl) signalFinalized(ctx context.Context, t *booking.Ticket, outcome string) {
	if s.temporalClient == nil {
		return
	}
	err := s.temporalClient.SignalWorkflow(ctx, "hold-"+t.ID(), "", workflows.FinalizedSignal,
		workflows.FinalizedSignalPayload{Outcome: outcome})
	if err != nil {
		log.Printf("Failed to signal hold workflow for ticket %s: %v", t.ID(), err)
	}
}

func (s *bookingServiceImpl) persistFlight(ctx context.Context, f *flight.Flight) {
	if s.store == nil {
		return
	}
	err := s.store.UpsertFlight(ctx, database.FlightRecord{
		FlightNumber:   f.Number(),
		Airline:        f.Airline(),
		Origin:         f.Origin(),
		Destination:    f.Destination(),
		AircraftType:   f.AircraftType().Code,
		DepartureTime:  f.Departure(),
		ArrivalTime:    f.Arrival(),
		Gate:           f.Gate(),
		TotalSeats:     f.Plane().Capacity(),
		AvailableSeats: f.Plane().Available(),
	})
	if err != nil {
		log.Printf("Failed to persist flight %s: %v", f.Number(), err)
	}
}

func (s *bookingServiceImpl) persistTicket(ctx context.Context, t *booking.Ticket) {
	if s.store == nil {
		return
	}
	err := s.store.SaveTicket(ctx, database.TicketRecord{
		ID:           t.ID(),
		FlightNumber: t.Flight().Number(),
		CustomerID:   t.Customer().ID(),
		FareClass:    string(t.FareClass()),
		Price:        t.Price(),
		Status:       string(t.Status()),
	})
	if err != nil {
		log.Printf("Failed to persist ticket %s: %v", t.ID(), err)
	}
}

func (s *bookingServiceImpl) recordEvent(ctx context.Context, t *booking.Ticket, eventType, detail string) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordTicketEvent(ctx, t.ID(), t.Flight().Number(), eventType, detail); err != nil {
		log.Printf("Failed to record %s event for ticket %s: %v", eventType, t.ID(), err)
	}
}

func (s *bookingServiceImpl) broadcastTicket(msgType websocket.MessageType, t *booking.Ticket) {
	if s.hub == nil {
		return
	}
	f := t.Flight()
	s.hub.BroadcastTicketEvent(msgType, f.Number(), t.ID(), string(t.FareClass()), f.Plane().Available())
}

// --- view builders ---

func (s *bookingServiceImpl) flightView(f *flight.Flight) *models.FlightView {
	firstFree, _ := f.Plane().AvailableIn(inventory.FareFirst)
	economyFree, _ := f.Plane().AvailableIn(inventory.FareEconomy)
	return &models.FlightView{
		FlightNumber:     f.Number(),
		Airline:          f.Airline(),
		Origin:           f.Origin(),
		Destination:      f.Destination(),
		AircraftType:     f.AircraftType().Code,
		DepartureTime:    f.Departure(),
		ArrivalTime:      f.Arrival(),
		DurationMinutes:  int(f.Duration().Minutes()),
		Gate:             f.Gate(),
		Status:           string(f.CurrentStatus(s.now())),
		TotalSeats:       f.Plane().Capacity(),
		AvailableSeats:   f.Plane().Available(),
		FirstAvailable:   firstFree,
		EconomyAvailable: economyFree,
		HasRequiredCrew:  f.HasRequiredCrew(),
	}
}

func airportView(a *airport.Airport) *models.AirportView {
	return &models.AirportView{
		ID:        a.ID(),
		Name:      a.Name(),
		Terminals: a.Terminals(),
		Gates:     a.Gates(),
	}
}

func customerView(c *booking.InMemoryCustomer) *models.CustomerView {
	tickets := c.Tickets()
	views := make([]models.TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, *ticketView(t))
	}
	return &models.CustomerView{
		ID:      c.ID(),
		Name:    c.Name(),
		Balance: c.Balance(),
		Tickets: views,
	}
}

func ticketView(t *booking.Ticket) *models.TicketView {
	return &models.TicketView{
		ID:           t.ID(),
		FlightNumber: t.Flight().Number(),
		CustomerID:   t.Customer().ID(),
		FareClass:    string(t.FareClass()),
		Price:        t.Price(),
		Status:       string(t.Status()),
		CreatedAt:    t.CreatedAt(),
	}
}

func pilotView(p *crew.Pilot) *models.CrewMemberView {
	return &models.CrewMemberView{
		EmployeeID:  p.EmployeeID(),
		FullName:    p.FullName(),
		BaseAirport: p.BaseAirport(),
		Status:      string(p.Status()),
		Role:        "pilot",
		Rank:        string(p.Rank()),
		Ratings:     p.TypeRatings(),
		FlightHours: p.FlightHours(),
	}
}

func cabinView(c *crew.CabinCrew) *models.CrewMemberView {
	return &models.CrewMemberView{
		EmployeeID:  c.EmployeeID(),
		FullName:    c.FullName(),
		BaseAirport: c.BaseAirport(),
		Status:      string(c.Status()),
		Role:        "cabin",
		Position:    string(c.Position()),
		Ratings:     c.Qualifications(),
	}
}

// --- request parsing ---

func parseRank(s string) (crew.Rank, error) {
	switch crew.Rank(s) {
	case crew.RankCaptain, crew.RankFirstOfficer:
		return crew.Rank(s), nil
	default:
		return "", fmt.Errorf("%w: unknown rank %q", ErrInvalidInput, s)
	}
}

func parsePosition(s string) (crew.Position, error) {
	switch crew.Position(s) {
	case crew.PositionLead, crew.PositionJunior:
		return crew.Position(s), nil
	default:
		return "", fmt.Errorf("%w: unknown position %q", ErrInvalidInput, s)
	}
}

func parseStatus(s string) (crew.Status, error) {
	switch crew.Status(s) {
	case crew.StatusAvailable, crew.StatusOnLeave, crew.StatusSuspended:
		return crew.Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

func parseRatings(codes []string) ([]fleet.AircraftType, error) {
	ratings := make([]fleet.AircraftType, 0, len(codes))
	for _, code := range codes {
		t, err := fleet.Parse(code)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, t)
	}
	return ratings, nil
}
