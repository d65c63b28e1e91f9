package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocopuff2234/airline-ops/internal/booking"
	"github.com/cocopuff2234/airline-ops/internal/database"
	"github.com/cocopuff2234/airline-ops/internal/flight"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
	"github.com/cocopuff2234/airline-ops/internal/models"
)

var testDeparture = time.Date(2025, 10, 1, 14, 30, 0, 0, time.UTC)

type fakeStore struct {
	flights []database.FlightRecord
	tickets []database.TicketRecord
	events  []string
}

func (f *fakeStore) UpsertFlight(ctx context.Context, r database.FlightRecord) error {
	f.flights = append(f.flights, r)
	return nil
}

func (f *fakeStore) SaveTicket(ctx context.Context, r database.TicketRecord) error {
	f.tickets = append(f.tickets, r)
	return nil
}

func (f *fakeStore) RecordTicketEvent(ctx context.Context, ticketID, flightNumber, eventType, detail string) error {
	f.events = append(f.events, eventType)
	return nil
}

func newTestService(t *testing.T) (*bookingServiceImpl, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	svc := NewBookingService(nil, store, nil).(*bookingServiceImpl)
	svc.now = func() time.Time { return testDeparture.Add(-2 * time.Hour) }

	ctx := context.Background()
	_, err := svc.CreateAirport(ctx, &models.CreateAirportRequest{
		ID: "JFK", Name: "John F. Kennedy International",
		Terminals: []string{"T4"}, Gates: []string{"A1", "A12", "B3"},
	})
	require.NoError(t, err)

	_, err = svc.CreateFlight(ctx, &models.CreateFlightRequest{
		FlightNumber: "AA001", Airline: "American",
		Origin: "JFK", Destination: "LAX", AircraftType: "A320",
		DepartureTime: testDeparture, ArrivalTime: testDeparture.Add(6 * time.Hour),
		Capacity: 10, FirstPrice: 350, EconomyPrice: 150, MinAttendants: 1,
	})
	require.NoError(t, err)

	_, err = svc.RegisterPilot(ctx, &models.RegisterPilotRequest{
		EmployeeID: "P001", FullName: "Cap", Rank: "CAPTAIN",
		BaseAirport: "JFK", TypeRatings: []string{"A320"}, FlightHours: 5000,
	})
	require.NoError(t, err)
	_, err = svc.RegisterPilot(ctx, &models.RegisterPilotRequest{
		EmployeeID: "P002", FullName: "FO", Rank: "FIRST_OFFICER",
		BaseAirport: "JFK", TypeRatings: []string{"A320"}, FlightHours: 2000,
	})
	require.NoError(t, err)
	_, err = svc.RegisterCabinCrew(ctx, &models.RegisterCabinCrewRequest{
		EmployeeID: "FA001", FullName: "FA", Position: "LEAD",
		BaseAirport: "JFK", Qualifications: []string{"A320"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.AssignCaptain(ctx, "AA001", "P001"))
	require.NoError(t, svc.AssignFirstOfficer(ctx, "AA001", "P002"))
	require.NoError(t, svc.AddAttendant(ctx, "AA001", "FA001"))

	_, err = svc.CreateCustomer(ctx, &models.CreateCustomerRequest{ID: "C001", Name: "Ada"})
	require.NoError(t, err)

	return svc, store
}

func TestCreateFlight_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, &models.CreateFlightRequest{
		FlightNumber: "AA001", Airline: "American",
		Origin: "JFK", Destination: "LAX", AircraftType: "A320",
		DepartureTime: testDeparture, ArrivalTime: testDeparture.Add(6 * time.Hour),
		Capacity: 10, FirstPrice: 350, EconomyPrice: 150,
	})
	assert.ErrorIs(t, err, ErrDuplicateFlight)
}

func TestCreateFlight_UnknownAircraftType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateFlight(context.Background(), &models.CreateFlightRequest{
		FlightNumber: "ZZ999", AircraftType: "MD80",
		DepartureTime: testDeparture, ArrivalTime: testDeparture.Add(time.Hour),
		Capacity: 10,
	})
	assert.Error(t, err)
}

func TestGetFlight(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.GetFlight(context.Background(), "AA001")
	require.NoError(t, err)
	assert.Equal(t, "AA001", view.FlightNumber)
	assert.Equal(t, "Scheduled", view.Status)
	assert.Equal(t, 10, view.AvailableSeats)
	assert.Equal(t, 2, view.FirstAvailable)
	assert.Equal(t, 8, view.EconomyAvailable)
	assert.Equal(t, 360, view.DurationMinutes)
	assert.True(t, view.HasRequiredCrew)

	_, err = svc.GetFlight(context.Background(), "ZZ999")
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestTicketLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	booked, err := svc.BookTicket(ctx, &models.BookTicketRequest{
		FlightNumber: "AA001", CustomerID: "C001", FareClass: "economy",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", booked.Status)
	assert.Equal(t, 150.0, booked.Price)

	confirmed, err := svc.PurchaseTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	cust, err := svc.GetCustomer(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, 150.0, cust.Balance)
	assert.Len(t, cust.Tickets, 1)

	fv, err := svc.GetFlight(ctx, "AA001")
	require.NoError(t, err)
	assert.Equal(t, 9, fv.AvailableSeats)

	canceled, err := svc.CancelTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", canceled.Status)

	fv, err = svc.GetFlight(ctx, "AA001")
	require.NoError(t, err)
	assert.Equal(t, 10, fv.AvailableSeats)

	_, err = svc.CancelTicket(ctx, booked.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyCanceled)

	assert.Equal(t, []string{"booked", "purchased", "canceled"}, store.events)
}

func TestUpgradeTicket(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	booked, err := svc.BookTicket(ctx, &models.BookTicketRequest{
		FlightNumber: "AA001", CustomerID: "C001", FareClass: "economy",
	})
	require.NoError(t, err)
	_, err = svc.PurchaseTicket(ctx, booked.ID)
	require.NoError(t, err)

	upgraded, err := svc.UpgradeTicket(ctx, booked.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", upgraded.FareClass)
	assert.Equal(t, 350.0, upgraded.Price)

	cust, err := svc.GetCustomer(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, 350.0, cust.Balance, "charged the difference on upgrade")

	_, err = svc.UpgradeTicket(ctx, booked.ID, "premium")
	assert.ErrorIs(t, err, inventory.ErrUnknownFareClass)
}

func TestPurchase_WithoutCrew(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, &models.CreateFlightRequest{
		FlightNumber: "DL002", Airline: "Delta",
		Origin: "JFK", Destination: "SFO", AircraftType: "B787",
		DepartureTime: testDeparture, ArrivalTime: testDeparture.Add(6 * time.Hour),
		Capacity: 20, FirstPrice: 900, EconomyPrice: 400,
	})
	require.NoError(t, err)

	booked, err := svc.BookTicket(ctx, &models.BookTicketRequest{
		FlightNumber: "DL002", CustomerID: "C001", FareClass: "economy",
	})
	require.NoError(t, err)

	_, err = svc.PurchaseTicket(ctx, booked.ID)
	assert.ErrorIs(t, err, booking.ErrNoCrew)
}

func TestExpireTicket(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	booked, err := svc.BookTicket(ctx, &models.BookTicketRequest{
		FlightNumber: "AA001", CustomerID: "C001", FareClass: "economy",
	})
	require.NoError(t, err)

	expired, status, err := svc.ExpireTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, "canceled", status)

	// Expiring again finds the terminal state and does nothing.
	expired, status, err = svc.ExpireTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, "canceled", status)
}

func TestExpireTicket_ConfirmedIsUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	booked, err := svc.BookTicket(ctx, &models.BookTicketRequest{
		FlightNumber: "AA001", CustomerID: "C001", FareClass: "first",
	})
	require.NoError(t, err)
	_, err = svc.PurchaseTicket(ctx, booked.ID)
	require.NoError(t, err)

	expired, status, err := svc.ExpireTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, "confirmed", status)

	view, err := svc.GetTicket(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", view.Status)
}

func TestAssignGate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignGate(ctx, "JFK", "AA001", "A12"))

	view, err := svc.GetFlight(ctx, "AA001")
	require.NoError(t, err)
	assert.Equal(t, "A12", view.Gate)

	_, err = svc.CreateFlight(ctx, &models.CreateFlightRequest{
		FlightNumber: "DL002", Airline: "Delta",
		Origin: "JFK", Destination: "SFO", AircraftType: "A320",
		DepartureTime: testDeparture.Add(30 * time.Second), ArrivalTime: testDeparture.Add(6 * time.Hour),
		Capacity: 10, FirstPrice: 350, EconomyPrice: 150,
	})
	require.NoError(t, err)

	err = svc.AssignGate(ctx, "JFK", "DL002", "A12")
	assert.Error(t, err, "same minute bucket, same gate")

	err = svc.AssignGate(ctx, "ORD", "AA001", "A12")
	assert.ErrorIs(t, err, ErrAirportNotFound)
}

func TestFindAvailableGate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignGate(ctx, "JFK", "AA001", "A1"))

	suggestion, err := svc.FindAvailableGate(ctx, "JFK", testDeparture)
	require.NoError(t, err)
	assert.Equal(t, "A12", suggestion.Gate, "A1 is held in that minute")
}

func TestGetDepartures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	views, err := svc.GetDepartures(ctx, "JFK", testDeparture)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "AA001", views[0].FlightNumber)

	views, err = svc.GetDepartures(ctx, "JFK", testDeparture.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDelayFlight(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.DelayFlight(ctx, "AA001", 45)
	require.NoError(t, err)
	assert.Equal(t, testDeparture.Add(45*time.Minute), view.DepartureTime)

	_, err = svc.DelayFlight(ctx, "AA001", -5)
	assert.ErrorIs(t, err, flight.ErrBadDelay)
}

func TestSeatMap(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.GetSeatMap(context.Background(), "AA001")
	require.NoError(t, err)
	assert.Len(t, view.SeatCodes, 10)
	assert.Equal(t, "1A", view.SeatCodes[0])
}

func TestSetCrewStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCrewStatus(ctx, "P001", "ON_LEAVE"))
	err := svc.SetCrewStatus(ctx, "P001", "SABBATICAL")
	assert.ErrorIs(t, err, ErrInvalidInput)
	err = svc.SetCrewStatus(ctx, "NOBODY", "ON_LEAVE")
	assert.ErrorIs(t, err, ErrCrewNotFound)
}
