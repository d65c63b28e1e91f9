package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cocopuff2234/airline-ops/internal/models"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateAirport(ctx context.Context, req *models.CreateAirportRequest) (*models.AirportView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AirportView), args.Error(1)
}

func (m *MockBookingService) GetAirport(ctx context.Context, id string) (*models.AirportView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AirportView), args.Error(1)
}

func (m *MockBookingService) AssignGate(ctx context.Context, airportID, flightNumber, gate string) error {
	args := m.Called(ctx, airportID, flightNumber, gate)
	return args.Error(0)
}

func (m *MockBookingService) ReleaseGate(ctx context.Context, airportID, gate string, asOf time.Time) error {
	args := m.Called(ctx, airportID, gate, asOf)
	return args.Error(0)
}

func (m *MockBookingService) FindAvailableGate(ctx context.Context, airportID string, minute time.Time) (*models.GateSuggestion, error) {
	args := m.Called(ctx, airportID, minute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GateSuggestion), args.Error(1)
}

func (m *MockBookingService) GetDepartures(ctx context.Context, airportID string, date time.Time) ([]*models.FlightView, error) {
	args := m.Called(ctx, airportID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FlightView), args.Error(1)
}

func (m *MockBookingService) CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.FlightView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightView), args.Error(1)
}

func (m *MockBookingService) GetFlights(ctx context.Context) []*models.FlightView {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*models.FlightView)
}

func (m *MockBookingService) GetFlight(ctx context.Context, number string) (*models.FlightView, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightView), args.Error(1)
}

func (m *MockBookingService) DelayFlight(ctx context.Context, number string, minutes int) (*models.FlightView, error) {
	args := m.Called(ctx, number, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightView), args.Error(1)
}

func (m *MockBookingService) GetSeatMap(ctx context.Context, number string) (*models.SeatMapView, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SeatMapView), args.Error(1)
}

func (m *MockBookingService) RegisterPilot(ctx context.Context, req *models.RegisterPilotRequest) (*models.CrewMemberView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CrewMemberView), args.Error(1)
}

func (m *MockBookingService) RegisterCabinCrew(ctx context.Context, req *models.RegisterCabinCrewRequest) (*models.CrewMemberView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CrewMemberView), args.Error(1)
}

func (m *MockBookingService) SetCrewStatus(ctx context.Context, employeeID, status string) error {
	args := m.Called(ctx, employeeID, status)
	return args.Error(0)
}

func (m *MockBookingService) AssignCaptain(ctx context.Context, flightNumber, employeeID string) error {
	args := m.Called(ctx, flightNumber, employeeID)
	return args.Error(0)
}

func (m *MockBookingService) AssignFirstOfficer(ctx context.Context, flightNumber, employeeID string) error {
	args := m.Called(ctx, flightNumber, employeeID)
	return args.Error(0)
}

func (m *MockBookingService) AddAttendant(ctx context.Context, flightNumber, employeeID string) error {
	args := m.Called(ctx, flightNumber, employeeID)
	return args.Error(0)
}

func (m *MockBookingService) RemoveAttendant(ctx context.Context, flightNumber, employeeID string) error {
	args := m.Called(ctx, flightNumber, employeeID)
	return args.Error(0)
}

func (m *MockBookingService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerView), args.Error(1)
}

func (m *MockBookingService) GetCustomer(ctx context.Context, id string) (*models.CustomerView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerView), args.Error(1)
}

func (m *MockBookingService) BookTicket(ctx context.Context, req *models.BookTicketRequest) (*models.TicketView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketView), args.Error(1)
}

func (m *MockBookingService) GetTicket(ctx context.Context, id string) (*models.TicketView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketView), args.Error(1)
}

func (m *MockBookingService) PurchaseTicket(ctx context.Context, id string) (*models.TicketView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketView), args.Error(1)
}

func (m *MockBookingService) CancelTicket(ctx context.Context, id string) (*models.TicketView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketView), args.Error(1)
}

func (m *MockBookingService) UpgradeTicket(ctx context.Context, id, fareClass string) (*models.TicketView, error) {
	args := m.Called(ctx, id, fareClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketView), args.Error(1)
}

func (m *MockBookingService) ExpireTicket(ctx context.Context, id string) (bool, string, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.String(1), args.Error(2)
}
