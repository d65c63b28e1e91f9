package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/cocopuff2234/airline-ops/internal/airport"
	"github.com/cocopuff2234/airline-ops/internal/booking"
	"github.com/cocopuff2234/airline-ops/internal/database"
	"github.com/cocopuff2234/airline-ops/internal/flight"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
	"github.com/cocopuff2234/airline-ops/internal/models"
	"github.com/cocopuff2234/airline-ops/internal/service"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService) *Handler {
	return &Handler{
		bookingService: bookingService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFlightNotFound),
		errors.Is(err, service.ErrAirportNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrCrewNotFound),
		errors.Is(err, airport.ErrUnknownGate),
		errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateFlight),
		errors.Is(err, service.ErrDuplicateAirport),
		errors.Is(err, service.ErrDuplicateCustomer),
		errors.Is(err, service.ErrDuplicateCrew),
		errors.Is(err, airport.ErrGateConflict),
		errors.Is(err, airport.ErrNoGateAvailable),
		errors.Is(err, inventory.ErrSoldOut),
		errors.Is(err, booking.ErrNoCrew),
		errors.Is(err, booking.ErrPlaneNotOperable),
		errors.Is(err, booking.ErrNotPending),
		errors.Is(err, booking.ErrCanceled),
		errors.Is(err, flight.ErrCrewUnavailable),
		errors.Is(err, flight.ErrWrongRank),
		errors.Is(err, flight.ErrNotRated),
		errors.Is(err, flight.ErrDuplicateAttendant):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, inventory.ErrUnknownFareClass),
		errors.Is(err, inventory.ErrBadCapacity),
		errors.Is(err, flight.ErrBadDelay),
		errors.Is(err, flight.ErrBadSchedule):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Airports ---

// CreateAirport handles POST /api/airports
func (h *Handler) CreateAirport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAirportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.bookingService.CreateAirport(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GetAirport handles GET /api/airports/{id}
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.bookingService.GetAirport(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ReleaseGate handles POST /api/airports/{id}/gates/release
func (h *Handler) ReleaseGate(w http.ResponseWriter, r *http.Request) {
	airportID := mux.Vars(r)["id"]

	var req models.ReleaseGateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Gate == "" {
		respondError(w, http.StatusBadRequest, "Gate is required")
		return
	}

	if err := h.bookingService.ReleaseGate(r.Context(), airportID, req.Gate, req.AsOf); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Gate released"})
}

// FindAvailableGate handles GET /api/airports/{id}/gates/available?minute=RFC3339
func (h *Handler) FindAvailableGate(w http.ResponseWriter, r *http.Request) {
	airportID := mux.Vars(r)["id"]

	minute := time.Now()
	if raw := r.URL.Query().Get("minute"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "minute must be RFC3339")
			return
		}
		minute = parsed
	}

	suggestion, err := h.bookingService.FindAvailableGate(r.Context(), airportID, minute)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestion)
}

// GetDepartures handles GET /api/airports/{id}/departures?date=2006-01-02
func (h *Handler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	airportID := mux.Vars(r)["id"]

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	views, err := h.bookingService.GetDepartures(r.Context(), airportID, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// --- Flights ---

// CreateFlight handles POST /api/flights
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightNumber == "" {
		respondError(w, http.StatusBadRequest, "Flight number is required")
		return
	}

	view, err := h.bookingService.CreateFlight(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	flights := h.bookingService.GetFlights(r.Context())
	respondJSON(w, http.StatusOK, flights)
}

// GetFlight handles GET /api/flights/{number}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	view, err := h.bookingService.GetFlight(r.Context(), number)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// DelayFlight handles POST /api/flights/{number}/delay
func (h *Handler) DelayFlight(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	var req models.DelayFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.bookingService.DelayFlight(r.Context(), number, req.Minutes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetSeatMap handles GET /api/flights/{number}/seats
func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	view, err := h.bookingService.GetSeatMap(r.Context(), number)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// AssignGate handles POST /api/flights/{number}/gate
func (h *Handler) AssignGate(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	var req models.AssignGateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Airport == "" || req.Gate == "" {
		respondError(w, http.StatusBadRequest, "Airport and gate are required")
		return
	}

	if err := h.bookingService.AssignGate(r.Context(), req.Airport, number, req.Gate); err != nil {
		respondServiceError(w, err)
		return
	}

	view, err := h.bookingService.GetFlight(r.Context(), number)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// --- Crew ---

// RegisterPilot handles POST /api/crew/pilots
func (h *Handler) RegisterPilot(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterPilotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		respondError(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	view, err := h.bookingService.RegisterPilot(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// RegisterCabinCrew handles POST /api/crew/attendants
func (h *Handler) RegisterCabinCrew(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCabinCrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		respondError(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	view, err := h.bookingService.RegisterCabinCrew(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// SetCrewStatus handles PUT /api/crew/{id}/status
func (h *Handler) SetCrewStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["id"]

	var req models.SetCrewStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.bookingService.SetCrewStatus(r.Context(), employeeID, req.Status); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

// AssignCaptain handles POST /api/flights/{number}/captain
func (h *Handler) AssignCaptain(w http.ResponseWriter, r *http.Request) {
	h.assignCrew(w, r, h.bookingService.AssignCaptain)
}

// AssignFirstOfficer handles POST /api/flights/{number}/first-officer
func (h *Handler) AssignFirstOfficer(w http.ResponseWriter, r *http.Request) {
	h.assignCrew(w, r, h.bookingService.AssignFirstOfficer)
}

// AddAttendant handles POST /api/flights/{number}/attendants
func (h *Handler) AddAttendant(w http.ResponseWriter, r *http.Request) {
	h.assignCrew(w, r, h.bookingService.AddAttendant)
}

func (h *Handler) assignCrew(w http.ResponseWriter, r *http.Request, assign func(ctx context.Context, flightNumber, employeeID string) error) {
	number := mux.Vars(r)["number"]

	var req models.AssignCrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		respondError(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	if err := assign(r.Context(), number, req.EmployeeID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Crew assigned"})
}

// RemoveAttendant handles DELETE /api/flights/{number}/attendants/{employeeId}
func (h *Handler) RemoveAttendant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.bookingService.RemoveAttendant(r.Context(), vars["number"], vars["employeeId"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Attendant removed"})
}

// --- Customers ---

// CreateCustomer handles POST /api/customers
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "Customer ID is required")
		return
	}

	view, err := h.bookingService.CreateCustomer(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GetCustomer handles GET /api/customers/{id}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.bookingService.GetCustomer(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// --- Tickets ---

// BookTicket handles POST /api/tickets
func (h *Handler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req models.BookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightNumber == "" {
		respondError(w, http.StatusBadRequest, "Flight number is required")
		return
	}
	if req.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "Customer ID is required")
		return
	}

	view, err := h.bookingService.BookTicket(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GetTicket handles GET /api/tickets/{id}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.bookingService.GetTicket(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// PurchaseTicket handles POST /api/tickets/{id}/purchase
func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.bookingService.PurchaseTicket(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// CancelTicket handles DELETE /api/tickets/{id}. Canceling an already
// canceled ticket reports the no-op instead of failing.
func (h *Handler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.bookingService.CancelTicket(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyCanceled) {
			respondJSON(w, http.StatusOK, map[string]string{"message": "Ticket already canceled"})
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// UpgradeTicket handles POST /api/tickets/{id}/upgrade
func (h *Handler) UpgradeTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpgradeTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FareClass == "" {
		respondError(w, http.StatusBadRequest, "Fare class is required")
		return
	}

	view, err := h.bookingService.UpgradeTicket(r.Context(), id, req.FareClass)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
