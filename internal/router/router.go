package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cocopuff2234/airline-ops/internal/handlers"
	"github.com/cocopuff2234/airline-ops/internal/websocket"
)

// SetupRouter creates and configures the HTTP router. hub may be nil to
// disable the websocket endpoint.
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Airports
	api.HandleFunc("/airports", h.CreateAirport).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/airports/{id}", h.GetAirport).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airports/{id}/gates/release", h.ReleaseGate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/airports/{id}/gates/available", h.FindAvailableGate).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airports/{id}/departures", h.GetDepartures).Methods(http.MethodGet, http.MethodOptions)

	// Flights
	api.HandleFunc("/flights", h.CreateFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights/{number}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{number}/delay", h.DelayFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}/seats", h.GetSeatMap).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{number}/gate", h.AssignGate).Methods(http.MethodPost, http.MethodOptions)

	// Flight crew assignments
	api.HandleFunc("/flights/{number}/captain", h.AssignCaptain).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}/first-officer", h.AssignFirstOfficer).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}/attendants", h.AddAttendant).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}/attendants/{employeeId}", h.RemoveAttendant).Methods(http.MethodDelete, http.MethodOptions)

	// Crew roster
	api.HandleFunc("/crew/pilots", h.RegisterPilot).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/crew/attendants", h.RegisterCabinCrew).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/crew/{id}/status", h.SetCrewStatus).Methods(http.MethodPut, http.MethodOptions)

	// Customers
	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/customers/{id}", h.GetCustomer).Methods(http.MethodGet, http.MethodOptions)

	// Tickets
	api.HandleFunc("/tickets", h.BookTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tickets/{id}", h.GetTicket).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tickets/{id}", h.CancelTicket).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/tickets/{id}/purchase", h.PurchaseTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tickets/{id}/upgrade", h.UpgradeTicket).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for real-time flight updates
	if hub != nil {
		api.HandleFunc("/flights/{number}/ws", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, mux.Vars(r)["number"], w, r)
		})
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
