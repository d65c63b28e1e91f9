package database

import (
	"time"
)

// FlightRecord is the persisted snapshot of a flight. The in-memory core
// is the source of truth; these rows back reporting and restart recovery.
type FlightRecord struct {
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	AircraftType   string    `json:"aircraftType"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Gate           string    `json:"gate,omitempty"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TicketRecord is the persisted snapshot of a ticket
type TicketRecord struct {
	ID           string    `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	CustomerID   string    `json:"customerId"`
	FareClass    string    `json:"fareClass"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TicketEvent is one entry in the ticket audit trail
type TicketEvent struct {
	ID           int64     `json:"id"`
	TicketID     string    `json:"ticketId"`
	FlightNumber string    `json:"flightNumber"`
	EventType    string    `json:"eventType"`
	Detail       string    `json:"detail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
