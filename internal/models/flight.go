package models

import "time"

// FlightView is the API representation of a flight
type FlightView struct {
	FlightNumber     string    `json:"flightNumber"`
	Airline          string    `json:"airline"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	AircraftType     string    `json:"aircraftType"`
	DepartureTime    time.Time `json:"departureTime"`
	ArrivalTime      time.Time `json:"arrivalTime"`
	DurationMinutes  int       `json:"durationMinutes"`
	Gate             string    `json:"gate,omitempty"`
	Status           string    `json:"status"`
	TotalSeats       int       `json:"totalSeats"`
	AvailableSeats   int       `json:"availableSeats"`
	FirstAvailable   int       `json:"firstAvailable"`
	EconomyAvailable int       `json:"economyAvailable"`
	HasRequiredCrew  bool      `json:"hasRequiredCrew"`
}

// SeatMapView is the generated seat map for a flight
type SeatMapView struct {
	FlightNumber   string   `json:"flightNumber"`
	AircraftType   string   `json:"aircraftType"`
	SeatCodes      []string `json:"seatCodes"`
	AvailableSeats int      `json:"availableSeats"`
}

// CreateFlightRequest represents a request to schedule a new flight
type CreateFlightRequest struct {
	FlightNumber  string    `json:"flightNumber"`
	Airline       string    `json:"airline"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	AircraftType  string    `json:"aircraftType"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Capacity      int       `json:"capacity"`
	FirstPrice    float64   `json:"firstPrice"`
	EconomyPrice  float64   `json:"economyPrice"`
	MinAttendants int       `json:"minAttendants"`
}

// DelayFlightRequest represents a request to push a flight's schedule back
type DelayFlightRequest struct {
	Minutes int `json:"minutes"`
}

// AssignGateRequest represents a request to assign a departure gate
type AssignGateRequest struct {
	Airport string `json:"airport"`
	Gate    string `json:"gate"`
}

// ReleaseGateRequest represents a request to sweep a gate free of departed
// flights
type ReleaseGateRequest struct {
	Gate string    `json:"gate"`
	AsOf time.Time `json:"asOf"`
}

// CreateAirportRequest represents a request to register an airport
type CreateAirportRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Terminals []string `json:"terminals"`
	Gates     []string `json:"gates"`
}

// AirportView is the API representation of an airport
type AirportView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Terminals []string `json:"terminals"`
	Gates     []string `json:"gates"`
}

// GateSuggestion is the result of a free-gate search
type GateSuggestion struct {
	Airport string    `json:"airport"`
	Gate    string    `json:"gate"`
	Minute  time.Time `json:"minute"`
}
