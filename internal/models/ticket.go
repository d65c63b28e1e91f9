package models

import "time"

// TicketView is the API representation of a ticket
type TicketView struct {
	ID           string    `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	CustomerID   string    `json:"customerId"`
	FareClass    string    `json:"fareClass"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookTicketRequest represents a request to open a reservation
type BookTicketRequest struct {
	FlightNumber string `json:"flightNumber"`
	CustomerID   string `json:"customerId"`
	FareClass    string `json:"fareClass"`
}

// UpgradeTicketRequest represents a request to move a ticket to another
// fare class
type UpgradeTicketRequest struct {
	FareClass string `json:"fareClass"`
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerView is the API representation of a customer
type CustomerView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Balance float64      `json:"balance"`
	Tickets []TicketView `json:"tickets"`
}
