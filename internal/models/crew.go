package models

import "time"

// RegisterPilotRequest represents a request to add a pilot to the roster
type RegisterPilotRequest struct {
	EmployeeID  string    `json:"employeeId"`
	FullName    string    `json:"fullName"`
	HiredOn     time.Time `json:"hiredOn"`
	BaseAirport string    `json:"baseAirport"`
	Rank        string    `json:"rank"`
	TypeRatings []string  `json:"typeRatings"`
	FlightHours int       `json:"flightHours"`
}

// RegisterCabinCrewRequest represents a request to add a flight attendant
type RegisterCabinCrewRequest struct {
	EmployeeID     string    `json:"employeeId"`
	FullName       string    `json:"fullName"`
	HiredOn        time.Time `json:"hiredOn"`
	BaseAirport    string    `json:"baseAirport"`
	Position       string    `json:"position"`
	Qualifications []string  `json:"qualifications"`
}

// AssignCrewRequest names the crew member to put on a flight
type AssignCrewRequest struct {
	EmployeeID string `json:"employeeId"`
}

// SetCrewStatusRequest represents a duty status change
type SetCrewStatusRequest struct {
	Status string `json:"status"`
}

// CrewMemberView is the API representation of a crew member
type CrewMemberView struct {
	EmployeeID  string   `json:"employeeId"`
	FullName    string   `json:"fullName"`
	BaseAirport string   `json:"baseAirport"`
	Status      string   `json:"status"`
	Role        string   `json:"role"`
	Rank        string   `json:"rank,omitempty"`
	Position    string   `json:"position,omitempty"`
	Ratings     []string `json:"ratings"`
	FlightHours int      `json:"flightHours,omitempty"`
}
