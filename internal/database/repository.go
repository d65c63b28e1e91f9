package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Repository handles all database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist yet
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS flights (
			flight_number   TEXT PRIMARY KEY,
			airline         TEXT NOT NULL,
			origin          TEXT NOT NULL,
			destination     TEXT NOT NULL,
			aircraft_type   TEXT NOT NULL,
			departure_time  TIMESTAMPTZ NOT NULL,
			arrival_time    TIMESTAMPTZ NOT NULL,
			gate            TEXT NOT NULL DEFAULT '',
			total_seats     INT NOT NULL,
			available_seats INT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS tickets (
			id            TEXT PRIMARY KEY,
			flight_number TEXT NOT NULL REFERENCES flights(flight_number),
			customer_id   TEXT NOT NULL,
			fare_class    TEXT NOT NULL,
			price         DOUBLE PRECISION NOT NULL,
			status        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS ticket_events (
			id            BIGSERIAL PRIMARY KEY,
			ticket_id     TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			event_type    TEXT NOT NULL,
			detail        TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// --- Flight Operations ---

// UpsertFlight writes the current flight snapshot, keyed by flight number
func (r *Repository) UpsertFlight(ctx context.Context, f FlightRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO flights (flight_number, airline, origin, destination, aircraft_type,
		                     departure_time, arrival_time, gate, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (flight_number) DO UPDATE SET
			departure_time = EXCLUDED.departure_time,
			arrival_time = EXCLUDED.arrival_time,
			gate = EXCLUDED.gate,
			available_seats = EXCLUDED.available_seats,
			updated_at = NOW()
	`, f.FlightNumber, f.Airline, f.Origin, f.Destination, f.AircraftType,
		f.DepartureTime, f.ArrivalTime, f.Gate, f.TotalSeats, f.AvailableSeats)
	if err != nil {
		return fmt.Errorf("failed to upsert flight: %w", err)
	}
	return nil
}

// GetFlightByNumber returns one flight snapshot
func (r *Repository) GetFlightByNumber(ctx context.Context, number string) (*FlightRecord, error) {
	query := `
		SELECT flight_number, airline, origin, destination, aircraft_type,
		       departure_time, arrival_time, gate, total_seats, available_seats,
		       created_at, updated_at
		FROM flights
		WHERE flight_number = $1
	`

	var f FlightRecord
	err := r.pool.QueryRow(ctx, query, number).Scan(
		&f.FlightNumber, &f.Airline, &f.Origin, &f.Destination, &f.AircraftType,
		&f.DepartureTime, &f.ArrivalTime, &f.Gate, &f.TotalSeats, &f.AvailableSeats,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return &f, nil
}

// GetAllFlights returns all flight snapshots ordered by departure
func (r *Repository) GetAllFlights(ctx context.Context) ([]FlightRecord, error) {
	query := `
		SELECT flight_number, airline, origin, destination, aircraft_type,
		       departure_time, arrival_time, gate, total_seats, available_seats,
		       created_at, updated_at
		FROM flights
		ORDER BY departure_time ASC, flight_number ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []FlightRecord
	for rows.Next() {
		var f FlightRecord
		err := rows.Scan(
			&f.FlightNumber, &f.Airline, &f.Origin, &f.Destination, &f.AircraftType,
			&f.DepartureTime, &f.ArrivalTime, &f.Gate, &f.TotalSeats, &f.AvailableSeats,
			&f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}

	return flights, nil
}

// --- Ticket Operations ---

// SaveTicket writes the current ticket snapshot
func (r *Repository) SaveTicket(ctx context.Context, t TicketRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (id, flight_number, customer_id, fare_class, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			fare_class = EXCLUDED.fare_class,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			updated_at = NOW()
	`, t.ID, t.FlightNumber, t.CustomerID, t.FareClass, t.Price, t.Status)
	if err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return nil
}

// GetTicketByID returns one ticket snapshot
func (r *Repository) GetTicketByID(ctx context.Context, id string) (*TicketRecord, error) {
	query := `
		SELECT id, flight_number, customer_id, fare_class, price, status, created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	var t TicketRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.FlightNumber, &t.CustomerID, &t.FareClass, &t.Price, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &t, nil
}

// --- Ticket Event Operations ---

// RecordTicketEvent appends one entry to the ticket audit trail
func (r *Repository) RecordTicketEvent(ctx context.Context, ticketID, flightNumber, eventType, detail string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ticket_events (ticket_id, flight_number, event_type, detail)
		VALUES ($1, $2, $3, $4)
	`, ticketID, flightNumber, eventType, detail)
	if err != nil {
		return fmt.Errorf("failed to record ticket event: %w", err)
	}
	return nil
}

// ListTicketEvents returns the audit trail for one ticket, oldest first
func (r *Repository) ListTicketEvents(ctx context.Context, ticketID string) ([]TicketEvent, error) {
	query := `
		SELECT id, ticket_id, flight_number, event_type, detail, created_at
		FROM ticket_events
		WHERE ticket_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket events: %w", err)
	}
	defer rows.Close()

	var events []TicketEvent
	for rows.Next() {
		var e TicketEvent
		if err := rows.Scan(&e.ID, &e.TicketID, &e.FlightNumber, &e.EventType, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}
