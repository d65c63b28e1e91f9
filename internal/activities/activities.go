package activities

import (
	"context"

	"go.temporal.io/sdk/activity"
)

// TicketStore is the slice of the booking service the activities need:
// expiring a pending reservation and reporting its current state.
type TicketStore interface {
	// ExpireTicket cancels the ticket if it is still pending. It returns
	// whether the cancel happened and the status the ticket ended in.
	ExpireTicket(ctx context.Context, ticketID string) (expired bool, status string, err error)
}

// EventRecorder persists ticket lifecycle events for auditing. A nil
// recorder disables persistence.
type EventRecorder interface {
	RecordTicketEvent(ctx context.Context, ticketID, flightNumber, eventType, detail string) error
}

// ExpireReservationInput identifies the reservation to expire
type ExpireReservationInput struct {
	TicketID     string `json:"ticketId"`
	FlightNumber string `json:"flightNumber"`
}

// ExpireReservationOutput reports what the expiry found
type ExpireReservationOutput struct {
	Expired bool   `json:"expired"`
	Status  string `json:"status"`
}

// Activities bundles the worker's activity implementations with their
// dependencies
type Activities struct {
	Store    TicketStore
	Recorder EventRecorder
}

func NewActivities(store TicketStore, recorder EventRecorder) *Activities {
	return &Activities{Store: store, Recorder: recorder}
}

// ExpireReservation cancels a pending ticket whose hold window closed.
// A ticket already confirmed or canceled is left untouched.
func (a *Activities) ExpireReservation(ctx context.Context, input ExpireReservationInput) (*ExpireReservationOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Expiring reservation", "ticketId", input.TicketID)

	expired, status, err := a.Store.ExpireTicket(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}

	if !expired {
		logger.Info("Reservation already finalized", "ticketId", input.TicketID, "status", status)
		return &ExpireReservationOutput{Expired: false, Status: status}, nil
	}

	if a.Recorder != nil {
		if err := a.Recorder.RecordTicketEvent(ctx, input.TicketID, input.FlightNumber, "expired", "hold window closed"); err != nil {
			logger.Error("Failed to record expiry event", "ticketId", input.TicketID, "error", err)
		}
	}

	logger.Info("Reservation expired", "ticketId", input.TicketID)
	return &ExpireReservationOutput{Expired: true, Status: status}, nil
}
