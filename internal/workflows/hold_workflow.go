package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/cocopuff2234/airline-ops/internal/activities"
)

const (
	// ReservationHoldDuration is how long a pending ticket is held before
	// it is expired automatically
	ReservationHoldDuration = 15 * time.Minute

	// FinalizedSignal is sent when the ticket leaves the pending state
	// through a purchase or an explicit cancel
	FinalizedSignal = "reservation-finalized"

	// HoldStateQuery returns the hold's current state: "holding" while the
	// window is open, then the outcome
	HoldStateQuery = "hold-state"
)

// HoldWorkflowInput is the input for the reservation hold workflow
type HoldWorkflowInput struct {
	TicketID     string        `json:"ticketId"`
	FlightNumber string        `json:"flightNumber"`
	HoldFor      time.Duration `json:"holdFor,omitempty"`
}

// HoldWorkflowResult is the result of the reservation hold workflow
type HoldWorkflowResult struct {
	Expired bool   `json:"expired"`
	Outcome string `json:"outcome"`
}

// FinalizedSignalPayload carries the terminal state the ticket reached
// on its own: "confirmed" or "canceled"
type FinalizedSignalPayload struct {
	Outcome string `json:"outcome"`
}

// ReservationHoldWorkflow watches one pending ticket. It waits for the
// finalized signal or, failing that, expires the reservation when the
// hold window closes. Purchases and cancels themselves happen
// synchronously in the API; the workflow only backs the timeout.
func ReservationHoldWorkflow(ctx workflow.Context, input HoldWorkflowInput) (*HoldWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Reservation hold started", "ticketId", input.TicketID, "flight", input.FlightNumber)

	state := "holding"
	if err := workflow.SetQueryHandler(ctx, HoldStateQuery, func() (string, error) {
		return state, nil
	}); err != nil {
		return nil, err
	}

	holdFor := input.HoldFor
	if holdFor <= 0 {
		holdFor = ReservationHoldDuration
	}

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	finalizedCh := workflow.GetSignalChannel(ctx, FinalizedSignal)

	var finalized *FinalizedSignalPayload
	timerFired := false

	selector := workflow.NewSelector(ctx)
	selector.AddReceive(finalizedCh, func(c workflow.ReceiveChannel, more bool) {
		var payload FinalizedSignalPayload
		c.Receive(ctx, &payload)
		finalized = &payload
	})
	selector.AddFuture(workflow.NewTimer(ctx, holdFor), func(f workflow.Future) {
		timerFired = true
	})
	selector.Select(ctx)

	if finalized != nil {
		logger.Info("Reservation finalized", "ticketId", input.TicketID, "outcome", finalized.Outcome)
		state = finalized.Outcome
		return &HoldWorkflowResult{Outcome: finalized.Outcome}, nil
	}

	if timerFired {
		logger.Info("Hold window closed, expiring reservation", "ticketId", input.TicketID)

		var out activities.ExpireReservationOutput
		err := workflow.ExecuteActivity(ctx, "ExpireReservation", activities.ExpireReservationInput{
			TicketID:     input.TicketID,
			FlightNumber: input.FlightNumber,
		}).Get(ctx, &out)
		if err != nil {
			logger.Error("Failed to expire reservation", "ticketId", input.TicketID, "error", err)
			return nil, err
		}

		// The ticket may have been finalized in the race between the
		// timer and the signal; the activity reports what it found.
		if !out.Expired {
			state = out.Status
			return &HoldWorkflowResult{Outcome: out.Status}, nil
		}
		state = "expired"
		return &HoldWorkflowResult{Expired: true, Outcome: "expired"}, nil
	}

	// Workflow cancellation: leave the ticket alone.
	return &HoldWorkflowResult{Outcome: "abandoned"}, ctx.Err()
}
