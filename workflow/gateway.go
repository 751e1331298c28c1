package workflow

import (
	"context"

	"barberbook/models"
)

// Gateway is the booking service boundary the workflow talks to. The HTTP
// client in package client implements it; tests use fakes.
type Gateway interface {
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	ListSlots(ctx context.Context, barberID int, date string) ([]string, error)
	// SubmitBooking either records the booking or returns an error; a
	// *SubmissionError carries a reason fit to show the customer. The call is
	// not idempotent and must not be retried automatically.
	SubmitBooking(ctx context.Context, req models.BookingRequest) error
}

// SubmissionError is a structured rejection from the gateway.
type SubmissionError struct {
	Reason string
}

func (e *SubmissionError) Error() string { return e.Reason }
