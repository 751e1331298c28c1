package workflow

import "errors"

var (
	// ErrClosed is returned for actions on a closed workflow.
	ErrClosed = errors.New("booking workflow is closed")
	// ErrUnknownBarber is returned when the chosen barber is not on the roster.
	ErrUnknownBarber = errors.New("barber is not on the roster")
	// ErrDateUnavailable is returned for past dates and the shop's closing day.
	ErrDateUnavailable = errors.New("date is not selectable")
	// ErrSlotsNotReady is returned when a slot is chosen while the slot list
	// is still loading or failed to load.
	ErrSlotsNotReady = errors.New("slot availability not loaded")
	// ErrSlotUnavailable is returned when the chosen label is not in the
	// current slot set.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrIncompleteDraft is returned by Submit when a required field is
	// missing or the customer name is blank.
	ErrIncompleteDraft = errors.New("booking selection is incomplete")
	// ErrSubmissionInFlight is returned when Submit is called while an
	// earlier submission is still outstanding.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)
