package booking

// ConflictError reports a booking the repository rejected because the slot was
// taken in the interim. The reason is safe to show to the customer.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// ValidationError reports a malformed booking request.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }
