package handlers

import (
	accountRepo "barberbook/database/repository/account"
)

// HandlerBundle groups the handlers and the repositories the route middleware
// needs, so route registration takes a single argument.
type HandlerBundle struct {
	AccountRepo accountRepo.AccountRepository

	Auth    *AuthHandler
	Barbers *BarberHandler
	Booking *BookingHandler
	Shifts  *ShiftHandler
}
