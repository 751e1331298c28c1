package shiftRepo

import "barberbook/models"

// ShiftRepository manages weekly staff shifts. There is at most one shift per
// (barber, weekday); saving replaces any existing one.
type ShiftRepository interface {
	Save(shift *models.Shift) error
	GetByBarberAndWeekday(barberID, weekday int) (*models.Shift, error)
	GetByBarber(barberID int) ([]models.Shift, error)
}
