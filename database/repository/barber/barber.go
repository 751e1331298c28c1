package barberRepo

import "barberbook/models"

// BarberRepository manages the barber roster.
type BarberRepository interface {
	GetAll() ([]models.Barber, error)
	GetByID(id int) (*models.Barber, error)
	Create(barber *models.Barber) error
	SetCheckedIn(id int, checkedIn bool) error
	CountCheckedIn() (int, error)
}
