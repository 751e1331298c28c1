package appointmentRepo

import "barberbook/models"

// ErrSlotTaken is returned by Create when the (barber, date, time) triple is
// already booked.
type ErrSlotTaken struct{}

func (ErrSlotTaken) Error() string { return "slot already booked" }

// AppointmentRepository manages booked appointments.
type AppointmentRepository interface {
	// Create inserts the appointment, failing with ErrSlotTaken when the slot
	// is no longer free. The uniqueness check is atomic (unique index).
	Create(appt *models.Appointment) error
	GetAll() ([]models.Appointment, error)
	GetByBarber(barberID int) ([]models.Appointment, error)
	GetByBarberAndDate(barberID int, date string) ([]models.Appointment, error)
	GetByDate(date string) ([]models.Appointment, error)
	Delete(id string) error
}
