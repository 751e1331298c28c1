package barber

import (
	"fmt"
	"time"

	appointmentRepo "barberbook/database/repository/appointment"
	barberRepo "barberbook/database/repository/barber"
	"barberbook/models"
	"barberbook/services/booking"
)

// Service answers roster queries and dashboard stats.
type Service interface {
	Roster() ([]models.Barber, error)
	ToggleCheckIn(barberID int) (bool, error)
	StatsFor(barberID int) (*models.BarberStats, error)
	ShopStats() (*models.ShopStats, error)
}

// DefaultBarberService implements Service.
type DefaultBarberService struct {
	Barbers      barberRepo.BarberRepository
	Appointments appointmentRepo.AppointmentRepository

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBarberService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Roster returns the active barbers.
func (s *DefaultBarberService) Roster() ([]models.Barber, error) {
	return s.Barbers.GetAll()
}

// ToggleCheckIn flips the barber's availability flag and returns the new state.
func (s *DefaultBarberService) ToggleCheckIn(barberID int) (bool, error) {
	b, err := s.Barbers.GetByID(barberID)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, fmt.Errorf("barber %d not found", barberID)
	}
	next := !b.IsCheckedIn
	if err := s.Barbers.SetCheckedIn(barberID, next); err != nil {
		return false, err
	}
	return next, nil
}

// StatsFor computes the barber dashboard figures from today's appointments.
// Served counts slots whose label is already behind the clock; the queue is
// the remaining slots at 30 minutes each.
func (s *DefaultBarberService) StatsFor(barberID int) (*models.BarberStats, error) {
	b, err := s.Barbers.GetByID(barberID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("barber %d not found", barberID)
	}

	now := s.now()
	today := now.Format("2006-01-02")
	appts, err := s.Appointments.GetByBarberAndDate(barberID, today)
	if err != nil {
		return nil, err
	}

	stats := &models.BarberStats{
		Name:        b.Name,
		IsCheckedIn: b.IsCheckedIn,
	}
	clock := now.Format("15:04")
	for _, a := range appts {
		if a.Time <= clock {
			stats.CustomersServedToday++
			stats.TotalEarnedToday += booking.ServicePrice(a.ServiceType)
		} else {
			stats.QueueDurationMinutes += 30
		}
	}
	return stats, nil
}

// ShopStats computes the owner dashboard figures across all appointments.
func (s *DefaultBarberService) ShopStats() (*models.ShopStats, error) {
	appts, err := s.Appointments.GetAll()
	if err != nil {
		return nil, err
	}
	active, err := s.Barbers.CountCheckedIn()
	if err != nil {
		return nil, err
	}

	stats := &models.ShopStats{
		TotalBookings: len(appts),
		ActiveBarbers: active,
	}
	for _, a := range appts {
		stats.Revenue += booking.ServicePrice(a.ServiceType)
	}
	return stats, nil
}
