package schedule

import (
	"fmt"
	"time"

	appointmentRepo "barberbook/database/repository/appointment"
	shiftRepo "barberbook/database/repository/shift"
	"barberbook/models"
)

// Service computes bookable slot labels for a (barber, date) pair.
type Service interface {
	FreeSlots(barberID int, date string) ([]string, error)
}

// DefaultScheduleService implements Service on top of the shift and
// appointment repositories.
type DefaultScheduleService struct {
	Shifts       shiftRepo.ShiftRepository
	Appointments appointmentRepo.AppointmentRepository
	SlotMinutes  int
}

// ShopWeekday converts a calendar day to the shop's weekday convention
// (0=Monday .. 6=Sunday).
func ShopWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FreeSlots returns the free slot labels for the barber on the given
// YYYY-MM-DD date. A barber with no shift that weekday yields an empty list.
func (s *DefaultScheduleService) FreeSlots(barberID int, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	shift, err := s.Shifts.GetByBarberAndWeekday(barberID, ShopWeekday(day))
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return []string{}, nil
	}

	appts, err := s.Appointments.GetByBarberAndDate(barberID, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(appts))
	for _, a := range appts {
		booked[a.Time] = true
	}

	return BuildDaySlots(shift, booked, s.slotMinutes()), nil
}

func (s *DefaultScheduleService) slotMinutes() int {
	if s.SlotMinutes <= 0 {
		return 30
	}
	return s.SlotMinutes
}

// BuildDaySlots expands a shift into slot labels at the given granularity and
// drops the booked ones. Labels run from StartHour inclusive to EndHour
// exclusive.
func BuildDaySlots(shift *models.Shift, booked map[string]bool, slotMinutes int) []string {
	slots := []string{}
	if shift.EndHour <= shift.StartHour {
		return slots
	}
	for m := shift.StartHour * 60; m < shift.EndHour*60; m += slotMinutes {
		label := fmt.Sprintf("%02d:%02d", m/60, m%60)
		if !booked[label] {
			slots = append(slots, label)
		}
	}
	return slots
}
