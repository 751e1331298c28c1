package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "barberbook/database/repository/appointment"
	barberRepo "barberbook/database/repository/barber"
	"barberbook/models"
	"barberbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service records bookings and answers appointment queries.
type Service interface {
	Book(req models.BookingRequest) (*models.Appointment, error)
	AllAppointments() ([]models.Appointment, error)
	AppointmentsForBarber(barberID int) ([]models.Appointment, error)
	CancelAppointment(id string) error
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Barbers      barberRepo.BarberRepository
}

// Book validates the request and records the appointment. A taken slot comes
// back as ConflictError, malformed input as ValidationError.
func (s *DefaultBookingService) Book(req models.BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ValidationError{Reason: "customer name is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ValidationError{Reason: "Invalid date format"}
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ValidationError{Reason: "Invalid time format"}
	}
	if req.ServiceType != "" && !IsKnownService(req.ServiceType) {
		return nil, ValidationError{Reason: fmt.Sprintf("unknown service type %q", req.ServiceType)}
	}

	barber, err := s.Barbers.GetByID(req.BarberID)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, ValidationError{Reason: fmt.Sprintf("barber %d not found", req.BarberID)}
	}

	appt := &models.Appointment{
		ID:           uuid.New().String(),
		BarberID:     req.BarberID,
		CustomerName: name,
		Date:         req.Date,
		Time:         req.Time,
		ServiceType:  req.ServiceType,
	}
	if err := s.Appointments.Create(appt); err != nil {
		var slotTaken appointmentRepo.ErrSlotTaken
		if errors.As(err, &slotTaken) {
			logger.Info("booking conflict",
				zap.Int("barberID", req.BarberID),
				zap.String("date", req.Date),
				zap.String("time", req.Time))
			return nil, ConflictError{Reason: "Slot already booked"}
		}
		return nil, err
	}

	logger.Info("appointment booked",
		zap.String("id", appt.ID),
		zap.Int("barberID", appt.BarberID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return appt, nil
}

// AllAppointments returns every appointment on record.
func (s *DefaultBookingService) AllAppointments() ([]models.Appointment, error) {
	return s.Appointments.GetAll()
}

// AppointmentsForBarber returns one barber's appointments.
func (s *DefaultBookingService) AppointmentsForBarber(barberID int) ([]models.Appointment, error) {
	return s.Appointments.GetByBarber(barberID)
}

// CancelAppointment removes an appointment by id.
func (s *DefaultBookingService) CancelAppointment(id string) error {
	return s.Appointments.Delete(id)
}
