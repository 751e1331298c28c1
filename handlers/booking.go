package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/booking"
	"barberbook/services/schedule"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot availability, booking, and appointment review.
type BookingHandler struct {
	Booking  booking.Service
	Schedule schedule.Service
	Logger   *zap.Logger
}

func NewBookingHandler(bookingSvc booking.Service, scheduleSvc schedule.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Booking: bookingSvc, Schedule: scheduleSvc, Logger: logger}
}

// GetSlots returns the free slot labels for ?barber_id=&date=YYYY-MM-DD.
func (h *BookingHandler) GetSlots(c *gin.Context) {
	barberID, err := strconv.Atoi(c.Query("barber_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "barber_id must be an integer", "")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date is required", "")
		return
	}

	slots, err := h.Schedule.FreeSlots(barberID, date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to compute slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, slots)
}

// Book records an appointment from a JSON body.
func (h *BookingHandler) Book(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	appt, err := h.Booking.Book(req)
	if err != nil {
		var conflict booking.ConflictError
		var invalid booking.ValidationError
		switch {
		case errors.As(err, &conflict):
			utils.JSONError(c, http.StatusConflict, conflict.Reason, "")
		case errors.As(err, &invalid):
			utils.JSONError(c, http.StatusBadRequest, invalid.Reason, "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to book appointment", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking successful", "appointment": appt})
}

// ListAppointments returns all appointments for the owner, or the
// authenticated barber's own.
func (h *BookingHandler) ListAppointments(c *gin.Context) {
	var (
		appts []models.Appointment
		err   error
	)
	switch c.GetString(middleware.CtxRole) {
	case models.RoleOwner:
		appts, err = h.Booking.AllAppointments()
	case models.RoleBarber:
		barberID := c.GetInt(middleware.CtxBarberID)
		if barberID == 0 {
			c.JSON(http.StatusOK, []models.Appointment{})
			return
		}
		appts, err = h.Booking.AppointmentsForBarber(barberID)
	default:
		c.JSON(http.StatusOK, []models.Appointment{})
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load appointments", err.Error())
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// DeleteAppointment cancels an appointment. Owner only (enforced by route).
func (h *BookingHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.Booking.CancelAppointment(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", err.Error())
		return
	}
	h.Logger.Info("appointment cancelled", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// ListServices returns the service catalogue.
func (h *BookingHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, booking.ServicesCatalog())
}
