package handlers

import (
	"net/http"
	"strconv"

	shiftRepo "barberbook/database/repository/shift"
	"barberbook/models"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// ShiftHandler serves the weekly shift editor.
type ShiftHandler struct {
	Shifts shiftRepo.ShiftRepository
}

func NewShiftHandler(shifts shiftRepo.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{Shifts: shifts}
}

// SaveShift replaces the shift for a (barber, weekday) pair.
func (h *ShiftHandler) SaveShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid shift", err.Error())
		return
	}
	if shift.Weekday < 0 || shift.Weekday > 6 {
		utils.JSONError(c, http.StatusBadRequest, "weekday must be 0 (Monday) through 6 (Sunday)", "")
		return
	}
	if shift.StartHour < 0 || shift.EndHour > 24 || shift.EndHour <= shift.StartHour {
		utils.JSONError(c, http.StatusBadRequest, "shift hours must satisfy 0 <= start < end <= 24", "")
		return
	}

	if err := h.Shifts.Save(&shift); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save shift", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift saved"})
}

// GetShifts returns a barber's weekly schedule for ?barber_id=.
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	barberID, err := strconv.Atoi(c.Query("barber_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "barber_id must be an integer", "")
		return
	}
	shifts, err := h.Shifts.GetByBarber(barberID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load shifts", err.Error())
		return
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	c.JSON(http.StatusOK, shifts)
}
