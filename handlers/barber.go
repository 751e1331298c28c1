package handlers

import (
	"net/http"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/barber"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// BarberHandler serves the roster and the barber/owner dashboards.
type BarberHandler struct {
	Svc barber.Service
}

func NewBarberHandler(svc barber.Service) *BarberHandler {
	return &BarberHandler{Svc: svc}
}

// ListBarbers returns the public roster.
func (h *BarberHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.Svc.Roster()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load barbers", err.Error())
		return
	}
	if barbers == nil {
		barbers = []models.Barber{}
	}
	c.JSON(http.StatusOK, barbers)
}

// MyStats returns the authenticated barber's dashboard figures.
func (h *BarberHandler) MyStats(c *gin.Context) {
	barberID := c.GetInt(middleware.CtxBarberID)
	if barberID == 0 {
		utils.JSONError(c, http.StatusForbidden, "account is not linked to a barber", "")
		return
	}
	stats, err := h.Svc.StatsFor(barberID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load stats", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ToggleCheckIn flips the authenticated barber's availability.
func (h *BarberHandler) ToggleCheckIn(c *gin.Context) {
	barberID := c.GetInt(middleware.CtxBarberID)
	if barberID == 0 {
		utils.JSONError(c, http.StatusForbidden, "account is not linked to a barber", "")
		return
	}
	checkedIn, err := h.Svc.ToggleCheckIn(barberID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to toggle status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_checked_in": checkedIn})
}

// ShopStats returns the owner dashboard figures.
func (h *BarberHandler) ShopStats(c *gin.Context) {
	stats, err := h.Svc.ShopStats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load stats", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}
