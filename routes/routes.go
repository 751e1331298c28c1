package routes

import (
	"net/http"
	"time"

	"barberbook/handlers"
	"barberbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the customer-facing booking endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/barbers", hb.Barbers.ListBarbers)
		api.GET("/services", hb.Booking.ListServices)
		api.GET("/slots", hb.Booking.GetSlots)
		api.POST("/book", hb.Booking.Book)
		api.POST("/login", hb.Auth.Login)
	}
}

// RegisterStaffRoutes registers endpoints for authenticated staff.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo))
	{
		api.GET("/users/me", hb.Auth.Me)
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/appointments", hb.Booking.ListAppointments)
		api.GET("/barbers/me/stats", hb.Barbers.MyStats)
		api.POST("/barbers/me/checkin", hb.Barbers.ToggleCheckIn)
	}
}

// RegisterOwnerRoutes registers owner-only administration endpoints.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo), middleware.RequireOwner())
	{
		api.DELETE("/appointments/:id", hb.Booking.DeleteAppointment)
		api.POST("/shifts", hb.Shifts.SaveShift)
		api.GET("/shifts", hb.Shifts.GetShifts)
		api.GET("/admin/stats", hb.Barbers.ShopStats)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterHealthRoute(r)
}
