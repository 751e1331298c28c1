package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberbook/config"
	"barberbook/database"
	accountRepo "barberbook/database/repository/account"
	appointmentRepo "barberbook/database/repository/appointment"
	barberRepo "barberbook/database/repository/barber"
	shiftRepo "barberbook/database/repository/shift"
	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/routes"
	"barberbook/services/account"
	"barberbook/services/barber"
	"barberbook/services/booking"
	"barberbook/services/schedule"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	barbers := barberRepo.NewMongoBarberRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	shifts := shiftRepo.NewMongoShiftRepo()
	accounts := accountRepo.NewMongoAccountRepo()

	// services.
	accountService := &account.DefaultAccountService{
		Repo:      accounts,
		AuthCache: utils.GetAuthCacheClient(),
	}
	scheduleService := &schedule.DefaultScheduleService{
		Shifts:       shifts,
		Appointments: appointments,
		SlotMinutes:  config.AppConfig.SlotMinutes,
	}
	bookingService := &booking.DefaultBookingService{
		Appointments: appointments,
		Barbers:      barbers,
	}
	barberService := &barber.DefaultBarberService{
		Barbers:      barbers,
		Appointments: appointments,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AccountRepo: accounts,
		Auth:        handlers.NewAuthHandler(accountService),
		Barbers:     handlers.NewBarberHandler(barberService),
		Booking:     handlers.NewBookingHandler(bookingService, scheduleService, logger),
		Shifts:      handlers.NewShiftHandler(shifts),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
