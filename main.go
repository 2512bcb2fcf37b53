package main

import (
	"log"

	"github.com/hoteldesk/reservation-service/config"
	"github.com/hoteldesk/reservation-service/internal/handler"
	"github.com/hoteldesk/reservation-service/internal/middleware"
	"github.com/hoteldesk/reservation-service/internal/repository"
	"github.com/hoteldesk/reservation-service/internal/service"
	"github.com/hoteldesk/reservation-service/pkg/database"
	"github.com/hoteldesk/reservation-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	if cfg.SeedDemoData {
		database.SeedDemoInventory(db)
	}

	// Booking lifecycle events for downstream notifiers; optional
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	// Repositories
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Service
	reservationSvc := service.NewReservationService(
		roomTypeRepo, roomRepo, guestRepo, bookingRepo, publisher,
		service.Options{
			ContactKeyKind:   cfg.ContactKeyKind,
			AllowPastCheckIn: cfg.AllowPastCheckIn,
		},
	)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
