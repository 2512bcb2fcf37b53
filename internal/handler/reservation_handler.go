package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hoteldesk/reservation-service/internal/dto"
	"github.com/hoteldesk/reservation-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/room-types", h.ListRoomTypes)
	api.GET("/availability", h.CheckAvailability)
	api.GET("/quote", h.Quote)
	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings/:id", h.GetBooking)
	api.DELETE("/bookings/:id", h.CancelBooking)
}

func (h *ReservationHandler) ListRoomTypes(c echo.Context) error {
	types, err := h.svc.ListRoomTypes(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.RoomTypeResponse, len(types))
	for i := range types {
		resp[i] = dto.ToRoomTypeResponse(&types[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	roomType, checkIn, checkOut, err := stayParams(c)
	if err != nil {
		return err
	}

	result, err := h.svc.CheckAvailability(c.Request().Context(), roomType, checkIn, checkOut)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(result, checkIn, checkOut))
}

func (h *ReservationHandler) Quote(c echo.Context) error {
	roomType, checkIn, checkOut, err := stayParams(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Quote(c.Request().Context(), roomType, checkIn, checkOut)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToQuoteResponse(result, checkIn, checkOut))
}

func (h *ReservationHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.Book(c.Request().Context(), service.BookingRequest{
		GuestName: req.GuestName,
		Contact:   req.Contact,
		RoomType:  req.RoomType,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *ReservationHandler) GetBooking(c echo.Context) error {
	id, contact, err := bookingParams(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id, contact)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *ReservationHandler) CancelBooking(c echo.Context) error {
	id, contact, err := bookingParams(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.Cancel(c.Request().Context(), id, contact)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func stayParams(c echo.Context) (roomType, checkIn, checkOut string, err error) {
	roomType = c.QueryParam("room_type")
	checkIn = c.QueryParam("check_in")
	checkOut = c.QueryParam("check_out")
	if roomType == "" || checkIn == "" || checkOut == "" {
		return "", "", "", echo.NewHTTPError(http.StatusBadRequest, "room_type, check_in and check_out are required")
	}
	return roomType, checkIn, checkOut, nil
}

func bookingParams(c echo.Context) (uint, string, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	contact := c.QueryParam("contact")
	if contact == "" {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "contact is required")
	}
	return uint(id), contact, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrRoomTypeNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoAvailability),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrConcurrentConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStay),
		errors.Is(err, service.ErrInvalidContact),
		errors.Is(err, service.ErrInvalidGuestName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
