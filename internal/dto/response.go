package dto

import (
	"time"

	"github.com/hoteldesk/reservation-service/internal/models"
	"github.com/hoteldesk/reservation-service/internal/service"
)

type RoomTypeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	Description string  `json:"description"`
}

type AvailabilityResponse struct {
	RoomType  string `json:"room_type"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	FreeUnits int64  `json:"free_units"`
	Available bool   `json:"available"`
}

type QuoteResponse struct {
	RoomType    string  `json:"room_type"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightly_rate"`
	TotalAmount float64 `json:"total_amount"`
}

type BookingResponse struct {
	ID          uint                 `json:"id"`
	RoomTypeID  uint                 `json:"room_type_id"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	TotalAmount float64              `json:"total_amount"`
	Status      models.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToRoomTypeResponse(rt *models.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		BasePrice:   rt.BasePrice,
		Description: rt.Description,
	}
}

func ToAvailabilityResponse(r *service.AvailabilityResult, checkIn, checkOut string) AvailabilityResponse {
	return AvailabilityResponse{
		RoomType:  r.RoomType.Name,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		FreeUnits: r.FreeUnits,
		Available: r.FreeUnits > 0,
	}
}

func ToQuoteResponse(r *service.QuoteResult, checkIn, checkOut string) QuoteResponse {
	return QuoteResponse{
		RoomType:    r.RoomType.Name,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      r.Nights,
		NightlyRate: r.RoomType.BasePrice,
		TotalAmount: r.TotalAmount,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		RoomTypeID:  b.RoomTypeID,
		CheckIn:     b.CheckIn.Format(models.DateLayout),
		CheckOut:    b.CheckOut.Format(models.DateLayout),
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
