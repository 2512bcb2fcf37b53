package events

// Routing keys for booking lifecycle events published on the topic exchange.
const (
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"
)

// BookingConfirmed carries enough for a downstream notifier to message the
// guest without a follow-up query.
type BookingConfirmed struct {
	BookingID   uint    `json:"booking_id"`
	Contact     string  `json:"contact"`
	GuestName   string  `json:"guest_name"`
	RoomType    string  `json:"room_type"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
}

type BookingCancelled struct {
	BookingID uint   `json:"booking_id"`
	Contact   string `json:"contact"`
}
