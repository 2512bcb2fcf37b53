package dto

type CreateBookingRequest struct {
	GuestName string `json:"guest_name"`
	Contact   string `json:"contact"`
	RoomType  string `json:"room_type"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
}
