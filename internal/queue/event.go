// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed.  It carries the full price breakdown so downstream
// consumers can render the confirmation email and invoice without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID               uint64            `json:"booking_id"`
	ConfirmationID          string            `json:"confirmation_id"`
	GuestID                 uint64            `json:"guest_id"`
	GuestName               string            `json:"guest_name"`
	GuestEmail              string            `json:"guest_email"`
	HotelID                 uint64            `json:"hotel_id"`
	HotelName               string            `json:"hotel_name"`
	HotelAddress            string            `json:"hotel_address"`
	CheckIn                 string            `json:"check_in"`
	CheckOut                string            `json:"check_out"`
	Nights                  int               `json:"nights"`
	Adults                  int               `json:"adults"`
	Children                int               `json:"children"`
	Rooms                   []BookedRoomLine  `json:"rooms"`
	TotalCents              int64             `json:"total_cents"`
	TotalAfterDiscountCents int64             `json:"total_after_discount_cents"`
	ConfirmedAt             string            `json:"confirmed_at"`
}

// BookedRoomLine is one room's share of a confirmed booking.
type BookedRoomLine struct {
	RoomID                          uint64 `json:"room_id"`
	RoomName                        string `json:"room_name"`
	PricePerNightCents              int64  `json:"price_per_night_cents"`
	PricePerNightAfterDiscountCents int64  `json:"price_per_night_after_discount_cents"`
	TotalAfterDiscountCents         int64  `json:"total_after_discount_cents"`
}
