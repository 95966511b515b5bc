package model

import "time"

// Booking records a guest's stay at one hotel over a date range.  The
// rooms included in the booking live in the booking_rooms join table and
// are cascade-deleted with the booking.  Totals are snapshots taken at
// creation time; later discount changes never rewrite them.
//
// Fields:
//  ID                      – primary key identifier.
//  ConfirmationID          – public UUID handed to the guest.
//  GuestID                 – guest who placed the booking.
//  HotelID                 – hotel all booked rooms belong to.
//  CheckIn                 – first night of the stay (inclusive).
//  CheckOut                – morning of departure (exclusive).
//  Adults                  – adults in the party.
//  Children                – children in the party.
//  TotalCents              – undiscounted total in cents.
//  TotalAfterDiscountCents – charged total in cents (snapshot).
//  CreatedAt               – creation timestamp.
type Booking struct {
	ID                      uint64    // bookings.id
	ConfirmationID          string    // bookings.confirmation_id
	GuestID                 uint64    // bookings.guest_id
	HotelID                 uint64    // bookings.hotel_id
	CheckIn                 time.Time // bookings.check_in
	CheckOut                time.Time // bookings.check_out
	Adults                  int       // bookings.adults
	Children                int       // bookings.children
	TotalCents              int64     // bookings.total_cents
	TotalAfterDiscountCents int64     // bookings.total_after_discount_cents
	CreatedAt               time.Time // bookings.created_at
}

// BookingRoom links a booking to one of its rooms.  A room appears in
// many bookings over non-overlapping ranges and a booking may span many
// rooms.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – owning booking.
//  RoomID    – booked room.
type BookingRoom struct {
	ID        uint64 // booking_rooms.id
	BookingID uint64 // booking_rooms.booking_id
	RoomID    uint64 // booking_rooms.room_id
}
