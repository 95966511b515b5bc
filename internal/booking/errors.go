package booking

import (
	"errors"
	"fmt"
)

// All validation failures surface as one of the errors below, detected
// before any write and returned first-failure-only.  Handlers translate
// them into HTTP responses with errors.Is / errors.As; storage and
// transport errors from the store interfaces pass through unchanged.

// ErrInvalidRange is returned when a check-out does not fall after its
// check-in.
var ErrInvalidRange = errors.New("check-out must fall after check-in")

// ErrNoRooms is returned when a booking request names no rooms.
var ErrNoRooms = errors.New("at least one room is required")

// ErrDuplicateRoom is returned when the same room appears twice in one
// booking request.
var ErrDuplicateRoom = errors.New("duplicate room in booking request")

// ErrRoomNotFound is returned when a requested room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrNotBookingOwner is returned when a guest tries to cancel a booking
// placed by someone else.
var ErrNotBookingOwner = errors.New("booking belongs to another guest")

// CapacityKind names which part of the party exceeded room capacity.
type CapacityKind string

const (
	CapacityAdults   CapacityKind = "adults"
	CapacityChildren CapacityKind = "children"
)

// InsufficientCapacityError reports that the selected rooms cannot hold
// the requested party.  Exactly one kind is reported per call, adults
// first when both are short.
type InsufficientCapacityError struct {
	Kind      CapacityKind
	Requested int
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient %s capacity: requested %d, selected rooms hold %d", e.Kind, e.Requested, e.Available)
}

// RoomUnavailableError reports a date-range conflict with an existing
// booking.  The commit-time re-check produces the same error as the
// pre-commit check, so a caller cannot tell a lost race from a room that
// was already taken.
type RoomUnavailableError struct {
	RoomID uint64
	Stay   DateRange
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %d is unavailable between %s and %s",
		e.RoomID, e.Stay.CheckIn.Format(DateLayout), e.Stay.CheckOut.Format(DateLayout))
}

// RoomNotInHotelError reports a room selected from a different hotel
// than the booking targets.
type RoomNotInHotelError struct {
	RoomID  uint64
	HotelID uint64
}

func (e *RoomNotInHotelError) Error() string {
	return fmt.Sprintf("room %d does not belong to hotel %d", e.RoomID, e.HotelID)
}

// PriceCalculationError reports a room that cannot be priced because of
// a non-positive nightly price or night count.
type PriceCalculationError struct {
	RoomID uint64
}

func (e *PriceCalculationError) Error() string {
	return fmt.Sprintf("cannot price room %d: non-positive nightly price or nights", e.RoomID)
}

// BookingStartedError reports a cancellation attempted at or after the
// booking's check-in.
type BookingStartedError struct {
	BookingID uint64
}

func (e *BookingStartedError) Error() string {
	return fmt.Sprintf("booking %d has already started and cannot be cancelled", e.BookingID)
}
