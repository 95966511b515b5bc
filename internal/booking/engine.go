package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomStore loads room snapshots and their discounts.
type RoomStore interface {
	RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error)
	DiscountsForRoom(ctx context.Context, roomID uint64) ([]model.Discount, error)
}

// BookingStore persists bookings.  Create must run inside a single
// transaction and repeat the availability check under it, returning
// *RoomUnavailableError when a concurrent booking won the race; that is
// the only failure that can occur after validation passed.  Delete
// removes the booking together with its booking_rooms rows.
type BookingStore interface {
	OverlappingRanges(ctx context.Context, roomID uint64, stay DateRange) ([]DateRange, error)
	Create(ctx context.Context, b *model.Booking, roomIDs []uint64) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	Delete(ctx context.Context, id uint64) error
}

// Clock supplies the current time.  It is injected so "has the stay
// started" checks are testable.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production Clock.
type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

// Engine coordinates capacity, hotel-consistency, availability and
// pricing checks for a booking request and commits the result.  Steps
// before the commit are read-only; a request that fails validation
// writes nothing.
type Engine struct {
	rooms    RoomStore
	bookings BookingStore
	clock    Clock
}

// NewEngine constructs an Engine.  All dependencies must be non-nil.
func NewEngine(rooms RoomStore, bookings BookingStore, clock Clock) *Engine {
	if rooms == nil || bookings == nil || clock == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{rooms: rooms, bookings: bookings, clock: clock}
}

// Request describes one booking attempt.  RoomIDs keep the caller's
// order; rooms are validated and priced in exactly that order.
type Request struct {
	GuestID  uint64
	HotelID  uint64
	RoomIDs  []uint64
	Stay     DateRange
	Adults   int
	Children int
}

// Confirmation is returned once a booking has been committed.
type Confirmation struct {
	Booking model.Booking
	Lines   []LineItem
	Totals  Totals
}

// Book validates a request end to end and persists the booking.  The
/// pipeline is: capacity, room/hotel consistency, availability, pricing,
// then the transactional commit with its availability re-check.  The
// first failure is returned and nothing further runs.  On success the
// charged total is snapshotted onto the booking record.
func (e *Engine) Book(ctx context.Context, req Request) (*Confirmation, error) {
	if _, err := req.Stay.Nights(); err != nil {
		return nil, err
	}
	rooms, err := e.loadRooms(ctx, req.RoomIDs)
	if err != nil {
		return nil, err
	}
	if err := CheckCapacity(rooms, req.Adults, req.Children); err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.HotelID != req.HotelID {
			return nil, &RoomNotInHotelError{RoomID: room.ID, HotelID: req.HotelID}
		}
	}
	if err := CheckAllAvailable(ctx, e.bookings, rooms, req.Stay); err != nil {
		return nil, err
	}

	lines := make([]LineItem, 0, len(rooms))
	for _, room := range rooms {
		discounts, err := e.rooms.DiscountsForRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		line, err := PriceRoomForStay(room, discounts, req.Stay)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	totals := Aggregate(lines)

	b := model.Booking{
		ConfirmationID:          uuid.NewString(),
		GuestID:                 req.GuestID,
		HotelID:                 req.HotelID,
		CheckIn:                 req.Stay.CheckIn,
		CheckOut:                req.Stay.CheckOut,
		Adults:                  req.Adults,
		Children:                req.Children,
		TotalCents:              totals.TotalCents,
		TotalAfterDiscountCents: totals.TotalAfterDiscountCents,
	}
	if err := e.bookings.Create(ctx, &b, req.RoomIDs); err != nil {
		return nil, err
	}
	return &Confirmation{Booking: b, Lines: lines, Totals: totals}, nil
}

// Cancel deletes a booking before its stay begins.  The booking must
// belong to the calling guest and its check-in must still be in the
// future relative to the injected clock; booking_rooms rows are removed
// with it.
func (e *Engine) Cancel(ctx context.Context, bookingID, guestID uint64) error {
	b, err := e.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.GuestID != guestID {
		return ErrNotBookingOwner
	}
	if !b.CheckIn.After(e.clock.Now()) {
		return &BookingStartedError{BookingID: bookingID}
	}
	return e.bookings.Delete(ctx, bookingID)
}

// loadRooms resolves ids to room snapshots, preserving request order
// and rejecting empty or duplicated selections.
func (e *Engine) loadRooms(ctx context.Context, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return nil, ErrNoRooms
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRoom, id)
		}
		seen[id] = struct{}{}
	}
	fetched, err := e.rooms.RoomsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]model.Room, len(fetched))
	for _, r := range fetched {
		byID[r.ID] = r
	}
	rooms := make([]model.Room, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrRoomNotFound, id)
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}
