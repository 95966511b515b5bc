package booking

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// Available reports whether a stay conflicts with none of the existing
// booking ranges for a room.
func Available(stay DateRange, existing []DateRange) bool {
	for _, b := range existing {
		if stay.Overlaps(b) {
			return false
		}
	}
	return true
}

// CheckAllAvailable verifies every room in the order supplied by the
// caller and fails fast with RoomUnavailableError on the first conflict;
// later rooms are not queried.  This check runs outside the persistence
// transaction, so BookingStore.Create must repeat it under the
// transaction to close the race window.
func CheckAllAvailable(ctx context.Context, store BookingStore, rooms []model.Room, stay DateRange) error {
	for _, room := range rooms {
		existing, err := store.OverlappingRanges(ctx, room.ID, stay)
		if err != nil {
			return err
		}
		if !Available(stay, existing) {
			return &RoomUnavailableError{RoomID: room.ID, Stay: stay}
		}
	}
	return nil
}
