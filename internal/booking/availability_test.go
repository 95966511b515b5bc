package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func TestAvailable(t *testing.T) {
	existing := []booking.DateRange{stay(t, "2025-06-01", "2025-06-05")}

	// Overlapping request conflicts.
	assert.False(t, booking.Available(stay(t, "2025-06-03", "2025-06-07"), existing))
	// Adjacent request starting on the checkout day succeeds.
	assert.True(t, booking.Available(stay(t, "2025-06-05", "2025-06-07"), existing))
	// No bookings at all.
	assert.True(t, booking.Available(stay(t, "2025-06-03", "2025-06-07"), nil))
}

func TestCheckAllAvailable_FailsFastInCallerOrder(t *testing.T) {
	busy := stay(t, "2025-06-01", "2025-06-05")
	queried := []uint64{}
	store := &mockBookingStore{
		overlappingRanges: func(_ context.Context, roomID uint64, _ booking.DateRange) ([]booking.DateRange, error) {
			queried = append(queried, roomID)
			if roomID == 2 {
				return []booking.DateRange{busy}, nil
			}
			return nil, nil
		},
	}
	rooms := []model.Room{{ID: 1}, {ID: 2}, {ID: 3}}

	err := booking.CheckAllAvailable(context.Background(), store, rooms, stay(t, "2025-06-03", "2025-06-07"))

	var unavailable *booking.RoomUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint64(2), unavailable.RoomID)
	// Room 3 must not have been queried once room 2 failed.
	assert.Equal(t, []uint64{1, 2}, queried)
}

func TestCheckAllAvailable_AllFree(t *testing.T) {
	store := &mockBookingStore{
		overlappingRanges: func(context.Context, uint64, booking.DateRange) ([]booking.DateRange, error) {
			return nil, nil
		},
	}
	rooms := []model.Room{{ID: 1}, {ID: 2}}

	assert.NoError(t, booking.CheckAllAvailable(context.Background(), store, rooms, stay(t, "2025-06-01", "2025-06-03")))
}
