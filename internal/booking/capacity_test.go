package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func TestCheckCapacity_Sufficient(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, AdultsCapacity: 2, ChildrenCapacity: 1},
		{ID: 2, AdultsCapacity: 2, ChildrenCapacity: 2},
	}

	assert.NoError(t, booking.CheckCapacity(rooms, 4, 3))
}

func TestCheckCapacity_AdultsShortfall(t *testing.T) {
	rooms := []model.Room{{ID: 1, AdultsCapacity: 2, ChildrenCapacity: 2}}

	err := booking.CheckCapacity(rooms, 3, 0)

	var capErr *booking.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, booking.CapacityAdults, capErr.Kind)
	assert.Equal(t, 3, capErr.Requested)
	assert.Equal(t, 2, capErr.Available)
}

func TestCheckCapacity_ChildrenShortfall(t *testing.T) {
	rooms := []model.Room{{ID: 1, AdultsCapacity: 2, ChildrenCapacity: 1}}

	err := booking.CheckCapacity(rooms, 2, 2)

	var capErr *booking.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, booking.CapacityChildren, capErr.Kind)
}

func TestCheckCapacity_AdultsReportedFirstWhenBothShort(t *testing.T) {
	rooms := []model.Room{{ID: 1, AdultsCapacity: 1, ChildrenCapacity: 0}}

	err := booking.CheckCapacity(rooms, 2, 1)

	var capErr *booking.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, booking.CapacityAdults, capErr.Kind)
}
