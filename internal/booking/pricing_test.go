package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func intPtr(v int) *int       { return &v }
func centsPtr(v int64) *int64 { return &v }

func TestPriceRoomForStay_NoDiscount(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 10000}

	item, err := booking.PriceRoomForStay(room, nil, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, 3, item.Nights)
	assert.Equal(t, int64(10000), item.PricePerNightCents)
	assert.Equal(t, int64(10000), item.PricePerNightAfterDiscountCents)
	assert.Equal(t, int64(30000), item.TotalCents)
	assert.Equal(t, int64(30000), item.TotalAfterDiscountCents)
	assert.Zero(t, item.DiscountID)
}

func TestPriceRoomForStay_PercentageDiscount(t *testing.T) {
	// 100.00 per night, 20% off, window fully covering a 3-night stay.
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	discounts := []model.Discount{{
		ID:         1,
		RoomID:     7,
		PercentOff: intPtr(20),
		StartsOn:   date("2025-05-01"),
		EndsOn:     date("2025-07-01"),
	}}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, int64(8000), item.PricePerNightAfterDiscountCents)
	assert.Equal(t, int64(24000), item.TotalAfterDiscountCents)
	assert.Equal(t, uint64(1), item.DiscountID)
}

func TestPriceRoomForStay_PercentageRoundsHalfUp(t *testing.T) {
	// 99.99 at 15% off: 84.9915 rounds to 84.99; 33.33 at 50%: 16.665 -> 16.67.
	room := model.Room{ID: 7, PricePerNightCents: 9999}
	discounts := []model.Discount{{
		ID: 1, RoomID: 7, PercentOff: intPtr(15),
		StartsOn: date("2025-05-01"), EndsOn: date("2025-07-01"),
	}}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(8499), item.PricePerNightAfterDiscountCents)

	room.PricePerNightCents = 3333
	discounts[0].PercentOff = intPtr(50)
	item, err = booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1667), item.PricePerNightAfterDiscountCents)
}

func TestPriceRoomForStay_ExplicitPriceWinsOverPercentage(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	discounts := []model.Discount{{
		ID: 1, RoomID: 7,
		PercentOff:           intPtr(20),
		DiscountedPriceCents: centsPtr(7500),
		StartsOn:             date("2025-05-01"), EndsOn: date("2025-07-01"),
	}}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, int64(7500), item.PricePerNightAfterDiscountCents)
	assert.Equal(t, int64(22500), item.TotalAfterDiscountCents)
}

func TestPriceRoomForStay_PartialWindowDoesNotApply(t *testing.T) {
	// Window covers only 2 of 3 requested nights: full price is charged.
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	discounts := []model.Discount{{
		ID: 1, RoomID: 7, PercentOff: intPtr(20),
		StartsOn: date("2025-06-01"), EndsOn: date("2025-06-03"),
	}}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, int64(10000), item.PricePerNightAfterDiscountCents)
	assert.Equal(t, int64(30000), item.TotalAfterDiscountCents)
	assert.Zero(t, item.DiscountID)
}

func TestPriceRoomForStay_WindowEndingOnCheckOutStillCovers(t *testing.T) {
	// The check-out night is not part of the stay, so a window ending on
	// the check-out day covers the final night.
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	discounts := []model.Discount{{
		ID: 1, RoomID: 7, PercentOff: intPtr(10),
		StartsOn: date("2025-06-01"), EndsOn: date("2025-06-04"),
	}}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, int64(9000), item.PricePerNightAfterDiscountCents)
}

func TestPriceRoomForStay_LatestCoveringStartWins(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	discounts := []model.Discount{
		{ID: 1, RoomID: 7, PercentOff: intPtr(10), StartsOn: date("2025-01-01"), EndsOn: date("2025-12-31")},
		{ID: 2, RoomID: 7, PercentOff: intPtr(30), StartsOn: date("2025-05-20"), EndsOn: date("2025-06-10")},
	}

	item, err := booking.PriceRoomForStay(room, discounts, stay(t, "2025-06-01", "2025-06-04"))

	require.NoError(t, err)
	assert.Equal(t, uint64(2), item.DiscountID)
	assert.Equal(t, int64(7000), item.PricePerNightAfterDiscountCents)
}

func TestPriceRoomForStay_Idempotent(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 12345}
	discounts := []model.Discount{{
		ID: 1, RoomID: 7, PercentOff: intPtr(17),
		StartsOn: date("2025-05-01"), EndsOn: date("2025-07-01"),
	}}
	s := stay(t, "2025-06-01", "2025-06-06")

	first, err := booking.PriceRoomForStay(room, discounts, s)
	require.NoError(t, err)
	second, err := booking.PriceRoomForStay(room, discounts, s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPriceRoomForStay_NonPositivePrice(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 0}

	_, err := booking.PriceRoomForStay(room, nil, stay(t, "2025-06-01", "2025-06-04"))

	var priceErr *booking.PriceCalculationError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, uint64(7), priceErr.RoomID)
}

func TestPriceRoomForStay_InvalidStay(t *testing.T) {
	room := model.Room{ID: 7, PricePerNightCents: 10000}
	bad := booking.DateRange{CheckIn: date("2025-06-04"), CheckOut: date("2025-06-01")}

	_, err := booking.PriceRoomForStay(room, nil, bad)

	var priceErr *booking.PriceCalculationError
	assert.ErrorAs(t, err, &priceErr)
}

func TestAggregate(t *testing.T) {
	totals := booking.Aggregate([]booking.LineItem{
		{TotalCents: 30000, TotalAfterDiscountCents: 24000},
		{TotalCents: 15000, TotalAfterDiscountCents: 15000},
	})

	assert.Equal(t, int64(45000), totals.TotalCents)
	assert.Equal(t, int64(39000), totals.TotalAfterDiscountCents)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Zero(t, booking.Aggregate(nil))
}
