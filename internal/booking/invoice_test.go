package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func invoiceFixture(t *testing.T) (model.Booking, model.Hotel, model.Guest, []model.Room) {
	t.Helper()
	b := model.Booking{
		ID:                      42,
		ConfirmationID:          "9d3f8f60-1c2a-4e57-9a11-5b2f3a6d8c01",
		GuestID:                 5,
		HotelID:                 10,
		CheckIn:                 date("2025-06-01"),
		CheckOut:                date("2025-06-04"),
		Adults:                  2,
		Children:                1,
		TotalCents:              30000,
		TotalAfterDiscountCents: 24000,
	}
	hotel := model.Hotel{ID: 10, Name: "Hotel Adlon", Address: "Unter den Linden 77"}
	guest := model.Guest{ID: 5, FirstName: "Mina", LastName: "Karimi"}
	rooms := []model.Room{{ID: 1, HotelID: 10, PricePerNightCents: 10000}}
	return b, hotel, guest, rooms
}

func TestAssembleInvoice_MatchesSnapshot(t *testing.T) {
	b, hotel, guest, rooms := invoiceFixture(t)
	discounts := map[uint64][]model.Discount{
		1: {{ID: 3, RoomID: 1, PercentOff: intPtr(20), StartsOn: date("2025-05-01"), EndsOn: date("2025-07-01")}},
	}

	inv, err := booking.AssembleInvoice(b, hotel, guest, rooms, discounts)

	require.NoError(t, err)
	assert.Equal(t, b.ConfirmationID, inv.ConfirmationID)
	assert.Equal(t, "Hotel Adlon", inv.HotelName)
	assert.Equal(t, "Mina Karimi", inv.GuestName)
	assert.Equal(t, "2025-06-01", inv.CheckIn)
	assert.Equal(t, "2025-06-04", inv.CheckOut)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, int64(8000), inv.Lines[0].PricePerNightAfterDiscountCents)
	assert.Equal(t, int64(24000), inv.TotalAfterDiscountCents)
	assert.False(t, inv.PriceDrift)
}

func TestAssembleInvoice_FlagsDriftWhenDiscountChanged(t *testing.T) {
	b, hotel, guest, rooms := invoiceFixture(t)
	// The 20% discount was removed after the booking was confirmed: the
	// recomputed total (300.00) no longer matches the snapshot (240.00).
	inv, err := booking.AssembleInvoice(b, hotel, guest, rooms, nil)

	require.NoError(t, err)
	assert.True(t, inv.PriceDrift)
	// The stored snapshot remains the billed amount.
	assert.Equal(t, int64(24000), inv.TotalAfterDiscountCents)
}

func TestAssembleInvoice_PropagatesPricingError(t *testing.T) {
	b, hotel, guest, rooms := invoiceFixture(t)
	rooms[0].PricePerNightCents = 0

	_, err := booking.AssembleInvoice(b, hotel, guest, rooms, nil)

	var priceErr *booking.PriceCalculationError
	assert.ErrorAs(t, err, &priceErr)
}
