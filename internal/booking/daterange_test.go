package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
)

func date(s string) time.Time {
	t, err := time.Parse(booking.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(t *testing.T, in, out string) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(date(in), date(out))
	require.NoError(t, err)
	return r
}

func TestNewDateRange_RejectsCheckOutNotAfterCheckIn(t *testing.T) {
	_, err := booking.NewDateRange(date("2025-06-05"), date("2025-06-05"))
	assert.ErrorIs(t, err, booking.ErrInvalidRange)

	_, err = booking.NewDateRange(date("2025-06-05"), date("2025-06-01"))
	assert.ErrorIs(t, err, booking.ErrInvalidRange)
}

func TestNewDateRange_NormalizesToMidnightUTC(t *testing.T) {
	in := time.Date(2025, 6, 1, 15, 30, 0, 0, time.FixedZone("CET", 3600))
	out := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	r, err := booking.NewDateRange(in, out)

	require.NoError(t, err)
	assert.Equal(t, date("2025-06-01"), r.CheckIn)
	assert.Equal(t, date("2025-06-04"), r.CheckOut)
}

func TestParseDateRange(t *testing.T) {
	r, err := booking.ParseDateRange("2025-06-01", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, date("2025-06-01"), r.CheckIn)
	assert.Equal(t, date("2025-06-04"), r.CheckOut)

	_, err = booking.ParseDateRange("2025-06-01", "June 4th")
	assert.ErrorIs(t, err, booking.ErrInvalidRange)

	_, err = booking.ParseDateRange("2025-06-04", "2025-06-01")
	assert.ErrorIs(t, err, booking.ErrInvalidRange)
}

func TestNights(t *testing.T) {
	n, err := stay(t, "2025-06-01", "2025-06-05").Nights()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = stay(t, "2025-06-01", "2025-06-02").Nights()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNights_InvalidRange(t *testing.T) {
	r := booking.DateRange{CheckIn: date("2025-06-05"), CheckOut: date("2025-06-05")}
	_, err := r.Nights()
	assert.ErrorIs(t, err, booking.ErrInvalidRange)
}

func TestOverlaps_Symmetric(t *testing.T) {
	a := stay(t, "2025-06-01", "2025-06-05")
	b := stay(t, "2025-06-03", "2025-06-07")

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestOverlaps_Self(t *testing.T) {
	a := stay(t, "2025-06-01", "2025-06-05")
	assert.True(t, a.Overlaps(a))
}

func TestOverlaps_HalfOpenBoundary(t *testing.T) {
	// A checkout on the same day as another stay's check-in is not a conflict.
	a := stay(t, "2025-06-01", "2025-06-03")
	b := stay(t, "2025-06-03", "2025-06-05")

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlaps_Contained(t *testing.T) {
	outer := stay(t, "2025-06-01", "2025-06-10")
	inner := stay(t, "2025-06-03", "2025-06-04")

	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}
