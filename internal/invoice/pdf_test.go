package invoice_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/invoice"
)

func summaryFixture() booking.InvoiceSummary {
	return booking.InvoiceSummary{
		ConfirmationID: "9d3f8f60-1c2a-4e57-9a11-5b2f3a6d8c01",
		HotelName:      "Hotel Adlon",
		HotelAddress:   "Unter den Linden 77",
		GuestName:      "Mina Karimi",
		CheckIn:        "2025-06-01",
		CheckOut:       "2025-06-04",
		Adults:         2,
		Children:       1,
		Lines: []booking.LineItem{{
			RoomID:                          1,
			Nights:                          3,
			PricePerNightCents:              10000,
			PricePerNightAfterDiscountCents: 8000,
			TotalCents:                      30000,
			TotalAfterDiscountCents:         24000,
		}},
		TotalCents:              30000,
		TotalAfterDiscountCents: 24000,
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := invoice.RenderPDF(summaryFixture())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderPDF_WithDriftNotice(t *testing.T) {
	s := summaryFixture()
	s.PriceDrift = true

	data, err := invoice.RenderPDF(s)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	// The drift notice adds content, so the document grows.
	plain, err := invoice.RenderPDF(summaryFixture())
	require.NoError(t, err)
	assert.Greater(t, len(data), len(plain))
}
