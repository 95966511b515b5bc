package booking

import (
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// InvoiceSummary projects a persisted booking into the shape consumed
// by the PDF and email collaborators.  The stored totals remain the
// billed amounts; recomputed line items are for display only.
type InvoiceSummary struct {
	ConfirmationID          string     `json:"confirmation_id"`
	HotelName               string     `json:"hotel_name"`
	HotelAddress            string     `json:"hotel_address"`
	GuestName               string     `json:"guest_name"`
	CheckIn                 string     `json:"check_in"`
	CheckOut                string     `json:"check_out"`
	Adults                  int        `json:"adults"`
	Children                int        `json:"children"`
	Lines                   []LineItem `json:"rooms"`
	TotalCents              int64      `json:"total_cents"`
	TotalAfterDiscountCents int64      `json:"total_after_discount_cents"`
	PriceDrift              bool       `json:"price_drift"`
}

// AssembleInvoice recomputes per-room line items from the current room
// and discount rows and combines them with the stored booking snapshot.
// Availability is not re-validated.  When the recomputed total no longer
// matches the snapshot (a discount changed after booking), PriceDrift is
// set as a warning; the snapshot stays authoritative for billing.
func AssembleInvoice(b model.Booking, hotel model.Hotel, guest model.Guest, rooms []model.Room, discounts map[uint64][]model.Discount) (InvoiceSummary, error) {
	stay := DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
	lines := make([]LineItem, 0, len(rooms))
	for _, room := range rooms {
		line, err := PriceRoomForStay(room, discounts[room.ID], stay)
		if err != nil {
			return InvoiceSummary{}, err
		}
		lines = append(lines, line)
	}
	recomputed := Aggregate(lines)
	return InvoiceSummary{
		ConfirmationID:          b.ConfirmationID,
		HotelName:               hotel.Name,
		HotelAddress:            hotel.Address,
		GuestName:               strings.TrimSpace(guest.FirstName + " " + guest.LastName),
		CheckIn:                 b.CheckIn.Format(DateLayout),
		CheckOut:                b.CheckOut.Format(DateLayout),
		Adults:                  b.Adults,
		Children:                b.Children,
		Lines:                   lines,
		TotalCents:              b.TotalCents,
		TotalAfterDiscountCents: b.TotalAfterDiscountCents,
		PriceDrift:              recomputed.TotalAfterDiscountCents != b.TotalAfterDiscountCents,
	}, nil
}
