package booking

import "github.com/iliyamo/hotel-room-booking/internal/model"

// LineItem is a room's priced contribution to a booking or invoice.
// All amounts are integer cents; DiscountID is zero when no discount
// applied.
type LineItem struct {
	RoomID                          uint64 `json:"room_id"`
	Nights                          int    `json:"nights"`
	PricePerNightCents              int64  `json:"price_per_night_cents"`
	PricePerNightAfterDiscountCents int64  `json:"price_per_night_after_discount_cents"`
	TotalCents                      int64  `json:"total_cents"`
	TotalAfterDiscountCents         int64  `json:"total_after_discount_cents"`
	DiscountID                      uint64 `json:"discount_id,omitempty"`
}

// Totals aggregates line items across a booking.
type Totals struct {
	TotalCents              int64 `json:"total_cents"`
	TotalAfterDiscountCents int64 `json:"total_after_discount_cents"`
}

// PriceRoomForStay prices one room for a stay and applies the matching
// discount, if any.  A discount counts only when its window covers the
// whole stay; partial coverage is not prorated.  Among covering
// discounts the one starting latest at or before check-in wins.  The
// function is pure, so identical inputs always produce identical items.
func PriceRoomForStay(room model.Room, discounts []model.Discount, stay DateRange) (LineItem, error) {
	nights, err := stay.Nights()
	if err != nil {
		return LineItem{}, &PriceCalculationError{RoomID: room.ID}
	}
	if room.PricePerNightCents <= 0 {
		return LineItem{}, &PriceCalculationError{RoomID: room.ID}
	}
	item := LineItem{
		RoomID:             room.ID,
		Nights:             nights,
		PricePerNightCents: room.PricePerNightCents,
		TotalCents:         room.PricePerNightCents * int64(nights),
	}
	item.PricePerNightAfterDiscountCents = item.PricePerNightCents
	if d := selectDiscount(discounts, stay); d != nil {
		item.DiscountID = d.ID
		item.PricePerNightAfterDiscountCents = discountedNightly(room.PricePerNightCents, *d)
	}
	item.TotalAfterDiscountCents = item.PricePerNightAfterDiscountCents * int64(nights)
	return item, nil
}

// selectDiscount returns the discount to apply for a stay, or nil when
// no window covers the entire range.
func selectDiscount(discounts []model.Discount, stay DateRange) *model.Discount {
	var best *model.Discount
	for i := range discounts {
		d := &discounts[i]
		if !covers(d, stay) {
			continue
		}
		if best == nil || d.StartsOn.After(best.StartsOn) {
			best = d
		}
	}
	return best
}

// covers reports whether the discount window contains every night of
// the stay.  Windows are half-open, so a window ending on the check-out
// day still covers the final night.
func covers(d *model.Discount, stay DateRange) bool {
	return !d.StartsOn.After(stay.CheckIn) && !stay.CheckOut.After(d.EndsOn)
}

// discountedNightly resolves the nightly price under a discount.  An
// explicit discounted price wins over a percentage; percentage results
// round half-up to whole cents.
func discountedNightly(baseCents int64, d model.Discount) int64 {
	if d.DiscountedPriceCents != nil {
		return *d.DiscountedPriceCents
	}
	if d.PercentOff == nil {
		return baseCents
	}
	pct := int64(*d.PercentOff)
	return (baseCents*(100-pct) + 50) / 100
}

// Aggregate sums line items into booking totals using exact integer
// arithmetic.
func Aggregate(items []LineItem) Totals {
	var t Totals
	for _, it := range items {
		t.TotalCents += it.TotalCents
		t.TotalAfterDiscountCents += it.TotalAfterDiscountCents
	}
	return t
}
