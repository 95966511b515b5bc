// Package booking implements the booking and pricing engine: party
// capacity validation, room availability over date ranges, nightly and
// total pricing with discounts, and the orchestration that turns a
// validated request into a persisted booking with an invoice summary.
// Persistence is reached only through the small store interfaces defined
// in engine.go, so the package itself stays free of SQL.
package booking

import "time"

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// DateRange is a check-in/check-out pair with half-open interval
// semantics: the check-out day is not part of the stay, so a stay ending
// on a given day never conflicts with one starting that same day.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NewDateRange builds a DateRange from check-in and check-out days.
// Both values are normalized to midnight UTC.  ErrInvalidRange is
// returned when the check-out does not fall after the check-in.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: day(checkIn), CheckOut: day(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

// ParseDateRange builds a DateRange from two DateLayout strings as they
// arrive on the wire.  ErrInvalidRange is returned when either value
// fails to parse or the check-out does not fall after the check-in.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	return NewDateRange(in, out)
}

// day truncates a timestamp to midnight UTC.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights covered by the range, rounding
// partial days up.  ErrInvalidRange is returned when the check-out does
// not fall after the check-in.
func (r DateRange) Nights() (int, error) {
	if !r.CheckOut.After(r.CheckIn) {
		return 0, ErrInvalidRange
	}
	d := r.CheckOut.Sub(r.CheckIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n, nil
}

// Overlaps reports whether two ranges share at least one night.
// The test is symmetric and back-to-back stays do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}
