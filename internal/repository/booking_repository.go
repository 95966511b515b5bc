package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their rooms.
// Rooms booked under a booking are stored in the booking_rooms table
// and are cascade-deleted with the booking.  All timestamp fields are
// assumed to be stored in UTC.  BookingRepo satisfies the booking
// engine's BookingStore interface.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, confirmation_id, guest_id, hotel_id, check_in, check_out, adults, children, total_cents, total_after_discount_cents, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.ConfirmationID, &b.GuestID, &b.HotelID, &b.CheckIn, &b.CheckOut,
		&b.Adults, &b.Children, &b.TotalCents, &b.TotalAfterDiscountCents, &b.CreatedAt)
}

// OverlappingRanges returns the date ranges of existing bookings that
// conflict with the given stay for one room.
func (r *BookingRepo) OverlappingRanges(ctx context.Context, roomID uint64, stay booking.DateRange) ([]booking.DateRange, error) {
	const q = `SELECT b.check_in, b.check_out
	           FROM bookings b
	           JOIN booking_rooms br ON br.booking_id = b.id
	           WHERE br.room_id = ? AND b.check_in < ? AND b.check_out > ?`
	rows, err := r.db.QueryContext(ctx, q, roomID, stay.CheckOut, stay.CheckIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]booking.DateRange, 0)
	for rows.Next() {
		var dr booking.DateRange
		if err := rows.Scan(&dr.CheckIn, &dr.CheckOut); err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a booking and its booking_rooms rows in a single
// transaction.  The room rows are locked first, in ascending id order
// so two concurrent requests cannot deadlock, and availability is
// re-checked under those locks.  Of two racing requests for the same
// room and overlapping dates, the second blocks on the row lock and
// then sees the winner's rows, so at most one commit succeeds; the
// loser gets *booking.RoomUnavailableError, indistinguishable from a
// room that was taken all along.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, roomIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sorted := append([]uint64(nil), roomIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	placeholders := make([]string, 0, len(sorted))
	args := make([]interface{}, 0, len(sorted))
	for _, id := range sorted {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	in := strings.Join(placeholders, ",")

	lockQ := `SELECT id FROM rooms WHERE id IN (` + in + `) ORDER BY id FOR UPDATE`
	if _, err := tx.ExecContext(ctx, lockQ, args...); err != nil {
		return err
	}

	// Re-check availability now that the room rows are locked.
	conflictQ := `SELECT br.room_id
	              FROM booking_rooms br
	              JOIN bookings bk ON bk.id = br.booking_id
	              WHERE br.room_id IN (` + in + `) AND bk.check_in < ? AND bk.check_out > ?
	              LIMIT 1`
	conflictArgs := append(append([]interface{}{}, args...), b.CheckOut, b.CheckIn)
	var conflictRoom uint64
	err = tx.QueryRowContext(ctx, conflictQ, conflictArgs...).Scan(&conflictRoom)
	switch {
	case err == nil:
		return &booking.RoomUnavailableError{
			RoomID: conflictRoom,
			Stay:   booking.DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut},
		}
	case err != sql.ErrNoRows:
		return err
	}

	const insertQ = `INSERT INTO bookings (confirmation_id, guest_id, hotel_id, check_in, check_out, adults, children, total_cents, total_after_discount_cents)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insertQ,
		b.ConfirmationID, b.GuestID, b.HotelID, b.CheckIn, b.CheckOut,
		b.Adults, b.Children, b.TotalCents, b.TotalAfterDiscountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	roomQ := `INSERT INTO booking_rooms (booking_id, room_id) VALUES `
	roomArgs := make([]interface{}, 0, len(roomIDs)*2)
	for i, roomID := range roomIDs {
		if i > 0 {
			roomQ += ","
		}
		roomQ += "(?, ?)"
		roomArgs = append(roomArgs, b.ID, roomID)
	}
	if _, err := tx.ExecContext(ctx, roomQ, roomArgs...); err != nil {
		return err
	}

	// Query back created_at so the caller holds the stored row.
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns one booking.  sql.ErrNoRows is returned when it does
// not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id), &b)
	return b, err
}

// Delete removes a booking; its booking_rooms rows go with it via the
// foreign key cascade.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}

// RoomIDsForBooking returns the ids of the rooms included in a booking,
// in insertion order.
func (r *BookingRepo) RoomIDsForBooking(ctx context.Context, bookingID uint64) ([]uint64, error) {
	const q = `SELECT room_id FROM booking_rooms WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// BookingDetail carries a booking with hotel and room names for guest
// listings.
type BookingDetail struct {
	ID                      uint64   `json:"id"`
	ConfirmationID          string   `json:"confirmation_id"`
	HotelID                 uint64   `json:"hotel_id"`
	HotelName               string   `json:"hotel_name"`
	CheckIn                 string   `json:"check_in"`
	CheckOut                string   `json:"check_out"`
	Adults                  int      `json:"adults"`
	Children                int      `json:"children"`
	TotalCents              int64    `json:"total_cents"`
	TotalAfterDiscountCents int64    `json:"total_after_discount_cents"`
	Rooms                   []string `json:"rooms"`
}

// ListByGuest returns all bookings for the given guest along with hotel
// and room names, newest first.  When no bookings exist, an empty slice
// is returned.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.confirmation_id, b.hotel_id, h.name, b.check_in, b.check_out,
	                  b.adults, b.children, b.total_cents, b.total_after_discount_cents
	           FROM bookings b
	           JOIN hotels h ON h.id = b.hotel_id
	           WHERE b.guest_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		var checkIn, checkOut sql.NullTime
		if err := rows.Scan(&d.ID, &d.ConfirmationID, &d.HotelID, &d.HotelName,
			&checkIn, &checkOut, &d.Adults, &d.Children,
			&d.TotalCents, &d.TotalAfterDiscountCents); err != nil {
			return nil, err
		}
		if checkIn.Valid {
			d.CheckIn = checkIn.Time.UTC().Format(booking.DateLayout)
		}
		if checkOut.Valid {
			d.CheckOut = checkOut.Time.UTC().Format(booking.DateLayout)
		}
		d.Rooms = []string{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Populate room names for all bookings in a single query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	roomQ := `SELECT br.booking_id, rm.name
	          FROM booking_rooms br
	          JOIN rooms rm ON rm.id = br.room_id
	          WHERE br.booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY br.booking_id, br.id`
	rrows, err := r.db.QueryContext(ctx, roomQ, ids...)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var bookingID uint64
		var name string
		if err := rrows.Scan(&bookingID, &name); err != nil {
			return nil, err
		}
		if idx, ok := index[bookingID]; ok {
			details[idx].Rooms = append(details[idx].Rooms, name)
		}
	}
	if err := rrows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CountByGuest returns the number of bookings a guest has placed.
func (r *BookingRepo) CountByGuest(ctx context.Context, guestID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE guest_id = ?`, guestID).Scan(&n)
	return n, err
}
