package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomRepo provides read and write access to rooms and the read side of
// their discounts.  It also satisfies the booking engine's RoomStore
// interface, so the engine sees room snapshots and discount windows
// without knowing about SQL.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle for callers that need transactions.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = `id, hotel_id, name, adults_capacity, children_capacity, price_per_night_cents, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, rm *model.Room) error {
	return row.Scan(&rm.ID, &rm.HotelID, &rm.Name, &rm.AdultsCapacity, &rm.ChildrenCapacity,
		&rm.PricePerNightCents, &rm.CreatedAt, &rm.UpdatedAt)
}

// RoomsByIDs returns the rooms matching the given ids.  Missing ids are
// simply absent from the result; the booking engine decides whether
// that is an error.
func (r *RoomRepo) RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return []model.Room{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0, len(ids))
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscountsForRoom returns all discount windows configured for a room,
// newest start first.  The engine filters them against the stay window.
func (r *RoomRepo) DiscountsForRoom(ctx context.Context, roomID uint64) ([]model.Discount, error) {
	const q = `SELECT id, room_id, percent_off, discounted_price_cents, starts_on, ends_on, created_at
	           FROM discounts WHERE room_id = ? ORDER BY starts_on DESC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Discount, 0)
	for rows.Next() {
		var d model.Discount
		var pct sql.NullInt64
		var price sql.NullInt64
		if err := rows.Scan(&d.ID, &d.RoomID, &pct, &price, &d.StartsOn, &d.EndsOn, &d.CreatedAt); err != nil {
			return nil, err
		}
		if pct.Valid {
			p := int(pct.Int64)
			d.PercentOff = &p
		}
		if price.Valid {
			v := price.Int64
			d.DiscountedPriceCents = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one room.  sql.ErrNoRows is returned when the room
// does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var rm model.Room
	err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id), &rm)
	return rm, err
}

// ListByHotel returns all rooms of a hotel ordered by name.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE hotel_id = ? ORDER BY name`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a room and populates the generated id.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (hotel_id, name, adults_capacity, children_capacity, price_per_night_cents)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.HotelID, rm.Name, rm.AdultsCapacity, rm.ChildrenCapacity, rm.PricePerNightCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}
