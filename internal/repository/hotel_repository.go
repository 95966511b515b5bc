package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo encapsulates all database queries related to hotels.  It
// depends on a sql.DB connection which should be configured elsewhere.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, city_id, manager_id, name, address, stars, created_at, updated_at`

func scanHotel(row interface{ Scan(...any) error }, h *model.Hotel) error {
	return row.Scan(&h.ID, &h.CityID, &h.ManagerID, &h.Name, &h.Address, &h.Stars,
		&h.CreatedAt, &h.UpdatedAt)
}

// Create inserts a new hotel.  On success the hotel's ID field is
// populated with the auto-generated value and the timestamp fields are
// read back so callers receive a fully populated record.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = `INSERT INTO hotels (city_id, manager_id, name, address, stars) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.CityID, h.ManagerID, h.Name, h.Address, h.Stars)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM hotels WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, h.ID).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetByID fetches a hotel by its ID regardless of manager.  It returns
// ErrHotelNotFound if no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	var h model.Hotel
	err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id), &h)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByIDAndManager fetches a hotel by id but only if it is managed by
// the specified user.  If the hotel doesn't exist or belongs to someone
// else, ErrHotelNotFound is returned.
func (r *HotelRepo) GetByIDAndManager(ctx context.Context, id, managerID uint64) (*model.Hotel, error) {
	var h model.Hotel
	err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE id = ? AND manager_id = ?`, id, managerID), &h)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListByCity returns all hotels in a city ordered by stars descending,
// then name, for public browsing.
func (r *HotelRepo) ListByCity(ctx context.Context, cityID uint64) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE city_id = ? ORDER BY stars DESC, name`
	rows, err := r.db.QueryContext(ctx, q, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Hotel, 0)
	for rows.Next() {
		h := new(model.Hotel)
		if err := scanHotel(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByManager returns all hotels managed by a user ordered by id.
func (r *HotelRepo) ListByManager(ctx context.Context, managerID uint64) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE manager_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Hotel, 0)
	for rows.Next() {
		h := new(model.Hotel)
		if err := scanHotel(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndManager removes a hotel together with its rooms and
// discounts, provided it is managed by the given user and has no
// bookings.  sql.ErrNoRows is returned when the hotel does not exist,
// ErrForbidden when it belongs to a different manager, and ErrConflict
// when bookings reference it.
func (r *HotelRepo) DeleteByIDAndManager(ctx context.Context, id, managerID uint64) error {
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

	var dbManagerID uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT manager_id FROM hotels WHERE id = ?`, id).Scan(&dbManagerID); err != nil {
		return err
	}
	if dbManagerID != managerID {
		return ErrForbidden
	}

	var bookings int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE hotel_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE d FROM discounts d
		 JOIN rooms rm ON rm.id = d.room_id
		 WHERE rm.hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
