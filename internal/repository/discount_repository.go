package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// DiscountRepo provides the write side of room discounts for manager
// endpoints.  Reads used by the booking engine live on RoomRepo.
type DiscountRepo struct {
	db *sql.DB
}

// NewDiscountRepo returns a new DiscountRepo bound to the given database.
func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// Create inserts a discount and populates the generated id.  The
// percentage/price invariant is validated by the handler before this
// call; the repository only persists.
func (r *DiscountRepo) Create(ctx context.Context, d *model.Discount) error {
	const q = `INSERT INTO discounts (room_id, percent_off, discounted_price_cents, starts_on, ends_on)
	           VALUES (?, ?, ?, ?, ?)`
	var pct, price interface{}
	if d.PercentOff != nil {
		pct = *d.PercentOff
	}
	if d.DiscountedPriceCents != nil {
		price = *d.DiscountedPriceCents
	}
	res, err := r.db.ExecContext(ctx, q, d.RoomID, pct, price, d.StartsOn, d.EndsOn)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID returns one discount together with the manager who owns the
// room's hotel, so handlers can enforce ownership before deleting.
func (r *DiscountRepo) GetByID(ctx context.Context, id uint64) (model.Discount, uint64, error) {
	const q = `SELECT d.id, d.room_id, d.percent_off, d.discounted_price_cents, d.starts_on, d.ends_on, d.created_at, h.manager_id
	           FROM discounts d
	           JOIN rooms rm ON rm.id = d.room_id
	           JOIN hotels h ON h.id = rm.hotel_id
	           WHERE d.id = ?`
	var d model.Discount
	var pct, price sql.NullInt64
	var managerID uint64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.RoomID, &pct, &price, &d.StartsOn, &d.EndsOn, &d.CreatedAt, &managerID)
	if err != nil {
		return model.Discount{}, 0, err
	}
	if pct.Valid {
		p := int(pct.Int64)
		d.PercentOff = &p
	}
	if price.Valid {
		v := price.Int64
		d.DiscountedPriceCents = &v
	}
	return d, managerID, nil
}

// Delete removes a discount.
func (r *DiscountRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = ?`, id)
	return err
}
