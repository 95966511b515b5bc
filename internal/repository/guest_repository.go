package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// GuestRepo manages guest profiles.  A guest row is created alongside
// registration and linked one-to-one with the user account.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the provided DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, user_id, first_name, last_name, phone, created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }, g *model.Guest) error {
	return row.Scan(&g.ID, &g.UserID, &g.FirstName, &g.LastName, &g.Phone,
		&g.CreatedAt, &g.UpdatedAt)
}

// Create inserts a guest profile and populates the generated id.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (user_id, first_name, last_name, phone) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.UserID, g.FirstName, g.LastName, g.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID returns one guest profile.  sql.ErrNoRows is returned when no
// profile exists.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	var g model.Guest
	err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id), &g)
	return g, err
}

// GetByUserID returns the guest profile linked to a user account.
// sql.ErrNoRows is returned when the user has no guest profile.
func (r *GuestRepo) GetByUserID(ctx context.Context, userID uint64) (model.Guest, error) {
	var g model.Guest
	err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE user_id = ?`, userID), &g)
	return g, err
}

// Update replaces the mutable profile fields of a guest.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	const q = `UPDATE guests
	           SET first_name = ?, last_name = ?, phone = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, g.FirstName, g.LastName, g.Phone, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
