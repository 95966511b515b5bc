package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// ReviewRepo manages guest reviews of hotels.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// HotelReview carries a review together with the author's display name
// for public listings.
type HotelReview struct {
	ID        uint64 `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	GuestName string `json:"guest_name"`
	CreatedAt string `json:"created_at"`
}

// Create inserts a review and populates the generated id.  The rating
// range is validated by the handler; the repository only persists.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (hotel_id, guest_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.HotelID, rv.GuestID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID returns one review.  sql.ErrNoRows is returned when it does
// not exist.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	const q = `SELECT id, hotel_id, guest_id, rating, comment, created_at FROM reviews WHERE id = ?`
	var rv model.Review
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rv.ID, &rv.HotelID, &rv.GuestID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, err
}

// ListByHotel returns a hotel's reviews newest first, including the
// author's display name.
func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]HotelReview, error) {
	const q = `SELECT rv.id, rv.rating, rv.comment, CONCAT(g.first_name, ' ', g.last_name), rv.created_at
	           FROM reviews rv
	           JOIN guests g ON g.id = rv.guest_id
	           WHERE rv.hotel_id = ?
	           ORDER BY rv.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]HotelReview, 0)
	for rows.Next() {
		var hr HotelReview
		var created sql.NullTime
		if err := rows.Scan(&hr.ID, &hr.Rating, &hr.Comment, &hr.GuestName, &created); err != nil {
			return nil, err
		}
		if created.Valid {
			hr.CreatedAt = created.Time.UTC().Format("2006-01-02 15:04:05")
		}
		out = append(out, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasStayed reports whether a guest holds at least one booking at the
// hotel, which is required before posting a review.
func (r *ReviewRepo) HasStayed(ctx context.Context, guestID, hotelID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE guest_id = ? AND hotel_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, guestID, hotelID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	return err
}
