package model

import "time"

// Review is a guest's rating of a hotel.  Ratings run from 1 to 5 and
// the comment is optional.
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – reviewed hotel.
//  GuestID   – author of the review.
//  Rating    – star rating, 1 to 5.
//  Comment   – free-form text, may be empty.
//  CreatedAt – creation timestamp.
type Review struct {
	ID        uint64    // reviews.id
	HotelID   uint64    // reviews.hotel_id
	GuestID   uint64    // reviews.guest_id
	Rating    int       // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}
