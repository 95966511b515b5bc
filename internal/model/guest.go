package model

import "time"

// Guest is the profile attached one-to-one to a user account.  Bookings
// and reviews reference the guest, not the user, so identity concerns
// stay in the users table.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – linked user account (unique).
//  FirstName – given name.
//  LastName  – family name.
//  Phone     – contact phone number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Guest struct {
	ID        uint64    // guests.id
	UserID    uint64    // guests.user_id
	FirstName string    // guests.first_name
	LastName  string    // guests.last_name
	Phone     string    // guests.phone
	CreatedAt time.Time // guests.created_at
	UpdatedAt time.Time // guests.updated_at
}
