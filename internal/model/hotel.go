package model

import "time"

// City is a catalog entry that groups hotels by location.  Cities are
// reference data managed by administrators and referenced by hotels.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique city name.
//  Country   – country the city belongs to.
//  CreatedAt – creation timestamp.
type City struct {
	ID        uint64    // cities.id
	Name      string    // cities.name
	Country   string    // cities.country
	CreatedAt time.Time // cities.created_at
}

// Hotel represents a property that owns rooms and receives bookings and
// reviews.  Each hotel belongs to one city and is administered by one
// manager account.
//
// Fields:
//  ID        – primary key identifier.
//  CityID    – city where the hotel is located.
//  ManagerID – user who administers the hotel.
//  Name      – hotel name.
//  Address   – street address.
//  Stars     – official star rating (1–5).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	CityID    uint64    // hotels.city_id
	ManagerID uint64    // hotels.manager_id
	Name      string    // hotels.name
	Address   string    // hotels.address
	Stars     uint8     // hotels.stars
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
