package model

import "time"

// Room is a bookable unit owned by exactly one hotel.  Capacity is split
// into adults and children because both are validated independently when
// a booking is placed.  Prices are stored in cents to keep all money
// arithmetic exact.
//
// Fields:
//  ID                 – primary key identifier.
//  HotelID            – owning hotel.
//  Name               – room name or number shown to guests.
//  AdultsCapacity     – maximum number of adults.
//  ChildrenCapacity   – maximum number of children.
//  PricePerNightCents – base nightly price in cents.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Room struct {
	ID                 uint64    // rooms.id
	HotelID            uint64    // rooms.hotel_id
	Name               string    // rooms.name
	AdultsCapacity     int       // rooms.adults_capacity
	ChildrenCapacity   int       // rooms.children_capacity
	PricePerNightCents int64     // rooms.price_per_night_cents
	CreatedAt          time.Time // rooms.created_at
	UpdatedAt          time.Time // rooms.updated_at
}

// Discount belongs to one room and is active for stay nights inside the
// half-open [StartsOn, EndsOn) window.  At least one of PercentOff or
// DiscountedPriceCents is always set; when both are present the explicit
// discounted price wins.  PercentOff, when set, is within [1,100].
//
// Fields:
//  ID                   – primary key identifier.
//  RoomID               – room the discount applies to.
//  PercentOff           – percentage reduction (nullable).
//  DiscountedPriceCents – explicit nightly price in cents (nullable).
//  StartsOn             – first day the discount is active.
//  EndsOn               – first day the discount is no longer active.
//  CreatedAt            – creation timestamp.
type Discount struct {
	ID                   uint64    // discounts.id
	RoomID               uint64    // discounts.room_id
	PercentOff           *int      // discounts.percent_off (nullable)
	DiscountedPriceCents *int64    // discounts.discounted_price_cents (nullable)
	StartsOn             time.Time // discounts.starts_on
	EndsOn               time.Time // discounts.ends_on
	CreatedAt            time.Time // discounts.created_at
}
