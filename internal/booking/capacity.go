package booking

import "github.com/iliyamo/hotel-room-booking/internal/model"

// CheckCapacity verifies that the combined capacity of the selected
// rooms covers the requested party.  The adults check runs first so the
// reported error is deterministic when both counts fall short.  The
// function is pure over the supplied room snapshots.
func CheckCapacity(rooms []model.Room, adults, children int) error {
	var adultCap, childCap int
	for _, r := range rooms {
		adultCap += r.AdultsCapacity
		childCap += r.ChildrenCapacity
	}
	if adultCap < adults {
		return &InsufficientCapacityError{Kind: CapacityAdults, Requested: adults, Available: adultCap}
	}
	if childCap < children {
		return &InsufficientCapacityError{Kind: CapacityChildren, Requested: children, Available: childCap}
	}
	return nil
}
