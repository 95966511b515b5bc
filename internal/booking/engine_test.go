package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// mockRoomStore and mockBookingStore are hand-written test doubles in
// the function-field style: set only the methods a test needs.
type mockRoomStore struct {
	roomsByIDs       func(ctx context.Context, ids []uint64) ([]model.Room, error)
	discountsForRoom func(ctx context.Context, roomID uint64) ([]model.Discount, error)
}

func (m *mockRoomStore) RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error) {
	return m.roomsByIDs(ctx, ids)
}

func (m *mockRoomStore) DiscountsForRoom(ctx context.Context, roomID uint64) ([]model.Discount, error) {
	if m.discountsForRoom == nil {
		return nil, nil
	}
	return m.discountsForRoom(ctx, roomID)
}

var _ booking.RoomStore = (*mockRoomStore)(nil)

type mockBookingStore struct {
	overlappingRanges func(ctx context.Context, roomID uint64, stay booking.DateRange) ([]booking.DateRange, error)
	create            func(ctx context.Context, b *model.Booking, roomIDs []uint64) error
	getByID           func(ctx context.Context, id uint64) (model.Booking, error)
	delete            func(ctx context.Context, id uint64) error
}

func (m *mockBookingStore) OverlappingRanges(ctx context.Context, roomID uint64, stay booking.DateRange) ([]booking.DateRange, error) {
	if m.overlappingRanges == nil {
		return nil, nil
	}
	return m.overlappingRanges(ctx, roomID, stay)
}

func (m *mockBookingStore) Create(ctx context.Context, b *model.Booking, roomIDs []uint64) error {
	return m.create(ctx, b, roomIDs)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return m.getByID(ctx, id)
}

func (m *mockBookingStore) Delete(ctx context.Context, id uint64) error {
	return m.delete(ctx, id)
}

var _ booking.BookingStore = (*mockBookingStore)(nil)

// fixedClock always reports the same instant.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func hotelRooms() *mockRoomStore {
	rooms := map[uint64]model.Room{
		1: {ID: 1, HotelID: 10, AdultsCapacity: 2, ChildrenCapacity: 1, PricePerNightCents: 10000},
		2: {ID: 2, HotelID: 10, AdultsCapacity: 2, ChildrenCapacity: 2, PricePerNightCents: 15000},
		9: {ID: 9, HotelID: 99, AdultsCapacity: 2, ChildrenCapacity: 2, PricePerNightCents: 20000},
	}
	return &mockRoomStore{
		roomsByIDs: func(_ context.Context, ids []uint64) ([]model.Room, error) {
			out := make([]model.Room, 0, len(ids))
			for _, id := range ids {
				if r, ok := rooms[id]; ok {
					out = append(out, r)
				}
			}
			return out, nil
		},
	}
}

func validRequest(t *testing.T) booking.Request {
	return booking.Request{
		GuestID:  5,
		HotelID:  10,
		RoomIDs:  []uint64{1, 2},
		Stay:     stay(t, "2025-06-01", "2025-06-04"),
		Adults:   4,
		Children: 2,
	}
}

// ---- Book ------------------------------------------------------------------

func TestBook_Confirmed(t *testing.T) {
	var persisted *model.Booking
	var persistedRooms []uint64
	store := &mockBookingStore{
		create: func(_ context.Context, b *model.Booking, roomIDs []uint64) error {
			b.ID = 42
			persisted = b
			persistedRooms = roomIDs
			return nil
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})

	conf, err := engine.Book(context.Background(), validRequest(t))

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, []uint64{1, 2}, persistedRooms)
	assert.NotEmpty(t, conf.Booking.ConfirmationID)
	// 3 nights: room 1 at 100.00, room 2 at 150.00.
	assert.Equal(t, int64(75000), conf.Totals.TotalCents)
	// No discounts configured, so the charged snapshot equals the base total.
	assert.Equal(t, int64(75000), conf.Booking.TotalAfterDiscountCents)
	require.Len(t, conf.Lines, 2)
	assert.Equal(t, uint64(1), conf.Lines[0].RoomID)
	assert.Equal(t, uint64(2), conf.Lines[1].RoomID)
}

func TestBook_SnapshotsDiscountedTotal(t *testing.T) {
	rooms := hotelRooms()
	rooms.discountsForRoom = func(_ context.Context, roomID uint64) ([]model.Discount, error) {
		if roomID != 1 {
			return nil, nil
		}
		return []model.Discount{{
			ID: 3, RoomID: 1, PercentOff: intPtr(20),
			StartsOn: date("2025-05-01"), EndsOn: date("2025-07-01"),
		}}, nil
	}
	store := &mockBookingStore{
		create: func(context.Context, *model.Booking, []uint64) error { return nil },
	}
	engine := booking.NewEngine(rooms, store, booking.UTCClock{})

	conf, err := engine.Book(context.Background(), validRequest(t))

	require.NoError(t, err)
	// Room 1: 3 nights at 80.00 = 240.00; room 2 unchanged at 450.00.
	assert.Equal(t, int64(75000), conf.Booking.TotalCents)
	assert.Equal(t, int64(69000), conf.Booking.TotalAfterDiscountCents)
}

func TestBook_InvalidRange(t *testing.T) {
	engine := booking.NewEngine(hotelRooms(), &mockBookingStore{}, booking.UTCClock{})
	req := validRequest(t)
	req.Stay = booking.DateRange{CheckIn: date("2025-06-04"), CheckOut: date("2025-06-01")}

	_, err := engine.Book(context.Background(), req)

	assert.ErrorIs(t, err, booking.ErrInvalidRange)
}

func TestBook_InsufficientCapacity(t *testing.T) {
	created := false
	store := &mockBookingStore{
		create: func(context.Context, *model.Booking, []uint64) error {
			created = true
			return nil
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})
	req := validRequest(t)
	req.Adults = 9

	_, err := engine.Book(context.Background(), req)

	var capErr *booking.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, booking.CapacityAdults, capErr.Kind)
	assert.False(t, created, "rejected request must not write")
}

func TestBook_RoomFromAnotherHotel(t *testing.T) {
	engine := booking.NewEngine(hotelRooms(), &mockBookingStore{}, booking.UTCClock{})
	req := validRequest(t)
	req.RoomIDs = []uint64{1, 9}
	req.Adults = 2
	req.Children = 0

	_, err := engine.Book(context.Background(), req)

	var hotelErr *booking.RoomNotInHotelError
	require.ErrorAs(t, err, &hotelErr)
	assert.Equal(t, uint64(9), hotelErr.RoomID)
	assert.Equal(t, uint64(10), hotelErr.HotelID)
}

func TestBook_RoomUnavailable(t *testing.T) {
	busy := stay(t, "2025-06-01", "2025-06-05")
	store := &mockBookingStore{
		overlappingRanges: func(_ context.Context, roomID uint64, _ booking.DateRange) ([]booking.DateRange, error) {
			if roomID == 2 {
				return []booking.DateRange{busy}, nil
			}
			return nil, nil
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})

	_, err := engine.Book(context.Background(), validRequest(t))

	var unavailable *booking.RoomUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint64(2), unavailable.RoomID)
}

func TestBook_CommitRaceSurfacesAsUnavailable(t *testing.T) {
	// Pre-commit checks pass but the store reports a conflict at commit
	// time; the caller sees the same error as a plain availability miss.
	raceErr := &booking.RoomUnavailableError{RoomID: 1, Stay: stay(t, "2025-06-01", "2025-06-04")}
	store := &mockBookingStore{
		create: func(context.Context, *model.Booking, []uint64) error { return raceErr },
	}
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})

	_, err := engine.Book(context.Background(), validRequest(t))

	var unavailable *booking.RoomUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint64(1), unavailable.RoomID)
}

func TestBook_UnknownRoom(t *testing.T) {
	engine := booking.NewEngine(hotelRooms(), &mockBookingStore{}, booking.UTCClock{})
	req := validRequest(t)
	req.RoomIDs = []uint64{1, 77}

	_, err := engine.Book(context.Background(), req)

	assert.ErrorIs(t, err, booking.ErrRoomNotFound)
}

func TestBook_DuplicateRoom(t *testing.T) {
	engine := booking.NewEngine(hotelRooms(), &mockBookingStore{}, booking.UTCClock{})
	req := validRequest(t)
	req.RoomIDs = []uint64{1, 1}

	_, err := engine.Book(context.Background(), req)

	assert.ErrorIs(t, err, booking.ErrDuplicateRoom)
}

func TestBook_NoRooms(t *testing.T) {
	engine := booking.NewEngine(hotelRooms(), &mockBookingStore{}, booking.UTCClock{})
	req := validRequest(t)
	req.RoomIDs = nil

	_, err := engine.Book(context.Background(), req)

	assert.ErrorIs(t, err, booking.ErrNoRooms)
}

func TestBook_StoreErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	store := &mockBookingStore{
		overlappingRanges: func(context.Context, uint64, booking.DateRange) ([]booking.DateRange, error) {
			return nil, boom
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})

	_, err := engine.Book(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, boom)
}

// ---- Cancel ----------------------------------------------------------------

func TestCancel_FutureBooking(t *testing.T) {
	deleted := uint64(0)
	store := &mockBookingStore{
		getByID: func(_ context.Context, id uint64) (model.Booking, error) {
			return model.Booking{ID: id, GuestID: 5, CheckIn: date("2025-06-10")}, nil
		},
		delete: func(_ context.Context, id uint64) error {
			deleted = id
			return nil
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, fixedClock{now: date("2025-06-01")})

	require.NoError(t, engine.Cancel(context.Background(), 42, 5))
	assert.Equal(t, uint64(42), deleted)
}

func TestCancel_AlreadyStarted(t *testing.T) {
	store := &mockBookingStore{
		getByID: func(_ context.Context, id uint64) (model.Booking, error) {
			return model.Booking{ID: id, GuestID: 5, CheckIn: date("2025-06-01")}, nil
		},
		delete: func(context.Context, uint64) error {
			t.Fatal("delete must not be called for a started booking")
			return nil
		},
	}
	// Check-in day itself counts as started.
	engine := booking.NewEngine(hotelRooms(), store, fixedClock{now: date("2025-06-01")})

	err := engine.Cancel(context.Background(), 42, 5)

	var started *booking.BookingStartedError
	require.ErrorAs(t, err, &started)
	assert.Equal(t, uint64(42), started.BookingID)
}

func TestCancel_ForeignBooking(t *testing.T) {
	store := &mockBookingStore{
		getByID: func(_ context.Context, id uint64) (model.Booking, error) {
			return model.Booking{ID: id, GuestID: 8, CheckIn: date("2025-06-10")}, nil
		},
	}
	engine := booking.NewEngine(hotelRooms(), store, fixedClock{now: date("2025-06-01")})

	err := engine.Cancel(context.Background(), 42, 5)

	assert.ErrorIs(t, err, booking.ErrNotBookingOwner)
}

// ---- concurrency -----------------------------------------------------------

// memoryBookingStore mimics the transactional repository: the conflict
// re-check and the insert happen under one lock, so of two racing
// requests exactly one can win.
type memoryBookingStore struct {
	mu     sync.Mutex
	nextID uint64
	byRoom map[uint64][]booking.DateRange
}

func newMemoryBookingStore() *memoryBookingStore {
	return &memoryBookingStore{byRoom: make(map[uint64][]booking.DateRange)}
}

func (s *memoryBookingStore) OverlappingRanges(_ context.Context, roomID uint64, stay booking.DateRange) ([]booking.DateRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.DateRange
	for _, r := range s.byRoom[roomID] {
		if r.Overlaps(stay) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryBookingStore) Create(_ context.Context, b *model.Booking, roomIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stay := booking.DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
	for _, roomID := range roomIDs {
		for _, r := range s.byRoom[roomID] {
			if r.Overlaps(stay) {
				return &booking.RoomUnavailableError{RoomID: roomID, Stay: stay}
			}
		}
	}
	s.nextID++
	b.ID = s.nextID
	for _, roomID := range roomIDs {
		s.byRoom[roomID] = append(s.byRoom[roomID], stay)
	}
	return nil
}

func (s *memoryBookingStore) GetByID(context.Context, uint64) (model.Booking, error) {
	return model.Booking{}, errors.New("not implemented")
}

func (s *memoryBookingStore) Delete(context.Context, uint64) error {
	return errors.New("not implemented")
}

var _ booking.BookingStore = (*memoryBookingStore)(nil)

func TestBook_ConcurrentRequestsExactlyOneWins(t *testing.T) {
	store := newMemoryBookingStore()
	engine := booking.NewEngine(hotelRooms(), store, booking.UTCClock{})
	req := validRequest(t)
	req.RoomIDs = []uint64{1}
	req.Adults = 2
	req.Children = 1

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Book(context.Background(), req)
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, err := range errs {
		if err == nil {
			confirmed++
			continue
		}
		var unavailable *booking.RoomUnavailableError
		require.ErrorAs(t, err, &unavailable)
	}
	assert.Equal(t, 1, confirmed, "exactly one racing request may commit")
}
