package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// CatalogHandler serves the public browse endpoints: cities, hotels,
// rooms and reviews.  No authentication is required; responses expose
// only catalog fields.
type CatalogHandler struct {
	Cities   *repository.CityRepo
	Hotels   *repository.HotelRepo
	Rooms    *repository.RoomRepo
	Reviews  *repository.ReviewRepo
	Bookings *repository.BookingRepo
}

// NewCatalogHandler constructs a CatalogHandler.  All dependencies must
// be non-nil.
func NewCatalogHandler(cities *repository.CityRepo, hotels *repository.HotelRepo, rooms *repository.RoomRepo, reviews *repository.ReviewRepo, bookings *repository.BookingRepo) *CatalogHandler {
	if cities == nil || hotels == nil || rooms == nil || reviews == nil || bookings == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Cities: cities, Hotels: hotels, Rooms: rooms, Reviews: reviews, Bookings: bookings}
}

type cityItem struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type hotelItem struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Stars   uint8  `json:"stars"`
}

type roomItem struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	AdultsCapacity     int    `json:"adults_capacity"`
	ChildrenCapacity   int    `json:"children_capacity"`
	PricePerNightCents int64  `json:"price_per_night_cents"`
}

// ListCities handles GET /v1/cities.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	cities, err := h.Cities.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cities"})
	}
	items := make([]cityItem, 0, len(cities))
	for _, ct := range cities {
		items = append(items, cityItem{ID: ct.ID, Name: ct.Name, Country: ct.Country})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListHotels handles GET /v1/cities/:id/hotels.
func (h *CatalogHandler) ListHotels(c echo.Context) error {
	cityID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid city id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Cities.GetByID(ctx, cityID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hotels, err := h.Hotels.ListByCity(ctx, cityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotels"})
	}
	items := make([]hotelItem, 0, len(hotels))
	for _, ht := range hotels {
		items = append(items, hotelItem{ID: ht.ID, Name: ht.Name, Address: ht.Address, Stars: ht.Stars})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetHotel handles GET /v1/hotels/:id.
func (h *CatalogHandler) GetHotel(c echo.Context) error {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": hotelItem{ID: hotel.ID, Name: hotel.Name, Address: hotel.Address, Stars: hotel.Stars},
	})
}

// ListRooms handles GET /v1/hotels/:id/rooms.  With check_in and
// check_out query parameters only rooms free for every night of that
// window are returned; without them the full room list is served.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}

	checkIn, checkOut := c.QueryParam("check_in"), c.QueryParam("check_out")
	if checkIn != "" || checkOut != "" {
		stay, err := booking.ParseDateRange(checkIn, checkOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in/check_out must be YYYY-MM-DD with check_out after check_in"})
		}
		rooms, err = h.availableOnly(c, rooms, stay)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
	}

	items := make([]roomItem, 0, len(rooms))
	for _, rm := range rooms {
		items = append(items, roomItem{
			ID:                 rm.ID,
			Name:               rm.Name,
			AdultsCapacity:     rm.AdultsCapacity,
			ChildrenCapacity:   rm.ChildrenCapacity,
			PricePerNightCents: rm.PricePerNightCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": roomItem{
			ID:                 rm.ID,
			Name:               rm.Name,
			AdultsCapacity:     rm.AdultsCapacity,
			ChildrenCapacity:   rm.ChildrenCapacity,
			PricePerNightCents: rm.PricePerNightCents,
		},
	})
}

func (h *CatalogHandler) availableOnly(c echo.Context, rooms []model.Room, stay booking.DateRange) ([]model.Room, error) {
	ctx := c.Request().Context()
	free := make([]model.Room, 0, len(rooms))
	for _, rm := range rooms {
		existing, err := h.Bookings.OverlappingRanges(ctx, rm.ID, stay)
		if err != nil {
			return nil, err
		}
		if booking.Available(stay, existing) {
			free = append(free, rm)
		}
	}
	return free, nil
}

// ListReviews handles GET /v1/hotels/:id/reviews.
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.Reviews.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}
