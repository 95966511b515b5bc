package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// ManagerHandler bundles repositories for managers to maintain their
// hotels, rooms and discount windows.  JWT authentication and the
// MANAGER role are enforced by middleware before any of these run.
type ManagerHandler struct {
	Cities    *repository.CityRepo
	Hotels    *repository.HotelRepo
	Rooms     *repository.RoomRepo
	Discounts *repository.DiscountRepo
}

// NewManagerHandler constructs a ManagerHandler and panics if any
// dependency is nil.
func NewManagerHandler(cities *repository.CityRepo, hotels *repository.HotelRepo, rooms *repository.RoomRepo, discounts *repository.DiscountRepo) *ManagerHandler {
	if cities == nil || hotels == nil || rooms == nil || discounts == nil {
		panic("nil repository passed to NewManagerHandler")
	}
	return &ManagerHandler{Cities: cities, Hotels: hotels, Rooms: rooms, Discounts: discounts}
}

type createHotelReq struct {
	CityID  uint64 `json:"city_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Stars   uint8  `json:"stars"`
}

// CreateHotel handles POST /v1/manager/hotels.
func (h *ManagerHandler) CreateHotel(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createHotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.CityID == 0 || req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city_id, name and address are required"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 1 and 5"})
	}
	ctx := c.Request().Context()
	if _, err := h.Cities.GetByID(ctx, req.CityID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hotel := &model.Hotel{
		CityID:    req.CityID,
		ManagerID: managerID,
		Name:      req.Name,
		Address:   req.Address,
		Stars:     req.Stars,
	}
	if err := h.Hotels.Create(ctx, hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create hotel"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": hotel.ID, "name": hotel.Name})
}

// ListHotels handles GET /v1/manager/hotels.
func (h *ManagerHandler) ListHotels(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotels, err := h.Hotels.ListByManager(c.Request().Context(), managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotels"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels})
}

// DeleteHotel handles DELETE /v1/manager/hotels/:id.  A hotel that
// still has bookings cannot be removed.
func (h *ManagerHandler) DeleteHotel(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if err := h.Hotels.DeleteByIDAndManager(c.Request().Context(), id, managerID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel has bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete hotel"})
	}
	return c.NoContent(http.StatusNoContent)
}

type createRoomReq struct {
	Name               string `json:"name"`
	AdultsCapacity     int    `json:"adults_capacity"`
	ChildrenCapacity   int    `json:"children_capacity"`
	PricePerNightCents int64  `json:"price_per_night_cents"`
}

// CreateRoom handles POST /v1/manager/hotels/:id/rooms.
func (h *ManagerHandler) CreateRoom(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByIDAndManager(ctx, hotelID, managerID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.AdultsCapacity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adults_capacity must be at least 1"})
	}
	if req.ChildrenCapacity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "children_capacity must not be negative"})
	}
	if req.PricePerNightCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_night_cents must be positive"})
	}
	room := &model.Room{
		HotelID:            hotelID,
		Name:               req.Name,
		AdultsCapacity:     req.AdultsCapacity,
		ChildrenCapacity:   req.ChildrenCapacity,
		PricePerNightCents: req.PricePerNightCents,
	}
	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": room.ID, "name": room.Name})
}

type createDiscountReq struct {
	PercentOff           *int   `json:"percent_off"`
	DiscountedPriceCents *int64 `json:"discounted_price_cents"`
	StartsOn             string `json:"starts_on"` // YYYY-MM-DD
	EndsOn               string `json:"ends_on"`   // YYYY-MM-DD
}

// CreateDiscount handles POST /v1/manager/rooms/:id/discounts.  A
// discount must carry a percentage in [1,100], an explicit nightly
// price, or both; when both are set the explicit price wins at pricing
// time.
func (h *ManagerHandler) CreateDiscount(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Hotels.GetByIDAndManager(ctx, room.HotelID, managerID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req createDiscountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PercentOff == nil && req.DiscountedPriceCents == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "percent_off or discounted_price_cents is required"})
	}
	if req.PercentOff != nil && (*req.PercentOff < 1 || *req.PercentOff > 100) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "percent_off must be between 1 and 100"})
	}
	if req.DiscountedPriceCents != nil && *req.DiscountedPriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "discounted_price_cents must be positive"})
	}
	startsOn, err1 := time.ParseInLocation(booking.DateLayout, req.StartsOn, time.UTC)
	endsOn, err2 := time.ParseInLocation(booking.DateLayout, req.EndsOn, time.UTC)
	if err1 != nil || err2 != nil || !endsOn.After(startsOn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_on/ends_on must be YYYY-MM-DD with ends_on after starts_on"})
	}

	d := &model.Discount{
		RoomID:               roomID,
		PercentOff:           req.PercentOff,
		DiscountedPriceCents: req.DiscountedPriceCents,
		StartsOn:             startsOn,
		EndsOn:               endsOn,
	}
	if err := h.Discounts.Create(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create discount"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": d.ID})
}

// DeleteDiscount handles DELETE /v1/manager/discounts/:id.  Removing a
// discount never touches existing bookings; their totals were
// snapshotted at confirmation time.
func (h *ManagerHandler) DeleteDiscount(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid discount id"})
	}
	ctx := c.Request().Context()
	_, ownerID, err := h.Discounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "discount not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ownerID != managerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Discounts.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete discount"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoomDiscounts handles GET /v1/manager/rooms/:id/discounts.
func (h *ManagerHandler) ListRoomDiscounts(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Hotels.GetByIDAndManager(ctx, room.HotelID, managerID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	discounts, err := h.Rooms.DiscountsForRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load discounts"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": discounts})
}
