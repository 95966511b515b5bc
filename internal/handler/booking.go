package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
	"github.com/iliyamo/hotel-room-booking/internal/invoice"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-room-booking/internal/service"
)

// BookingHandler exposes the guest-facing booking endpoints.  Request
// validation and pricing are delegated to the booking engine; the
// handler translates engine errors into HTTP responses and enriches
// confirmations with catalog data for the event payload.
type BookingHandler struct {
	Engine   *booking.Engine
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
	Guests   *repository.GuestRepo
	Users    *repository.UserRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must
// be non-nil.
func NewBookingHandler(engine *booking.Engine, bookings *repository.BookingRepo, rooms *repository.RoomRepo, hotels *repository.HotelRepo, guests *repository.GuestRepo, users *repository.UserRepo) *BookingHandler {
	if engine == nil || bookings == nil || rooms == nil || hotels == nil || guests == nil || users == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Bookings: bookings, Rooms: rooms, Hotels: hotels, Guests: guests, Users: users}
}

type createBookingReq struct {
	HotelID  uint64   `json:"hotel_id"`
	RoomIDs  []uint64 `json:"room_ids"`
	CheckIn  string   `json:"check_in"`  // YYYY-MM-DD
	CheckOut string   `json:"check_out"` // YYYY-MM-DD
	Adults   int      `json:"adults"`
	Children int      `json:"children"`
}

type bookingResp struct {
	ID                      uint64             `json:"id"`
	ConfirmationID          string             `json:"confirmation_id"`
	HotelID                 uint64             `json:"hotel_id"`
	CheckIn                 string             `json:"check_in"`
	CheckOut                string             `json:"check_out"`
	Adults                  int                `json:"adults"`
	Children                int                `json:"children"`
	Rooms                   []booking.LineItem `json:"rooms"`
	TotalCents              int64              `json:"total_cents"`
	TotalAfterDiscountCents int64              `json:"total_after_discount_cents"`
}

// bookingErrorResponse maps engine failures onto HTTP responses.  A
// commit-time availability loss is reported exactly like a pre-check
// failure, so callers cannot tell the two apart.
func bookingErrorResponse(c echo.Context, err error) error {
	var (
		capErr     *booking.InsufficientCapacityError
		availErr   *booking.RoomUnavailableError
		hotelErr   *booking.RoomNotInHotelError
		priceErr   *booking.PriceCalculationError
		startedErr *booking.BookingStartedError
	)
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	case errors.Is(err, booking.ErrNoRooms):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_ids is required"})
	case errors.Is(err, booking.ErrDuplicateRoom):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &capErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": capErr.Error()})
	case errors.As(err, &hotelErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": hotelErr.Error()})
	case errors.As(err, &availErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": availErr.Error()})
	case errors.As(err, &priceErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": priceErr.Error()})
	case errors.As(err, &startedErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": startedErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}

// Create handles POST /v1/bookings.  The caller must hold a guest
// profile; the engine validates capacity, availability and pricing and
// commits the booking.  On success a booking.confirmed event is
// published on a best-effort basis.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	guest, err := h.Guests.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "guest profile required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id is required"})
	}
	stay, err := booking.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in/check_out must be YYYY-MM-DD with check_out after check_in"})
	}
	if req.Adults < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one adult is required"})
	}
	if req.Children < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "children must not be negative"})
	}

	conf, err := h.Engine.Book(ctx, booking.Request{
		GuestID:  guest.ID,
		HotelID:  req.HotelID,
		RoomIDs:  req.RoomIDs,
		Stay:     stay,
		Adults:   req.Adults,
		Children: req.Children,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	go h.publishConfirmed(guest, *conf)

	return c.JSON(http.StatusCreated, bookingResp{
		ID:                      conf.Booking.ID,
		ConfirmationID:          conf.Booking.ConfirmationID,
		HotelID:                 conf.Booking.HotelID,
		CheckIn:                 conf.Booking.CheckIn.Format(booking.DateLayout),
		CheckOut:                conf.Booking.CheckOut.Format(booking.DateLayout),
		Adults:                  conf.Booking.Adults,
		Children:                conf.Booking.Children,
		Rooms:                   conf.Lines,
		TotalCents:              conf.Totals.TotalCents,
		TotalAfterDiscountCents: conf.Totals.TotalAfterDiscountCents,
	})
}

// publishConfirmed assembles and publishes the booking.confirmed event.
// It runs detached from the request; failures are logged by the
// publisher and never affect the committed booking.
func (h *BookingHandler) publishConfirmed(guest model.Guest, conf booking.Confirmation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var hotelName, hotelAddress string
	if hotel, err := h.Hotels.GetByID(ctx, conf.Booking.HotelID); err == nil {
		hotelName = hotel.Name
		hotelAddress = hotel.Address
	}
	var email string
	if u, err := h.Users.GetByID(ctx, guest.UserID); err == nil {
		email = u.Email
	}

	roomIDs := make([]uint64, 0, len(conf.Lines))
	for _, l := range conf.Lines {
		roomIDs = append(roomIDs, l.RoomID)
	}
	names := make(map[uint64]string, len(roomIDs))
	if rooms, err := h.Rooms.RoomsByIDs(ctx, roomIDs); err == nil {
		for _, rm := range rooms {
			names[rm.ID] = rm.Name
		}
	}

	nights := 0
	if n, err := (booking.DateRange{CheckIn: conf.Booking.CheckIn, CheckOut: conf.Booking.CheckOut}).Nights(); err == nil {
		nights = n
	}

	lines := make([]queue.BookedRoomLine, 0, len(conf.Lines))
	for _, l := range conf.Lines {
		lines = append(lines, queue.BookedRoomLine{
			RoomID:                          l.RoomID,
			RoomName:                        names[l.RoomID],
			PricePerNightCents:              l.PricePerNightCents,
			PricePerNightAfterDiscountCents: l.PricePerNightAfterDiscountCents,
			TotalAfterDiscountCents:         l.TotalAfterDiscountCents,
		})
	}

	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:               conf.Booking.ID,
		ConfirmationID:          conf.Booking.ConfirmationID,
		GuestID:                 guest.ID,
		GuestName:               strings.TrimSpace(guest.FirstName + " " + guest.LastName),
		GuestEmail:              email,
		HotelID:                 conf.Booking.HotelID,
		HotelName:               hotelName,
		HotelAddress:            hotelAddress,
		CheckIn:                 conf.Booking.CheckIn.Format(booking.DateLayout),
		CheckOut:                conf.Booking.CheckOut.Format(booking.DateLayout),
		Nights:                  nights,
		Adults:                  conf.Booking.Adults,
		Children:                conf.Booking.Children,
		Rooms:                   lines,
		TotalCents:              conf.Totals.TotalCents,
		TotalAfterDiscountCents: conf.Totals.TotalAfterDiscountCents,
		ConfirmedAt:             time.Now().UTC().Format(time.RFC3339),
	})
}

// List handles GET /v1/my-bookings.  It returns all bookings of the
// current guest with hotel and room names, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	guest, err := h.Guests.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "guest profile required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	details, err := h.Bookings.ListByGuest(ctx, guest.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// loadOwnBooking fetches a booking and verifies it belongs to the
// calling user's guest profile.  The returned error, if any, has
// already been written to the response.
func (h *BookingHandler) loadOwnBooking(c echo.Context) (model.Booking, model.Guest, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.Booking{}, model.Guest{}, false
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
		return model.Booking{}, model.Guest{}, false
	}
	ctx := c.Request().Context()
	guest, err := h.Guests.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.JSON(http.StatusForbidden, echo.Map{"error": "guest profile required"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
		}
		return model.Booking{}, model.Guest{}, false
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
		}
		return model.Booking{}, model.Guest{}, false
	}
	if b.GuestID != guest.ID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return model.Booking{}, model.Guest{}, false
	}
	return b, guest, true
}

// Get handles GET /v1/bookings/:id for the owning guest.
func (h *BookingHandler) Get(c echo.Context) error {
	b, _, ok := h.loadOwnBooking(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()
	roomIDs, err := h.Bookings.RoomIDsForBooking(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                         b.ID,
		"confirmation_id":            b.ConfirmationID,
		"hotel_id":                   b.HotelID,
		"check_in":                   b.CheckIn.Format(booking.DateLayout),
		"check_out":                  b.CheckOut.Format(booking.DateLayout),
		"adults":                     b.Adults,
		"children":                   b.Children,
		"room_ids":                   roomIDs,
		"total_cents":                b.TotalCents,
		"total_after_discount_cents": b.TotalAfterDiscountCents,
	})
}

// Cancel handles DELETE /v1/bookings/:id.  A booking can be cancelled
// only before its check-in date.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	guest, err := h.Guests.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "guest profile required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	if err := h.Engine.Cancel(ctx, id, guest.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, booking.ErrNotBookingOwner) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		var started *booking.BookingStartedError
		if errors.As(err, &started) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "stay already started"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Invoice handles GET /v1/bookings/:id/invoice.  The response is JSON
// by default; with ?format=pdf (or an application/pdf Accept header) a
// rendered PDF document is returned instead.  Amounts always reflect
// the price snapshot taken at confirmation time; if current tariffs
// have drifted the summary carries a warning flag.
func (h *BookingHandler) Invoice(c echo.Context) error {
	b, guest, ok := h.loadOwnBooking(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()

	hotel, err := h.Hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hotel failed"})
	}
	roomIDs, err := h.Bookings.RoomIDsForBooking(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking rooms"})
	}
	rooms, err := h.Rooms.RoomsByIDs(ctx, roomIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	discounts := make(map[uint64][]model.Discount, len(rooms))
	for _, rm := range rooms {
		ds, err := h.Rooms.DiscountsForRoom(ctx, rm.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load discounts"})
		}
		discounts[rm.ID] = ds
	}

	summary, err := booking.AssembleInvoice(b, *hotel, guest, rooms, discounts)
	if err != nil {
		var priceErr *booking.PriceCalculationError
		if errors.As(err, &priceErr) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": priceErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invoice failed"})
	}

	wantsPDF := c.QueryParam("format") == "pdf" ||
		strings.Contains(c.Request().Header.Get("Accept"), "application/pdf")
	if wantsPDF {
		data, err := invoice.RenderPDF(summary)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render pdf failed"})
		}
		c.Response().Header().Set("Content-Disposition",
			`attachment; filename="invoice-`+summary.ConfirmationID+`.pdf"`)
		return c.Blob(http.StatusOK, "application/pdf", data)
	}
	return c.JSON(http.StatusOK, summary)
}
