package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterGuest registers guest-scoped endpoints under /v1.  All routes
// require a valid JWT and the GUEST role.  Guests can place and cancel
// bookings, list their own bookings, fetch invoices and post reviews.
func RegisterGuest(e *echo.Echo, b *handler.BookingHandler, r *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("GUEST"),
	)

	g.POST("/bookings", b.Create)
	g.GET("/my-bookings", b.List)
	g.GET("/bookings/:id", b.Get)
	g.DELETE("/bookings/:id", b.Cancel)
	// JSON by default; ?format=pdf returns the rendered document.
	g.GET("/bookings/:id/invoice", b.Invoice)

	g.POST("/hotels/:id/reviews", r.Create)
	g.DELETE("/reviews/:id", r.Delete)
}
