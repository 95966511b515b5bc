package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterManager registers MANAGER-scoped endpoints under /v1/manager.
// All routes require a valid JWT and MANAGER role.
func RegisterManager(e *echo.Echo, m *handler.ManagerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/manager",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER"),
	)

	// ---- Hotels ----
	g.POST("/hotels", m.CreateHotel)
	g.GET("/hotels", m.ListHotels)
	g.DELETE("/hotels/:id", m.DeleteHotel)

	// ---- Rooms ----
	g.POST("/hotels/:id/rooms", m.CreateRoom)

	// ---- Discounts ----
	g.POST("/rooms/:id/discounts", m.CreateDiscount)
	g.GET("/rooms/:id/discounts", m.ListRoomDiscounts)
	g.DELETE("/discounts/:id", m.DeleteDiscount)
}
