package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts a
	// refresh_token body or a bearer header and revokes accordingly.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("GUEST", "MANAGER"))
	auth.GET("/me", a.Me)

	// Alias outside the protected group so a refresh token alone can end
	// a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints.  The
// catalog handler returns sanitized data for cities, hotels, rooms and
// reviews; no JWT or role middleware applies.
func RegisterPublic(e *echo.Echo, p *handler.CatalogHandler) {
	e.GET("/v1/cities", p.ListCities)
	e.GET("/v1/cities/:id/hotels", p.ListHotels)
	e.GET("/v1/hotels/:id", p.GetHotel)
	// Accepts optional ?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD to show
	// only rooms free for that window.
	e.GET("/v1/hotels/:id/rooms", p.ListRooms)
	e.GET("/v1/rooms/:id", p.GetRoom)
	e.GET("/v1/hotels/:id/reviews", p.ListReviews)
}
