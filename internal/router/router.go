// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/oceanview/hotel-reservation/internal/config"
	"github.com/oceanview/hotel-reservation/internal/handler"
	"github.com/oceanview/hotel-reservation/internal/middleware"
	"github.com/oceanview/hotel-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check, the public reservation intake used by the customer
// portal, and the cached room-type listing.
func RegisterRoutes(e *echo.Echo, res *handler.ReservationHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/room-types", handler.RoomTypes, middleware.NewRedisCache(cacheCfg, rdb))
	// The public intake shares the engine path with staff bookings; the
	// availability and date rules apply identically.
	e.POST("/v1/reservations/public", res.Create)
}

// RegisterAuth registers the login endpoint and the authenticated /v1/me
// identity endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterReservations registers the staff reservation endpoints.  All of
// them require a valid access token and one of the staff roles;
// cancellation is further restricted to ADMIN and MANAGER.
func RegisterReservations(e *echo.Echo, res *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleManager))

	g.POST("", res.Create)
	g.GET("", res.List)
	g.GET("/search", res.Search)
	g.GET("/:number", res.Get)
	g.PUT("/:number", res.Update)
	g.PUT("/:number/status", res.UpdateStatus)
	g.PUT("/:number/cancel", res.Cancel, middleware.RequireRole(model.RoleAdmin, model.RoleManager))
}
