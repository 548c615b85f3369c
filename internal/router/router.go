package router // router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/handler"
	"github.com/iliyamo/hotel-booking-admin/internal/middleware"
	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// Guard is the middleware chain shared by every admin-only group.
// RateLimit and Cache may be nil when Redis is not configured.
type Guard struct {
	JWTSecret string
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

// Group mounts prefix behind JWTAuth and the ADMIN role.  The limiter and
// cache run after authentication so both can key on the admin id.
func (g Guard) Group(e *echo.Echo, prefix string) *echo.Group {
	mws := []echo.MiddlewareFunc{
		middleware.JWTAuth(g.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
	}
	if g.RateLimit != nil {
		mws = append(mws, g.RateLimit)
	}
	if g.Cache != nil {
		mws = append(mws, g.Cache)
	}
	return e.Group(prefix, mws...)
}

// RegisterRoutes registers the unauthenticated infrastructure routes.
// ws authenticates itself from the token query parameter.
func RegisterRoutes(e *echo.Echo, db *sql.DB, uploadDir string, ws echo.HandlerFunc) {
	e.GET("/healthz", handler.Health(db))
	e.Static("/uploads", uploadDir)
	if ws != nil {
		e.GET("/ws", ws)
	}
}

// RegisterAuth registers the admin account routes.  Register, login and
// refresh are public and only rate limited; logout and me need a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guard) {
	var public []echo.MiddlewareFunc
	if g.RateLimit != nil {
		public = append(public, g.RateLimit)
	}
	open := e.Group("/api/admin", public...)
	open.POST("/register", a.Register)
	open.POST("/login", a.Login)
	open.POST("/refresh", a.Refresh)

	auth := g.Group(e, "/api/admin")
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}
