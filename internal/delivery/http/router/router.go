// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"booker/internal/delivery/http/middleware"
	"booker/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	BookingHandler *handler.BookingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	bookingHandler *handler.BookingHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		bookingHandler: params.BookingHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/invites", r.authHandler.IssueInvite,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
	}

	// Booking-request routes, all behind session authentication.
	bookingGroup := e.Group("/booking-requests")
	bookingGroup.Use(r.authMiddleware.Authenticate)
	{
		bookingGroup.POST("", r.bookingHandler.Create)
		bookingGroup.GET("", r.bookingHandler.List)
		bookingGroup.GET("/:id", r.bookingHandler.Get)
		bookingGroup.PUT("/:id", r.bookingHandler.Update)
		bookingGroup.DELETE("/:id", r.bookingHandler.Delete)
		bookingGroup.GET("/:id/logs", r.bookingHandler.GetLogs)
	}
}
