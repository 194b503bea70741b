// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"conduit/internal/delivery/http/middleware"
	"conduit/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/version", handler.GetVersion)

		// Registration and login are open
		apiGroup.POST("/users", r.userHandler.Register)
		apiGroup.POST("/users/login", r.userHandler.Login)
	}

	// Routes on the current account require a bearer credential
	userGroup := e.Group("/api/user")
	userGroup.Use(r.authMiddleware.RequireBearer)
	{
		userGroup.GET("", r.userHandler.GetCurrent)
		userGroup.PUT("", r.userHandler.Update)
	}
}
