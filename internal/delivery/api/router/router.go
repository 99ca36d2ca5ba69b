// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"helloworld/config"
	"helloworld/internal/delivery/api/middleware"
	"helloworld/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	DemoHandler    *handler.DemoHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	demoHandler    *handler.DemoHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		demoHandler:    params.DemoHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Gated operations authorize inside the use cases, so no route carries auth middleware.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)

	userGroup := e.Group("/user")
	{
		userGroup.GET("/details", r.accountHandler.GetUserDetails)
		userGroup.PUT("/update", r.accountHandler.UpdateUserDetails)
		userGroup.DELETE("/delete", r.accountHandler.DeleteUser)
	}

	e.GET("/hello-world", r.demoHandler.GetHelloWorld)
	e.POST("/cli/hello-world", r.demoHandler.ExecuteHelloWorld)
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)
		testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}
