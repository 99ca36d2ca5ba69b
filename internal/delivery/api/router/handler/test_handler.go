package handler

import (
	"net/http"

	"helloworld/internal/delivery/api/middleware"
	"helloworld/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// TestHandler handles diagnostic endpoints for middleware validation
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// TestAuthMiddleware echoes the identity resolved by the auth middleware.
// It requires a valid bearer token.
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "User ID not found in context")
	}

	role, ok := middleware.GetRole(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "User role not found in context")
	}

	email, _ := middleware.GetEmail(c)

	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Authentication middleware test successful",
		"userID":  userID,
		"email":   email,
		"role":    role.String(),
		"status":  "authenticated",
	})
}

// TestPublicEndpoint tests a public endpoint (no authentication required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	})
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
