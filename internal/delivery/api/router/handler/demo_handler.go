package handler

import (
	"helloworld/internal/delivery/api/response"
	"helloworld/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// A missing or unknown user_id is not a binding error: the use case answers
// "Access denied" for it like for any other refusal.
type helloWorldRequest struct {
	UserID int64 `query:"user_id"`
}

type executeHelloWorldRequest struct {
	UserID  int64  `query:"user_id" json:"user_id"`
	Token   string `query:"token" json:"token"`
	Command string `query:"command" json:"command"`
}

// DemoHandler serves the role-gated hello-world endpoints.
type DemoHandler struct {
	uc usecase.DemoUsecase
}

// NewDemoHandler is the constructor for DemoHandler, injected by Fx.
func NewDemoHandler(uc usecase.DemoUsecase) *DemoHandler {
	return &DemoHandler{uc: uc}
}

// GetHelloWorld handles GET /hello-world.
func (h *DemoHandler) GetHelloWorld(c echo.Context) error {
	var req helloWorldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid user id")
	}

	output, err := h.uc.GetHelloWorld(c.Request().Context(), req.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, messageResponse{Message: output.Message})
}

// ExecuteHelloWorld handles POST /cli/hello-world.
func (h *DemoHandler) ExecuteHelloWorld(c echo.Context) error {
	var req executeHelloWorldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid command input")
	}

	output, err := h.uc.ExecuteHelloWorld(c.Request().Context(), usecase.ExecuteHelloWorldInput{
		UserID:  req.UserID,
		Token:   req.Token,
		Command: req.Command,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, messageResponse{Message: output.Message})
}
