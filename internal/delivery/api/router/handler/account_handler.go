package handler

import (
	"time"

	"helloworld/internal/delivery/api/middleware"
	"helloworld/internal/delivery/api/response"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// headerAuthenticationToken is where clients put the token for GET /user/details.
const headerAuthenticationToken = "AuthenticationToken"

type registerRequest struct {
	Username string `query:"username" json:"username" validate:"required"`
	Password string `query:"password" json:"password" validate:"required"`
	Email    string `query:"email" json:"email" validate:"required"`
}

type loginRequest struct {
	Username string `query:"username" json:"username" validate:"required"`
	Password string `query:"password" json:"password" validate:"required"`
}

type updateUserRequest struct {
	Email     string `query:"email" json:"email" validate:"required"`
	Password  string `query:"password" json:"password" validate:"required"`
	AuthToken string `query:"auth_token" json:"auth_token"`
}

type deleteUserRequest struct {
	UserID int64 `query:"user_id" json:"user_id" validate:"gt=0"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}

type userDetailsResponse struct {
	Username         string     `json:"username"`
	Role             string     `json:"role"`
	RegistrationDate *time.Time `json:"registration_date"`
	Error            string     `json:"error,omitempty"`
}

type updatedUserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateUserResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	UpdatedUser *updatedUserResponse `json:"updated_user,omitempty"`
}

type deleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AccountHandler serves registration, login and profile management.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Register handles POST /register.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, messageResponse{Message: output.Message})
}

// Login handles POST /login.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, loginResponse{Token: output.Token, Error: output.Error})
}

// GetUserDetails handles GET /user/details. The token comes from the
// AuthenticationToken query parameter or header, in that order.
func (h *AccountHandler) GetUserDetails(c echo.Context) error {
	token := c.QueryParam(headerAuthenticationToken)
	if token == "" {
		token = c.Request().Header.Get(headerAuthenticationToken)
	}

	output, err := h.uc.GetUserDetails(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := userDetailsResponse{
		Username: output.Username,
		Role:     output.Role,
		Error:    output.Error,
	}
	if !output.RegistrationDate.IsZero() {
		registered := output.RegistrationDate.UTC()
		resp.RegistrationDate = &registered
	}

	return response.OK(c, resp)
}

// UpdateUserDetails handles PUT /user/update.
func (h *AccountHandler) UpdateUserDetails(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid update input")
	}

	output, err := h.uc.UpdateUserDetails(c.Request().Context(), usecase.UpdateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		AuthToken: req.AuthToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := updateUserResponse{
		Success: output.Success,
		Message: output.Message,
	}
	if output.UpdatedUser != nil {
		resp.UpdatedUser = &updatedUserResponse{
			Email: output.UpdatedUser.Email,
			Role:  output.UpdatedUser.Role,
		}
	}

	return response.OK(c, resp)
}

// DeleteUser handles DELETE /user/delete. The caller proves identity with a
// bearer token; a missing header is passed through and refused by the use case.
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	var req deleteUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return bindFailure(c, err, "Invalid delete input")
	}

	token, _ := middleware.BearerToken(c)

	output, err := h.uc.DeleteUser(c.Request().Context(), usecase.DeleteUserInput{
		UserID: req.UserID,
		Token:  token,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, deleteUserResponse{Success: output.Success, Message: output.Message})
}

// bindFailure answers 400. Validation errors go through the HTTPErrorHandler so
// the offending fields are reported; binder errors get a fixed message.
func bindFailure(c echo.Context, err error, message string) error {
	if errors.Is(err, domainerrors.ErrValidationFailed) {
		return err
	}

	return response.BindingError(c, "INVALID_INPUT", message)
}
