// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// LoginInput defines the data required to log in. Username is the account email.
type LoginInput struct {
	Username string
	Password string
}

// UpdateUserInput carries the new email and password plus the caller's token.
type UpdateUserInput struct {
	Email     string
	Password  string
	AuthToken string
}

// DeleteUserInput names the account to delete and the token of whoever asks.
type DeleteUserInput struct {
	UserID int64
	Token  string
}

// --- Output DTOs ---

// RegisterOutput carries the confirmation or the soft failure message.
type RegisterOutput struct {
	Message string
}

// LoginOutput holds the session token; Error is set instead when login fails.
type LoginOutput struct {
	Token string
	Error string
}

// UserDetailsOutput is the public view of an account.
type UserDetailsOutput struct {
	Username         string
	Role             string
	RegistrationDate time.Time
	Error            string
}

// UpdatedUser is the profile snapshot returned after an update.
type UpdatedUser struct {
	Email string
	Role  string
}

// UpdateUserOutput reports the outcome of a profile update.
type UpdateUserOutput struct {
	Success     bool
	Message     string
	UpdatedUser *UpdatedUser
}

// DeleteUserOutput reports the outcome of an account deletion.
type DeleteUserOutput struct {
	Success bool
	Message string
}

// AccountUsecase defines the account operations.
// Business failures come back inside the output with a nil error; a non-nil
// error always means something unexpected went wrong.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	GetUserDetails(ctx context.Context, token string) (*UserDetailsOutput, error)
	UpdateUserDetails(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error)
	DeleteUser(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error)
}
