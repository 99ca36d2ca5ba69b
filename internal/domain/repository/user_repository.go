// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"helloworld/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the user directory. It exclusively owns the user lifecycle.
// Unique-email violations surface as domainerrors.ErrEmailInUse.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and fills in the store-assigned ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdateEmail changes the login email and returns the updated user.
	UpdateEmail(ctx context.Context, id int64, email string) (*entity.User, error)

	// UpdatePassword replaces the password hash and returns the updated user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (*entity.User, error)

	// Delete removes the user. Returns ErrUserNotFound if no row matched.
	Delete(ctx context.Context, id int64) error
}
