// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account. Email is the login name and is unique across all users.
type User struct {
	ID           int64     // Store-assigned identifier; never changes.
	Email        string    // Login name, unique.
	Name         string    // Username given at registration, display only.
	PasswordHash string    // bcrypt digest. Never serialized in responses.
	Role         Role      // Access tier.
	CreatedAt    time.Time // Set once by the store at creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// IsOwner reports whether the user is the owner of the account identified by userID.
func (u *User) IsOwner(userID int64) bool {
	return u != nil && u.ID == userID
}
