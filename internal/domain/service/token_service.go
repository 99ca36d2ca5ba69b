package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and validates stateless session tokens.
type TokenService interface {
	// Issue signs a token for the given identity. expiresAt is the exp claim.
	Issue(userID int64, email, role string) (token string, expiresAt time.Time, err error)

	// Validate decodes a token. It fails with domainerrors.ErrExpiredToken once
	// the clock reaches exp and with domainerrors.ErrMalformedToken for anything
	// else that is wrong with it.
	Validate(token string) (*Claims, error)
}
