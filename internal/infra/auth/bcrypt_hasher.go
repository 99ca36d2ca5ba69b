// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"helloworld/config"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/service"
	"helloworld/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the most input bcrypt will hash; longer passwords are refused.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from config. A missing auth section means
// bcrypt.DefaultCost; a missing passwordStrength section means no policy.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return newBcryptHasher(cost, cfg.PasswordStrength)
}

// NewBcryptHasherWithCost returns a hasher without a strength policy.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, nil)
}

func newBcryptHasher(cost int, policy *config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	// err is nil only if the password and hash match; malformed hashes error out.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength applies the configured policy. The bcrypt input
// ceiling holds even when no policy is configured.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) > maxPasswordBytes {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}
	if h.policy == nil {
		return nil
	}
	p := h.policy

	if p.MinLength > 0 && len(password) < p.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too short")
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case p.RequireUppercase && !hasUpper:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs an uppercase letter")
	case p.RequireLowercase && !hasLower:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a lowercase letter")
	case p.RequireNumbers && !hasNumber:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a digit")
	case p.RequireSpecial && !hasSpecial:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a special character")
	}

	lowered := strings.ToLower(password)
	for _, word := range p.ForbiddenWords {
		if word != "" && strings.Contains(lowered, strings.ToLower(word)) {
			return domainerrors.ErrPasswordForbiddenWords
		}
	}

	return nil
}
