package auth

import (
	"strconv"
	"time"

	"helloworld/config"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/service"
	"helloworld/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The secret, algorithm and lifetime are read once and never change afterwards.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg.Token, time.Now)
}

func newJWTService(cfg config.TokenConfig, now func() time.Time) (*jwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret must be provided")
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}

	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		now:    now,
	}, nil
}

// Issue creates a signed token carrying the user's id, email and role.
func (s *jwtService) Issue(userID int64, email, role string) (string, time.Time, error) {
	issuedAt := jwt.NewNumericDate(s.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(s.ttl))

	claims := service.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt.Time, nil
}

// Validate parses the token and checks signature, algorithm and expiry.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrExpiredToken
		}

		return nil, domainerrors.ErrMalformedToken.WithDetails(err.Error())
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, domainerrors.ErrMalformedToken
	}

	return claims, nil
}
