package service

import (
	"context"

	"helloworld/internal/domain/entity"
)

// Credentials is whatever identity material a request presented.
type Credentials struct {
	UserID int64
	Token  string
}

// AuthGuard is the single authorization decision point. Every gated use case calls
// Authorize with its operation; the rule comes from entity.AccessPolicy.
type AuthGuard interface {
	// Authorize resolves the caller and checks the operation's rule against it.
	// targetUserID is the account being acted on, or zero when there is none.
	// Errors are domainerrors.ErrUnauthenticated (or one of its token-specific
	// children) and domainerrors.ErrUnauthorized; anything else is unexpected.
	Authorize(ctx context.Context, op entity.Operation, creds Credentials, targetUserID int64) (*entity.User, error)
}
