package auth

import (
	"context"

	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"
	"helloworld/internal/domain/service"
	"helloworld/internal/errors"
)

type guard struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
}

// NewAuthGuard returns the AuthGuard that enforces entity.AccessPolicy.
func NewAuthGuard(userRepo repository.UserRepository, tokenService service.TokenService) service.AuthGuard {
	return &guard{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (g *guard) Authorize(
	ctx context.Context,
	op entity.Operation,
	creds service.Credentials,
	targetUserID int64,
) (*entity.User, error) {
	rule, ok := entity.RuleFor(op)
	if !ok {
		return nil, errors.Errorf("no access rule for operation %q", op)
	}

	user, err := g.resolve(ctx, rule.Resolution, creds)
	if err != nil {
		return nil, err
	}

	if !rule.Permits(user, targetUserID) {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

func (g *guard) resolve(ctx context.Context, resolution entity.Resolution, creds service.Credentials) (*entity.User, error) {
	switch resolution {
	case entity.ResolveByID:
		if creds.UserID == 0 {
			return nil, domainerrors.ErrUnauthenticated
		}

		return g.lookup(ctx, creds.UserID, domainerrors.ErrUnauthenticated)

	case entity.ResolveByIDAndToken:
		claims, err := g.tokenService.Validate(creds.Token)
		if err != nil {
			return nil, err
		}
		if creds.UserID == 0 || claims.UserID != creds.UserID {
			return nil, domainerrors.ErrUnauthenticated
		}

		return g.lookup(ctx, claims.UserID, domainerrors.ErrUnauthenticated)

	case entity.ResolveByToken:
		claims, err := g.tokenService.Validate(creds.Token)
		if err != nil {
			return nil, err
		}

		// The token is genuine; a missing account is reported as such.
		return g.lookup(ctx, claims.UserID, domainerrors.ErrUserNotFound)

	default:
		return nil, errors.Errorf("unknown resolution %d", resolution)
	}
}

func (g *guard) lookup(ctx context.Context, userID int64, notFound error) (*entity.User, error) {
	user, err := g.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, notFound
		}

		return nil, errors.Wrap(err, "failed to resolve caller")
	}

	return user, nil
}
