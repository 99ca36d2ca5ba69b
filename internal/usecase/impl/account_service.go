// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "helloworld/internal/delivery/context"
	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"
	"helloworld/internal/domain/service"
	"helloworld/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const decoyPassword = "decoy-password-never-stored"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	guard        service.AuthGuard
	logger       *slog.Logger

	// decoyOnce guards decoyHash, a hash compared against on unknown emails so
	// those logins cost the same as a wrong password.
	decoyOnce sync.Once
	decoyHash string
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Guard        service.AuthGuard
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		guard:        params.Guard,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Register creates an account with the User role.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		if errors.Is(err, domainerrors.ErrPasswordStrength) {
			srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

			return &usecase.RegisterOutput{Message: domainerrors.ErrPasswordStrength.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to validate password strength")
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Email already registered", slog.String("email", input.Email))

		return &usecase.RegisterOutput{Message: domainerrors.ErrEmailInUse.Message()}, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPasswordStrength) {
			return &usecase.RegisterOutput{Message: domainerrors.ErrPasswordStrength.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Username,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration; the unique index decides.
		if errors.Is(err, domainerrors.ErrEmailInUse) {
			return &usecase.RegisterOutput{Message: domainerrors.ErrEmailInUse.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", user.ID))

	return &usecase.RegisterOutput{Message: usecase.MsgUserRegistered}, nil
}

// Login verifies credentials and issues a session token. An unknown email and a
// wrong password produce the same result.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	invalid := &usecase.LoginOutput{Error: domainerrors.ErrInvalidCredentials.Message()}

	user, err := srv.userRepo.FindByEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.decoy(ctx))
			srv.log(ctx).Info("Login failed", slog.String("reason", "invalid credentials"))

			return invalid, nil
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("reason", "invalid credentials"))

		return invalid, nil
	}

	token, _, err := srv.tokenService.Issue(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

// decoy lazily hashes a fixed password at the configured cost.
func (srv *accountService) decoy(ctx context.Context) string {
	srv.decoyOnce.Do(func() {
		hash, err := srv.hasher.Hash(decoyPassword)
		if err != nil {
			srv.log(ctx).Warn("Failed to prepare decoy hash", slog.Any("error", err))

			return
		}
		srv.decoyHash = hash
	})

	return srv.decoyHash
}

// GetUserDetails returns the profile of the token's owner.
func (srv *accountService) GetUserDetails(ctx context.Context, token string) (*usecase.UserDetailsOutput, error) {
	user, err := srv.guard.Authorize(ctx, entity.OpGetUserDetails, service.Credentials{Token: token}, 0)
	if err != nil {
		if msg, ok := softFailure(err); ok {
			srv.log(ctx).Info("User details refused", slog.Any("error", err))

			return &usecase.UserDetailsOutput{Error: msg}, nil
		}

		return nil, errors.Wrap(err, "failed to authorize user details")
	}

	return &usecase.UserDetailsOutput{
		Username:         user.Email,
		Role:             user.Role.String(),
		RegistrationDate: user.CreatedAt,
	}, nil
}

// UpdateUserDetails changes the caller's email (when it differs) and password.
// Nothing is written unless every check passes.
func (srv *accountService) UpdateUserDetails(ctx context.Context, input usecase.UpdateUserInput) (*usecase.UpdateUserOutput, error) {
	user, err := srv.guard.Authorize(ctx, entity.OpUpdateProfile, service.Credentials{Token: input.AuthToken}, 0)
	if err != nil {
		if msg, ok := softFailure(err); ok {
			srv.log(ctx).Info("Profile update refused", slog.Any("error", err))

			return &usecase.UpdateUserOutput{Message: msg}, nil
		}

		return nil, errors.Wrap(err, "failed to authorize profile update")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		if errors.Is(err, domainerrors.ErrPasswordStrength) {
			return &usecase.UpdateUserOutput{Message: domainerrors.ErrPasswordStrength.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to validate password strength")
	}

	emailChanged := input.Email != user.Email
	if emailChanged {
		owner, err := srv.userRepo.FindByEmail(ctx, input.Email)
		switch {
		case err == nil && owner.ID != user.ID:
			return &usecase.UpdateUserOutput{Message: domainerrors.ErrEmailInUse.Message()}, nil
		case err != nil && !errors.Is(err, repository.ErrUserNotFound):
			return nil, errors.Wrap(err, "failed to check email availability")
		}
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPasswordStrength) {
			return &usecase.UpdateUserOutput{Message: domainerrors.ErrPasswordStrength.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to hash password during profile update")
	}

	var updated *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if emailChanged {
			if _, err := userRepo.UpdateEmail(ctx, user.ID, input.Email); err != nil {
				return err
			}
		}

		u, err := userRepo.UpdatePassword(ctx, user.ID, hashedPassword)
		if err != nil {
			return err
		}
		updated = u

		return nil
	})
	if err != nil {
		if msg, ok := softFailure(err); ok {
			return &usecase.UpdateUserOutput{Message: msg}, nil
		}
		srv.log(ctx).Error("Failed to execute profile update transaction", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Info("Profile updated", slog.Int64("userID", user.ID), slog.Bool("emailChanged", emailChanged))

	return &usecase.UpdateUserOutput{
		Success: true,
		Message: usecase.MsgProfileUpdated,
		UpdatedUser: &usecase.UpdatedUser{
			Email: updated.Email,
			Role:  updated.Role.String(),
		},
	}, nil
}

// DeleteUser removes an account. The caller must own it or be an Administrator.
func (srv *accountService) DeleteUser(ctx context.Context, input usecase.DeleteUserInput) (*usecase.DeleteUserOutput, error) {
	caller, err := srv.guard.Authorize(ctx, entity.OpDeleteAccount, service.Credentials{Token: input.Token}, input.UserID)
	if err != nil {
		if msg, ok := softFailure(err); ok {
			srv.log(ctx).Info("Account deletion refused", slog.Int64("targetUserID", input.UserID), slog.Any("error", err))

			return &usecase.DeleteUserOutput{Message: msg}, nil
		}

		return nil, errors.Wrap(err, "failed to authorize account deletion")
	}

	if err := srv.userRepo.Delete(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return &usecase.DeleteUserOutput{Message: domainerrors.ErrUserNotFound.Message()}, nil
		}

		return nil, errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("Account deleted", slog.Int64("userID", input.UserID), slog.Int64("deletedBy", caller.ID))

	return &usecase.DeleteUserOutput{Success: true, Message: usecase.MsgUserDeleted}, nil
}
