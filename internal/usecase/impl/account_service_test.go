package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"
	"helloworld/internal/domain/service"
	"helloworld/internal/infra/auth"
	mockRepo "helloworld/internal/mocks/repository"
	mockSvc "helloworld/internal/mocks/service"
	"helloworld/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	txManager    *mockRepo.MockTransactionManager
	txFactory    *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	txUserRepo   *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	guard        *mockSvc.MockAuthGuard
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	fx := accountServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		txFactory:    mockRepo.NewMockRepositoryFactory(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		txUserRepo:   mockRepo.NewMockUserRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		guard:        mockSvc.NewMockAuthGuard(t),
	}

	fx.service = NewAccountService(AccountServiceParams{
		TxManager:    fx.txManager,
		UserRepo:     fx.userRepo,
		Hasher:       fx.hasher,
		TokenService: fx.tokenService,
		Guard:        fx.guard,
		Logger:       newDiscardLogger(),
	})

	return fx
}

// onExecute runs the transaction callback against the transactional repository mocks.
func (fx accountServiceFixtures) onExecute(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.txFactory)
		}).Once()
	fx.txFactory.EXPECT().UserRepo().Return(fx.txUserRepo).Maybe()
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("secret").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound).Once()
	fx.hasher.EXPECT().Hash("secret").Return("hashed", nil).Once()
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "alice@example.com" &&
				u.Name == "alice" &&
				u.PasswordHash == "hashed" &&
				u.Role == entity.RoleUser
		})).
		Return(nil).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "secret", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully.", out.Message)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("secret").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(&entity.User{ID: 1}, nil).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "secret", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Email already in use.", out.Message)
}

func TestAccountService_Register_StoreConflict(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("secret").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound).Once()
	fx.hasher.EXPECT().Hash("secret").Return("hashed", nil).Once()
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).
		Return(domainerrors.ErrEmailInUse.WrapMessage("email already exists")).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "secret", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Email already in use.", out.Message)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("password1").Return(domainerrors.ErrPasswordForbiddenWords).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "a", Password: "password1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Password does not meet security requirements.", out.Message)
}

// newServiceWithBcrypt wires the real bcrypt hasher, without a strength policy,
// around the fixture mocks.
func newServiceWithBcrypt(fx accountServiceFixtures) usecase.AccountUsecase {
	return NewAccountService(AccountServiceParams{
		TxManager:    fx.txManager,
		UserRepo:     fx.userRepo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: fx.tokenService,
		Guard:        fx.guard,
		Logger:       newDiscardLogger(),
	})
}

func TestAccountService_Register_PasswordOverBcryptLimit(t *testing.T) {
	// No repository expectations: the request must be refused before any lookup.
	fx := createTestAccountService(t)
	svc := newServiceWithBcrypt(fx)

	out, err := svc.Register(context.Background(), usecase.RegisterInput{
		Username: "alice",
		Password: strings.Repeat("x", 73),
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password does not meet security requirements.", out.Message)
}

func TestAccountService_Register_HashRefusesLongPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound).Once()
	fx.hasher.EXPECT().Hash("pw").Return("", domainerrors.ErrPasswordStrength.WithDetails("password is too long")).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "pw", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Password does not meet security requirements.", out.Message)
}

func TestAccountService_Register_StoreFailure(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("secret").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, errors.New("connection refused")).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "a", Password: "secret", Email: "a@example.com"})
	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()
	stored := &entity.User{ID: 42, Email: "alice@example.com", PasswordHash: "hashed", Role: entity.RoleUser}

	t.Run("correct credentials issue a token", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(stored, nil).Once()
		fx.hasher.EXPECT().Check("secret", "hashed").Return(true).Once()
		fx.tokenService.EXPECT().Issue(int64(42), "alice@example.com", "User").
			Return("signed.jwt.token", time.Now().Add(48*time.Hour), nil).Once()

		out, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", out.Token)
		assert.Empty(t, out.Error)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(stored, nil).Once()
		fx.hasher.EXPECT().Check("wrong", "hashed").Return(false).Once()
		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()
		fx.hasher.EXPECT().Hash(decoyPassword).Return("decoy-hash", nil).Once()
		fx.hasher.EXPECT().Check("secret", "decoy-hash").Return(false).Once()

		wrongPassword, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice@example.com", Password: "wrong"})
		require.NoError(t, err)
		unknownUser, err := fx.service.Login(ctx, usecase.LoginInput{Username: "ghost@example.com", Password: "secret"})
		require.NoError(t, err)

		assert.Equal(t, wrongPassword, unknownUser)
		assert.Empty(t, wrongPassword.Token)
		assert.Equal(t, "Invalid login credentials.", wrongPassword.Error)
	})
}

func TestAccountService_Login_UnknownEmailStillComparesHash(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Twice()
	// The decoy hash is computed once and reused.
	fx.hasher.EXPECT().Hash(decoyPassword).Return("decoy-hash", nil).Once()
	fx.hasher.EXPECT().Check("first", "decoy-hash").Return(false).Once()
	fx.hasher.EXPECT().Check("second", "decoy-hash").Return(false).Once()

	for _, pw := range []string{"first", "second"} {
		out, err := fx.service.Login(ctx, usecase.LoginInput{Username: "ghost@example.com", Password: pw})
		require.NoError(t, err)
		assert.Equal(t, "Invalid login credentials.", out.Error)
	}
}

func TestAccountService_Login_UnknownEmailWithRealHasher(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	svc := NewAccountService(AccountServiceParams{
		TxManager:    fx.txManager,
		UserRepo:     fx.userRepo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: fx.tokenService,
		Guard:        fx.guard,
		Logger:       newDiscardLogger(),
	}).(*accountService)

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()

	out, err := svc.Login(ctx, usecase.LoginInput{Username: "ghost@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Invalid login credentials.", out.Error)
	assert.True(t, strings.HasPrefix(svc.decoyHash, "$2a$"), "decoy hash should be a real bcrypt hash")
}

func TestAccountService_GetUserDetails(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2023, 6, 1, 8, 30, 0, 0, time.UTC)

	t.Run("returns stored registration date", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.guard.EXPECT().Authorize(ctx, entity.OpGetUserDetails, service.Credentials{Token: "tok"}, int64(0)).
			Return(&entity.User{ID: 1, Email: "alice@example.com", Role: entity.RoleAdministrator, CreatedAt: createdAt}, nil).Once()

		out, err := fx.service.GetUserDetails(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", out.Username)
		assert.Equal(t, "Administrator", out.Role)
		assert.Equal(t, createdAt, out.RegistrationDate)
		assert.Empty(t, out.Error)
	})

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "expired token", err: domainerrors.ErrExpiredToken, wantMsg: "Authentication failed due to expired token."},
		{name: "malformed token", err: domainerrors.ErrMalformedToken.WithDetails("signature is invalid"), wantMsg: "Authentication failed: invalid token."},
		{name: "deleted account", err: domainerrors.ErrUserNotFound, wantMsg: "User not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			fx.guard.EXPECT().Authorize(ctx, entity.OpGetUserDetails, mock.Anything, int64(0)).Return(nil, tt.err).Once()

			out, err := fx.service.GetUserDetails(ctx, "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, out.Error)
			assert.Empty(t, out.Username)
		})
	}

	t.Run("unexpected failure is returned", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.guard.EXPECT().Authorize(ctx, entity.OpGetUserDetails, mock.Anything, int64(0)).
			Return(nil, errors.New("db down")).Once()

		_, err := fx.service.GetUserDetails(ctx, "tok")
		assert.Error(t, err)
	})
}

func TestAccountService_UpdateUserDetails_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	current := &entity.User{ID: 7, Email: "old@example.com", Role: entity.RoleUser}

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, service.Credentials{Token: "tok"}, int64(0)).Return(current, nil).Once()
	fx.hasher.EXPECT().ValidatePasswordStrength("n3w-secret").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "new@example.com").Return(nil, repository.ErrUserNotFound).Once()
	fx.hasher.EXPECT().Hash("n3w-secret").Return("rehashed", nil).Once()
	fx.onExecute(ctx)
	fx.txUserRepo.EXPECT().UpdateEmail(ctx, int64(7), "new@example.com").
		Return(&entity.User{ID: 7, Email: "new@example.com", Role: entity.RoleUser}, nil).Once()
	fx.txUserRepo.EXPECT().UpdatePassword(ctx, int64(7), "rehashed").
		Return(&entity.User{ID: 7, Email: "new@example.com", Role: entity.RoleUser}, nil).Once()

	out, err := fx.service.UpdateUserDetails(ctx, usecase.UpdateUserInput{Email: "new@example.com", Password: "n3w-secret", AuthToken: "tok"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "User profile updated successfully.", out.Message)
	require.NotNil(t, out.UpdatedUser)
	assert.Equal(t, "new@example.com", out.UpdatedUser.Email)
	assert.Equal(t, "User", out.UpdatedUser.Role)
}

func TestAccountService_UpdateUserDetails_SameEmailOnlyRehashes(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	current := &entity.User{ID: 7, Email: "same@example.com", Role: entity.RoleUser}

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, mock.Anything, int64(0)).Return(current, nil).Once()
	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil).Once()
	fx.hasher.EXPECT().Hash("pw").Return("rehashed", nil).Once()
	fx.onExecute(ctx)
	fx.txUserRepo.EXPECT().UpdatePassword(ctx, int64(7), "rehashed").Return(current, nil).Once()

	out, err := fx.service.UpdateUserDetails(ctx, usecase.UpdateUserInput{Email: "same@example.com", Password: "pw", AuthToken: "tok"})
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestAccountService_UpdateUserDetails_PasswordOverBcryptLimit(t *testing.T) {
	// Only the guard is expected; no lookup or transaction may run.
	fx := createTestAccountService(t)
	ctx := context.Background()
	svc := newServiceWithBcrypt(fx)

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, mock.Anything, int64(0)).
		Return(&entity.User{ID: 7, Email: "me@example.com"}, nil).Once()

	out, err := svc.UpdateUserDetails(ctx, usecase.UpdateUserInput{
		Email:     "me@example.com",
		Password:  strings.Repeat("x", 73),
		AuthToken: "tok",
	})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Password does not meet security requirements.", out.Message)
}

func TestAccountService_UpdateUserDetails_ExpiredTokenMutatesNothing(t *testing.T) {
	// No expectations on hasher, txManager or repositories: any call fails the test.
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, mock.Anything, int64(0)).Return(nil, domainerrors.ErrExpiredToken).Once()

	out, err := fx.service.UpdateUserDetails(ctx, usecase.UpdateUserInput{Email: "x@example.com", Password: "pw", AuthToken: "expired"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Authentication failed due to expired token.", out.Message)
	assert.Nil(t, out.UpdatedUser)
}

func TestAccountService_UpdateUserDetails_EmailOwnedByAnotherUser(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, mock.Anything, int64(0)).
		Return(&entity.User{ID: 7, Email: "me@example.com"}, nil).Once()
	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "taken@example.com").Return(&entity.User{ID: 8}, nil).Once()

	out, err := fx.service.UpdateUserDetails(ctx, usecase.UpdateUserInput{Email: "taken@example.com", Password: "pw", AuthToken: "tok"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Email already in use.", out.Message)
}

func TestAccountService_UpdateUserDetails_ConflictInsideTransaction(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.guard.EXPECT().Authorize(ctx, entity.OpUpdateProfile, mock.Anything, int64(0)).
		Return(&entity.User{ID: 7, Email: "me@example.com"}, nil).Once()
	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil).Once()
	fx.userRepo.EXPECT().FindByEmail(ctx, "race@example.com").Return(nil, repository.ErrUserNotFound).Once()
	fx.hasher.EXPECT().Hash("pw").Return("rehashed", nil).Once()
	fx.onExecute(ctx)
	fx.txUserRepo.EXPECT().UpdateEmail(ctx, int64(7), "race@example.com").
		Return(nil, domainerrors.ErrEmailInUse.WrapMessage("email already exists")).Once()

	out, err := fx.service.UpdateUserDetails(ctx, usecase.UpdateUserInput{Email: "race@example.com", Password: "pw", AuthToken: "tok"})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Email already in use.", out.Message)
}

func TestAccountService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	admin := &entity.User{ID: 1, Role: entity.RoleAdministrator}

	t.Run("missing account", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.guard.EXPECT().Authorize(ctx, entity.OpDeleteAccount, service.Credentials{Token: "tok"}, int64(42)).Return(admin, nil).Once()
		fx.userRepo.EXPECT().Delete(ctx, int64(42)).Return(repository.ErrUserNotFound).Once()

		out, err := fx.service.DeleteUser(ctx, usecase.DeleteUserInput{UserID: 42, Token: "tok"})
		require.NoError(t, err)
		assert.Equal(t, &usecase.DeleteUserOutput{Success: false, Message: "User not found."}, out)
	})

	t.Run("existing account", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.guard.EXPECT().Authorize(ctx, entity.OpDeleteAccount, service.Credentials{Token: "tok"}, int64(42)).Return(admin, nil).Once()
		fx.userRepo.EXPECT().Delete(ctx, int64(42)).Return(nil).Once()

		out, err := fx.service.DeleteUser(ctx, usecase.DeleteUserInput{UserID: 42, Token: "tok"})
		require.NoError(t, err)
		assert.Equal(t, &usecase.DeleteUserOutput{Success: true, Message: "User successfully deleted."}, out)
	})

	t.Run("caller without rights", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.guard.EXPECT().Authorize(ctx, entity.OpDeleteAccount, mock.Anything, int64(42)).Return(nil, domainerrors.ErrUnauthorized).Once()

		out, err := fx.service.DeleteUser(ctx, usecase.DeleteUserInput{UserID: 42, Token: "tok"})
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, domainerrors.ErrUnauthorized.Message(), out.Message)
	})
}
