package postgres

import (
	"context"
	"testing"

	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"
	"helloworld/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func createUser(t *testing.T, repo repository.UserRepository, email string) *entity.User {
	t.Helper()

	user := &entity.User{Email: email, Name: "tester", PasswordHash: "hash", Role: entity.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := createUser(t, repo, "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.Equal(t, entity.RoleUser, byID.Role)
	assert.True(t, user.CreatedAt.Equal(byID.CreatedAt))

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "dup@example.com")

	err := repo.Create(context.Background(), &entity.User{
		Email:        "dup@example.com",
		PasswordHash: "other",
		Role:         entity.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))
}

func TestUserRepository_UpdateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	alice := createUser(t, repo, "alice@example.com")
	createUser(t, repo, "bob@example.com")

	updated, err := repo.UpdateEmail(ctx, alice.ID, "alice@new.example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", updated.Email)

	_, err = repo.UpdateEmail(ctx, alice.ID, "bob@example.com")
	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))

	_, err = repo.UpdateEmail(ctx, 9999, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	alice := createUser(t, repo, "alice@example.com")

	updated, err := repo.UpdatePassword(ctx, alice.ID, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)

	_, err = repo.UpdatePassword(ctx, 9999, "new-hash")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DeleteCascadesInteractions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	interactions := NewInteractionRepository(db)

	alice := createUser(t, users, "alice@example.com")
	interaction := &entity.Interaction{UserID: alice.ID, Channel: entity.ChannelAPI, Content: "Hello World"}
	require.NoError(t, interactions.Create(ctx, interaction))
	assert.NotZero(t, interaction.ID)

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err := users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	var remaining int64
	require.NoError(t, db.Model(&model.InteractionModel{}).Where("user_id = ?", alice.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, users.Delete(ctx, alice.ID), repository.ErrUserNotFound)
}

func TestInteractionRepository_UnknownUser(t *testing.T) {
	repo := NewInteractionRepository(newTestDB(t))

	err := repo.Create(context.Background(), &entity.Interaction{UserID: 404, Channel: entity.ChannelCLI, Content: "Hello World"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	alice := createUser(t, users, "alice@example.com")

	boom := errors.New("boom")
	err := NewTransactionManager(db).Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.UserRepo().UpdateEmail(ctx, alice.ID, "changed@example.com"); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	reloaded, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reloaded.Email)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	alice := createUser(t, users, "alice@example.com")

	err := NewTransactionManager(db).Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.UserRepo().UpdateEmail(ctx, alice.ID, "changed@example.com"); err != nil {
			return err
		}
		_, err := f.UserRepo().UpdatePassword(ctx, alice.ID, "rehashed")

		return err
	})
	require.NoError(t, err)

	reloaded, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", reloaded.Email)
	assert.Equal(t, "rehashed", reloaded.PasswordHash)
}
