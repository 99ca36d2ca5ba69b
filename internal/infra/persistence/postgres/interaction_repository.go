package postgres

import (
	"context"

	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/repository"
	"helloworld/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository is the constructor for interactionRepository.
func NewInteractionRepository(db *gorm.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

// Create appends an interaction record.
func (repo *interactionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	interactionM := &model.InteractionModel{
		UserID:  interaction.UserID,
		Channel: string(interaction.Channel),
		Content: interaction.Content,
	}

	if err := repo.db.WithContext(ctx).Create(interactionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create interaction")
	}

	interaction.ID = interactionM.ID
	interaction.CreatedAt = interactionM.CreatedAt

	return nil
}
