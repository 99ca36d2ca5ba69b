package postgres

import (
	"context"

	"helloworld/internal/infra/persistence/model"
	"helloworld/internal/errors"

	"gorm.io/gorm"
)

// Migrate creates or updates the users and interactions tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}, &model.InteractionModel{}); err != nil {
		return errors.Wrap(err, "failed to auto-migrate schema")
	}

	return nil
}
