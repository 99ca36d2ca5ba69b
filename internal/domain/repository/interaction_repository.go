package repository

import (
	"context"

	"helloworld/internal/domain/entity"
)

// InteractionRepository stores the append-only demo audit trail.
type InteractionRepository interface {
	// Create persists a new interaction and fills in its ID and CreatedAt.
	Create(ctx context.Context, interaction *entity.Interaction) error
}
