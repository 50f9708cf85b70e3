package contract

import (
	"context"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	FindOrCreateByUsername(ctx context.Context, username string) (*entity.User, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ReplaceSelection rewrites the user's persisted selection set membership.
	ReplaceSelection(ctx context.Context, userId uuid.UUID, productIds []uuid.UUID) error
}
