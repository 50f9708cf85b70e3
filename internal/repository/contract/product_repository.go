package contract

import (
	"context"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ProductRepository is the catalog read path. Catalog rows are curated
// content; the funnel never writes them.
type ProductRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Create(ctx context.Context, product *entity.Product, brandId uuid.UUID) error
}

type TargetRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Target, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Target, error)
	Create(ctx context.Context, target *entity.Target) error
}

type BrandRepository interface {
	FindOrCreate(ctx context.Context, name string) (*entity.Brand, error)
}
