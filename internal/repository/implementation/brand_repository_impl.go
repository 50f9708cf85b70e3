package implementation

import (
	"context"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/model"
	"agrocalc-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandRepositoryImpl struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) contract.BrandRepository {
	return &BrandRepositoryImpl{db: db}
}

func (r *BrandRepositoryImpl) FindOrCreate(ctx context.Context, name string) (*entity.Brand, error) {
	var m model.Brand
	err := r.db.WithContext(ctx).
		Where(model.Brand{Name: name}).
		Attrs(model.Brand{Id: uuid.New()}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &entity.Brand{Id: m.Id, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}
