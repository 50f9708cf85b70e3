package implementation

import (
	"context"
	"errors"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/mapper"
	"agrocalc-be/internal/model"
	"agrocalc-be/internal/repository/contract"
	"agrocalc-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TargetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewTargetRepository(db *gorm.DB) contract.TargetRepository {
	return &TargetRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *TargetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TargetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Target, error) {
	var m model.Target
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TargetToEntity(&m), nil
}

func (r *TargetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Target, error) {
	var models []*model.Target
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TargetsToEntities(models), nil
}

func (r *TargetRepositoryImpl) Create(ctx context.Context, target *entity.Target) error {
	m := &model.Target{
		Id:    target.Id,
		Tag:   target.Tag,
		Color: target.Color,
	}
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	target.Id = m.Id
	return nil
}
