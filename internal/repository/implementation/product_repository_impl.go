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

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Brand").Preload("Target").Preload("Phases")
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.withRelations(r.db.WithContext(ctx)), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProductToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.withRelations(r.db.WithContext(ctx)), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ProductsToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product, brandId uuid.UUID) error {
	phases := make([]model.Phase, len(product.Phases))
	for i, ph := range product.Phases {
		phases[i] = model.Phase{
			Id:          uuid.New(),
			Name:        ph.Name,
			Description: ph.Description,
			Weeks:       ph.Weeks,
			Formula:     ph.Formula,
		}
	}

	m := &model.Product{
		Id:              product.Id,
		BrandId:         brandId,
		Name:            product.Name,
		Environment:     product.Environment,
		BaseCategory:    product.BaseCategory,
		TargetId:        product.TargetId,
		PhotoRef:        product.PhotoRef,
		DescriptionLink: product.DescriptionLink,
		Phases:          phases,
	}
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.Id = m.Id
	return nil
}
