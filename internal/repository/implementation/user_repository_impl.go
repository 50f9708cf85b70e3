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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) FindOrCreateByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where(model.User{Username: username}).
		Attrs(model.User{Id: uuid.New()}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Products"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.UserToModel(user)
	return r.db.WithContext(ctx).
		Model(&model.User{Id: m.Id}).
		Select("Language", "StorageVolume", "OS", "Email", "CycleStartDate").
		Updates(m).Error
}

func (r *UserRepositoryImpl) ReplaceSelection(ctx context.Context, userId uuid.UUID, productIds []uuid.UUID) error {
	products := make([]model.Product, len(productIds))
	for i, id := range productIds {
		products[i] = model.Product{Id: id}
	}
	assoc := r.db.WithContext(ctx).Model(&model.User{Id: userId}).Association("Products")
	if len(products) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&products)
}
