package mapper

import (
	"time"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/model"

	"github.com/google/uuid"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) UserToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	selected := make([]uuid.UUID, len(u.Products))
	for i, p := range u.Products {
		selected[i] = p.Id
	}

	return &entity.User{
		Id:                 u.Id,
		Username:           u.Username,
		Language:           u.Language,
		StorageVolume:      u.StorageVolume,
		OS:                 u.OS,
		Email:              u.Email,
		CycleStartDate:     u.CycleStartDate,
		SelectedProductIds: selected,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *UserMapper) UserToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:             u.Id,
		Username:       u.Username,
		Language:       u.Language,
		StorageVolume:  u.StorageVolume,
		OS:             u.OS,
		Email:          u.Email,
		CycleStartDate: u.CycleStartDate,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
