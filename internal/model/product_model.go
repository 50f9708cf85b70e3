package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BrandId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Brand           Brand          `gorm:"foreignKey:BrandId"`
	Name            string         `gorm:"type:varchar(100);not null;index"`
	Environment     string         `gorm:"type:varchar(25);not null;index"`
	BaseCategory    string         `gorm:"type:varchar(20)"` // empty when TargetId is set
	TargetId        *uuid.UUID     `gorm:"type:uuid;index"`
	Target          *Target        `gorm:"foreignKey:TargetId"`
	PhotoRef        string         `gorm:"type:text"`
	DescriptionLink string         `gorm:"type:text"`
	Phases          []Phase        `gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type Phase struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId   uuid.UUID `gorm:"type:uuid;not null;index:idx_phases_product_name,unique"`
	Name        string    `gorm:"type:varchar(40);not null;index:idx_phases_product_name,unique"`
	Description string    `gorm:"type:varchar(200)"`
	Weeks       string    `gorm:"type:varchar(10);not null"`
	Formula     string    `gorm:"type:varchar(40);not null"`
}

func (Phase) TableName() string {
	return "phases"
}
