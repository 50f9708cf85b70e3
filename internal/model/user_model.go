package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Language       string    `gorm:"type:varchar(6)"`
	StorageVolume  *int      `gorm:"type:smallint"`
	OS             string    `gorm:"type:varchar(10)"`
	Email          string    `gorm:"type:varchar(120)"`
	CycleStartDate string    `gorm:"type:varchar(10)"` // yyyy-mm-dd
	Products       []Product `gorm:"many2many:user_products"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
