package model

import (
	"time"

	"github.com/google/uuid"
)

type Target struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tag       string    `gorm:"type:varchar(50);not null"`
	Color     string    `gorm:"type:varchar(10)"` // HEX, used by the table formatter
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Target) TableName() string {
	return "targets"
}
