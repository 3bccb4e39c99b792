package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminSetting struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type      string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Content   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AdminSetting) TableName() string {
	return "admin_settings"
}

type AdminDocument struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AdminDocument) TableName() string {
	return "admin_documents"
}
