package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email                 string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                  string    `gorm:"type:varchar(255);not null"`
	Phone                 string    `gorm:"type:varchar(50)"`
	PasswordHash          string    `gorm:"type:varchar(255);not null"`
	SubscriptionPlan      string    `gorm:"type:varchar(50);not null;default:'free'"`
	SubscriptionStatus    string    `gorm:"type:varchar(50);not null;default:'active'"`
	MessagesUsedToday     int       `gorm:"default:0"`
	MessagesUsedThisMonth int       `gorm:"default:0"`
	LastMessageDate       *time.Time
	IsAdmin               bool      `gorm:"default:false"`
	IsSupport             bool      `gorm:"default:false"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type PasswordResetToken struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
