// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

type User struct {
	Id                    uuid.UUID
	Email                 string
	Name                  string
	Phone                 string
	PasswordHash          string
	SubscriptionPlan      string
	SubscriptionStatus    string
	MessagesUsedToday     int
	MessagesUsedThisMonth int
	LastMessageDate       *time.Time
	IsAdmin               bool
	IsSupport             bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
