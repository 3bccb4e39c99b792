package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentTransaction struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	PlanId          string         `gorm:"type:varchar(50);not null"`
	Amount          float64        `gorm:"type:numeric(10,2);not null"`
	Currency        string         `gorm:"type:varchar(10);not null;default:'brl'"`
	PaymentStatus   string         `gorm:"type:varchar(50);not null;default:'initiated';index"`
	StripeSessionId string         `gorm:"type:varchar(255);index"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
