package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	PlanId          string
	Amount          float64
	Currency        string
	PaymentStatus   string
	StripeSessionId string
	Metadata        map[string]interface{}
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusExpired   = "expired"
	PaymentStatusRefunded  = "refunded"
)
