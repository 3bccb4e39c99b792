package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DailyLimit   int     `json:"daily_limit"`
	MonthlyLimit int     `json:"monthly_limit"`
	Unlimited    bool    `json:"unlimited"`
	Description  string  `json:"description"`
}

type SubscribeRequest struct {
	PlanId string `json:"plan_id" validate:"required,oneof=basico premium ilimitado"`
}

type SubscribeResponse struct {
	TransactionId   uuid.UUID `json:"transaction_id"`
	StripeSessionId string    `json:"stripe_session_id"`
	CheckoutUrl     string    `json:"checkout_url"`
}

type PaymentStatusResponse struct {
	TransactionId   uuid.UUID `json:"transaction_id"`
	StripeSessionId string    `json:"stripe_session_id"`
	PlanId          string    `json:"plan_id"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type PaymentHistoryItem struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	PlanId        string    `json:"plan_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
