// FILE: pkg/payment/gateway.go
// Checkout gateway abstraction so services never touch the Stripe SDK
// directly and tests can substitute a fake.
package payment

import "context"

type CheckoutParams struct {
	ReferenceId   string
	PlanId        string
	PlanName      string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	Id              string
	Url             string
	PaymentStatus   string
	PaymentIntentId string
}

type WebhookEvent struct {
	Type    string
	Session *CheckoutSession
}

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionId string) (*CheckoutSession, error)
	Refund(ctx context.Context, paymentIntentId string) error
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
