package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"anantara-be/internal/dto"
	"anantara-be/internal/entity"
	"anantara-be/internal/repository/contract"
	"anantara-be/internal/repository/specification"
	"anantara-be/pkg/payment"
	"anantara-be/pkg/therapy/quota"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	store *fakeStore
}

var _ contract.PaymentRepository = (*fakePaymentRepo)(nil)

func (r *fakePaymentRepo) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	r.store.payments[tx.Id] = tx
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, tx *entity.PaymentTransaction) error {
	r.store.payments[tx.Id] = tx
	return nil
}

func (r *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if tx, found := r.store.payments[byID.ID]; found {
				return tx, nil
			}
			return nil, nil
		}
		if bySession, ok := spec.(specification.ByStripeSessionID); ok {
			for _, tx := range r.store.payments {
				if tx.StripeSessionId == bySession.StripeSessionID {
					return tx, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var owner *uuid.UUID
	status := ""
	desc := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			v := s.UserID
			owner = &v
		case specification.ByPaymentStatus:
			status = s.Status
		case specification.OrderBy:
			desc = s.Desc
		}
	}

	var out []*entity.PaymentTransaction
	for _, tx := range r.store.payments {
		if owner != nil && tx.UserId != *owner {
			continue
		}
		if status != "" && tx.PaymentStatus != status {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[j].CreatedAt.Before(out[i].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if tx, ok := r.store.payments[id]; ok {
		tx.PaymentStatus = status
	}
	return nil
}

type fakeGateway struct {
	checkout    *payment.CheckoutSession
	checkoutErr error
	polled      *payment.CheckoutSession
	event       *payment.WebhookEvent
	eventErr    error
	refunded    []string
	refundErr   error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	return g.checkout, g.checkoutErr
}

func (g *fakeGateway) GetCheckoutSession(ctx context.Context, sessionId string) (*payment.CheckoutSession, error) {
	return g.polled, nil
}

func (g *fakeGateway) Refund(ctx context.Context, paymentIntentId string) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunded = append(g.refunded, paymentIntentId)
	return nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	return g.event, g.eventErr
}

type paymentFixture struct {
	store   *fakeStore
	gateway *fakeGateway
	svc     IPaymentService
	user    *entity.User
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	store := newFakeStore()
	gateway := &fakeGateway{
		checkout: &payment.CheckoutSession{
			Id:  "cs_test_123",
			Url: "https://checkout.stripe.com/pay/cs_test_123",
		},
	}

	svc := NewPaymentService(&fakeUowFactory{store: store}, gateway, nil, nopLogger{}, "https://app.example.com")

	user := &entity.User{
		Id:                 uuid.New(),
		Email:              "paciente@example.com",
		SubscriptionPlan:   quota.PlanFree,
		SubscriptionStatus: entity.SubscriptionStatusActive,
	}
	store.users[user.Id] = user

	return &paymentFixture{store: store, gateway: gateway, svc: svc, user: user}
}

func TestGetPlansCatalog(t *testing.T) {
	f := newPaymentFixture(t)

	plans := f.svc.GetPlans()
	require.Len(t, plans, 4)
	assert.Equal(t, "free", plans[0].Id)
	assert.Equal(t, "ilimitado", plans[3].Id)
	assert.True(t, plans[3].Unlimited)
}

func TestSubscribeCreatesTransaction(t *testing.T) {
	f := newPaymentFixture(t)

	res, err := f.svc.Subscribe(context.Background(), f.user.Id, &dto.SubscribeRequest{PlanId: "premium"})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", res.StripeSessionId)
	assert.NotEmpty(t, res.CheckoutUrl)

	tx := f.store.payments[res.TransactionId]
	require.NotNil(t, tx)
	assert.Equal(t, entity.PaymentStatusInitiated, tx.PaymentStatus)
	assert.Equal(t, "premium", tx.PlanId)
	assert.Equal(t, 49.90, tx.Amount)
}

func TestSubscribeRejectsFreePlan(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Subscribe(context.Background(), f.user.Id, &dto.SubscribeRequest{PlanId: "free"})
	require.Error(t, err)
	assert.Empty(t, f.store.payments)
}

func TestSubscribeGatewayFailure(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.checkoutErr = errors.New("stripe down")

	_, err := f.svc.Subscribe(context.Background(), f.user.Id, &dto.SubscribeRequest{PlanId: "basico"})
	require.Error(t, err)
	assert.Empty(t, f.store.payments, "no transaction recorded when checkout fails")
}

func seedPaidCheckout(f *paymentFixture, status string) *entity.PaymentTransaction {
	tx := &entity.PaymentTransaction{
		Id:              uuid.New(),
		UserId:          f.user.Id,
		PlanId:          "premium",
		Amount:          49.90,
		Currency:        "brl",
		PaymentStatus:   status,
		StripeSessionId: "cs_test_123",
		Metadata:        map[string]interface{}{},
		CreatedAt:       time.Now(),
	}
	f.store.payments[tx.Id] = tx
	return tx
}

func TestWebhookCompletedUpgradesUser(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusInitiated)
	f.gateway.event = &payment.WebhookEvent{
		Type: payment.EventCheckoutCompleted,
		Session: &payment.CheckoutSession{
			Id:              "cs_test_123",
			PaymentStatus:   "paid",
			PaymentIntentId: "pi_123",
		},
	}

	err := f.svc.HandleStripeWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, tx.PaymentStatus)
	assert.Equal(t, "pi_123", tx.Metadata["payment_intent_id"])
	assert.Equal(t, "premium", f.user.SubscriptionPlan)
	assert.Equal(t, entity.SubscriptionStatusActive, f.user.SubscriptionStatus)
}

func TestWebhookCompletedIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusPaid)
	f.user.SubscriptionPlan = "premium"
	f.gateway.event = &payment.WebhookEvent{
		Type:    payment.EventCheckoutCompleted,
		Session: &payment.CheckoutSession{Id: "cs_test_123", PaymentStatus: "paid"},
	}

	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Equal(t, entity.PaymentStatusPaid, tx.PaymentStatus)
}

func TestWebhookExpired(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusInitiated)
	f.gateway.event = &payment.WebhookEvent{
		Type:    payment.EventCheckoutExpired,
		Session: &payment.CheckoutSession{Id: "cs_test_123"},
	}

	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Equal(t, entity.PaymentStatusExpired, tx.PaymentStatus)
	assert.Equal(t, quota.PlanFree, f.user.SubscriptionPlan, "expired checkout must not upgrade")
}

func TestWebhookBadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.eventErr = errors.New("signature mismatch")

	err := f.svc.HandleStripeWebhook(context.Background(), []byte("{}"), "bad")
	require.Error(t, err)
}

func TestCheckStatusPollsAndSettles(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusInitiated)
	f.gateway.polled = &payment.CheckoutSession{
		Id:              "cs_test_123",
		PaymentStatus:   "paid",
		PaymentIntentId: "pi_999",
	}

	res, err := f.svc.CheckStatus(context.Background(), f.user.Id, tx.Id)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, res.PaymentStatus)
	assert.Equal(t, "premium", f.user.SubscriptionPlan)
	assert.Equal(t, "pi_999", tx.Metadata["payment_intent_id"])
}

func TestCheckStatusOwnership(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusInitiated)

	_, err := f.svc.CheckStatus(context.Background(), uuid.New(), tx.Id)

	var notFound *dto.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRefundPaidTransaction(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusPaid)
	tx.Metadata["payment_intent_id"] = "pi_123"
	f.user.SubscriptionPlan = "premium"

	require.NoError(t, f.svc.Refund(context.Background(), tx.Id))

	assert.Equal(t, []string{"pi_123"}, f.gateway.refunded)
	assert.Equal(t, entity.PaymentStatusRefunded, tx.PaymentStatus)
	assert.Equal(t, quota.PlanFree, f.user.SubscriptionPlan)
	assert.Equal(t, entity.SubscriptionStatusCanceled, f.user.SubscriptionStatus)
}

func TestListPaymentsNewestFirst(t *testing.T) {
	f := newPaymentFixture(t)
	base := time.Now()

	older := seedPaidCheckout(f, entity.PaymentStatusExpired)
	older.CreatedAt = base.Add(-time.Hour)
	newer := seedPaidCheckout(f, entity.PaymentStatusPaid)
	newer.CreatedAt = base

	// Someone else's transaction must never show up.
	foreign := seedPaidCheckout(f, entity.PaymentStatusPaid)
	foreign.UserId = uuid.New()

	history, err := f.svc.ListPayments(context.Background(), f.user.Id, "")
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, newer.Id, history[0].TransactionId)
	assert.Equal(t, older.Id, history[1].TransactionId)
	assert.Equal(t, "premium", history[0].PlanId)
	assert.Equal(t, 49.90, history[0].Amount)
}

func TestListPaymentsStatusFilter(t *testing.T) {
	f := newPaymentFixture(t)
	seedPaidCheckout(f, entity.PaymentStatusExpired)
	paid := seedPaidCheckout(f, entity.PaymentStatusPaid)

	history, err := f.svc.ListPayments(context.Background(), f.user.Id, entity.PaymentStatusPaid)
	require.NoError(t, err)

	require.Len(t, history, 1)
	assert.Equal(t, paid.Id, history[0].TransactionId)
}

func TestListPaymentsEmptyForNewUser(t *testing.T) {
	f := newPaymentFixture(t)

	history, err := f.svc.ListPayments(context.Background(), f.user.Id, "")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCancelSubscriptionDowngrades(t *testing.T) {
	f := newPaymentFixture(t)
	f.user.SubscriptionPlan = "premium"
	f.user.SubscriptionStatus = entity.SubscriptionStatusActive

	require.NoError(t, f.svc.CancelSubscription(context.Background(), f.user.Id))

	assert.Equal(t, quota.PlanFree, f.user.SubscriptionPlan)
	assert.Equal(t, entity.SubscriptionStatusCanceled, f.user.SubscriptionStatus)
}

func TestCancelSubscriptionOnFreePlan(t *testing.T) {
	f := newPaymentFixture(t)

	// Nothing to cancel, but the endpoint still succeeds.
	require.NoError(t, f.svc.CancelSubscription(context.Background(), f.user.Id))
	assert.Equal(t, quota.PlanFree, f.user.SubscriptionPlan)
}

func TestCancelSubscriptionUnknownUser(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.CancelSubscription(context.Background(), uuid.New())

	var notFound *dto.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRefundRejectsUnpaid(t *testing.T) {
	f := newPaymentFixture(t)
	tx := seedPaidCheckout(f, entity.PaymentStatusInitiated)

	err := f.svc.Refund(context.Background(), tx.Id)
	require.Error(t, err)
	assert.Empty(t, f.gateway.refunded)
}
