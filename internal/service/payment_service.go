// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"anantara-be/internal/dto"
	"anantara-be/internal/entity"
	"anantara-be/internal/pkg/logger"
	"anantara-be/internal/repository/specification"
	"anantara-be/internal/repository/unitofwork"
	"anantara-be/pkg/events"
	pktNats "anantara-be/pkg/nats"
	"anantara-be/pkg/payment"
	"anantara-be/pkg/therapy/quota"

	"github.com/google/uuid"
)

type IPaymentService interface {
	GetPlans() []*dto.PlanResponse
	Subscribe(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	CheckStatus(ctx context.Context, userId uuid.UUID, transactionId uuid.UUID) (*dto.PaymentStatusResponse, error)
	ListPayments(ctx context.Context, userId uuid.UUID, status string) ([]*dto.PaymentHistoryItem, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID) error
	Refund(ctx context.Context, transactionId uuid.UUID) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.Gateway
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	frontendURL    string
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	frontendURL string,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		eventPublisher: eventPublisher,
		log:            log,
		frontendURL:    frontendURL,
	}
}

func (s *paymentService) GetPlans() []*dto.PlanResponse {
	result := make([]*dto.PlanResponse, 0, len(quota.Catalog))
	for _, plan := range quota.Catalog {
		result = append(result, &dto.PlanResponse{
			Id:           plan.Id,
			Name:         plan.Name,
			Price:        plan.Price,
			Currency:     plan.Currency,
			DailyLimit:   plan.DailyLimit,
			MonthlyLimit: plan.MonthlyLimit,
			Unlimited:    plan.DailyLimit == quota.Unlimited,
			Description:  plan.Description,
		})
	}
	return result
}

func (s *paymentService) Subscribe(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	plan := quota.FindPlan(req.PlanId)
	if !quota.IsPaid(plan.Id) || plan.Id != req.PlanId {
		return nil, errors.New("invalid plan")
	}

	transactionId := uuid.New()
	checkout, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		ReferenceId:   transactionId.String(),
		PlanId:        plan.Id,
		PlanName:      plan.Name,
		AmountCents:   int64(math.Round(plan.Price * 100)),
		Currency:      plan.Currency,
		CustomerEmail: user.Email,
		SuccessURL:    fmt.Sprintf("%s/payment/success?transaction_id=%s", s.frontendURL, transactionId),
		CancelURL:     fmt.Sprintf("%s/payment/cancel", s.frontendURL),
	})
	if err != nil {
		s.log.Error("payment", "Checkout session creation failed", map[string]interface{}{
			"user_id": userId,
			"plan_id": plan.Id,
			"error":   err.Error(),
		})
		return nil, errors.New("payment provider unavailable")
	}

	tx := &entity.PaymentTransaction{
		Id:              transactionId,
		UserId:          userId,
		PlanId:          plan.Id,
		Amount:          plan.Price,
		Currency:        plan.Currency,
		PaymentStatus:   entity.PaymentStatusInitiated,
		StripeSessionId: checkout.Id,
		Metadata: map[string]interface{}{
			"checkout_url": checkout.Url,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.PaymentRepository().Create(ctx, tx); err != nil {
		return nil, err
	}

	return &dto.SubscribeResponse{
		TransactionId:   transactionId,
		StripeSessionId: checkout.Id,
		CheckoutUrl:     checkout.Url,
	}, nil
}

// HandleStripeWebhook verifies the signature and settles the matching
// transaction. Replayed events are absorbed without side effects.
func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.log.Warn("payment", "Webhook rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	if event.Session == nil {
		// Event types we do not track.
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOne(ctx, specification.ByStripeSessionID{StripeSessionID: event.Session.Id})
	if err != nil {
		return err
	}
	if tx == nil {
		s.log.Warn("payment", "Webhook for unknown session", map[string]interface{}{
			"stripe_session_id": event.Session.Id,
		})
		return nil
	}

	switch event.Type {
	case payment.EventCheckoutCompleted:
		return s.settleTransaction(ctx, uow, tx, event.Session)
	case payment.EventCheckoutExpired:
		if tx.PaymentStatus == entity.PaymentStatusInitiated || tx.PaymentStatus == entity.PaymentStatusPending {
			return uow.PaymentRepository().UpdateStatus(ctx, tx.Id, entity.PaymentStatusExpired)
		}
		return nil
	}
	return nil
}

// settleTransaction marks a transaction paid and upgrades the user. Safe
// to call more than once for the same transaction.
func (s *paymentService) settleTransaction(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction, session *payment.CheckoutSession) error {
	if tx.PaymentStatus == entity.PaymentStatusPaid {
		return nil
	}

	tx.PaymentStatus = entity.PaymentStatusPaid
	tx.UpdatedAt = time.Now()
	if tx.Metadata == nil {
		tx.Metadata = map[string]interface{}{}
	}
	if session.PaymentIntentId != "" {
		tx.Metadata["payment_intent_id"] = session.PaymentIntentId
	}
	if err := uow.PaymentRepository().Update(ctx, tx); err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePlan(ctx, tx.UserId, tx.PlanId, entity.SubscriptionStatusActive); err != nil {
		return err
	}

	s.log.Info("payment", "Plan upgraded", map[string]interface{}{
		"user_id":        tx.UserId,
		"plan_id":        tx.PlanId,
		"transaction_id": tx.Id,
	})

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypePlanUpgraded,
			Data: map[string]interface{}{
				"user_id":        tx.UserId,
				"plan_id":        tx.PlanId,
				"transaction_id": tx.Id,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("payment", "Failed to publish PLAN_UPGRADED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// CheckStatus polls the gateway when the webhook has not landed yet, so
// the frontend's success page can settle the purchase on its own.
func (s *paymentService) CheckStatus(ctx context.Context, userId uuid.UUID, transactionId uuid.UUID) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: transactionId})
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.UserId != userId {
		return nil, &dto.NotFoundError{Resource: "transaction"}
	}

	if tx.PaymentStatus == entity.PaymentStatusInitiated || tx.PaymentStatus == entity.PaymentStatusPending {
		checkout, err := s.gateway.GetCheckoutSession(ctx, tx.StripeSessionId)
		if err != nil {
			s.log.Warn("payment", "Gateway status poll failed", map[string]interface{}{
				"transaction_id": tx.Id,
				"error":          err.Error(),
			})
		} else if checkout.PaymentStatus == "paid" {
			if err := s.settleTransaction(ctx, uow, tx, checkout); err != nil {
				return nil, err
			}
		}
	}

	return &dto.PaymentStatusResponse{
		TransactionId:   tx.Id,
		StripeSessionId: tx.StripeSessionId,
		PlanId:          tx.PlanId,
		PaymentStatus:   tx.PaymentStatus,
		CreatedAt:       tx.CreatedAt,
	}, nil
}

// ListPayments returns the user's transaction history, newest first. An
// empty status keeps every transaction.
func (s *paymentService) ListPayments(ctx context.Context, userId uuid.UUID, status string) ([]*dto.PaymentHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByPaymentStatus{Status: status})
	}

	transactions, err := uow.PaymentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PaymentHistoryItem, len(transactions))
	for i, tx := range transactions {
		result[i] = &dto.PaymentHistoryItem{
			TransactionId: tx.Id,
			PlanId:        tx.PlanId,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			PaymentStatus: tx.PaymentStatus,
			CreatedAt:     tx.CreatedAt,
		}
	}
	return result, nil
}

// CancelSubscription puts the user back on the free plan. Canceling an
// already-free account is a harmless no-op, so the frontend's cancel
// button never errors.
func (s *paymentService) CancelSubscription(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return &dto.NotFoundError{Resource: "user"}
	}

	if err := uow.UserRepository().UpdatePlan(ctx, userId, quota.PlanFree, entity.SubscriptionStatusCanceled); err != nil {
		return err
	}

	s.log.Info("payment", "Subscription canceled", map[string]interface{}{
		"user_id":       userId,
		"previous_plan": user.SubscriptionPlan,
	})

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeSubscriptionCanceled,
			Data: map[string]interface{}{
				"user_id":       userId,
				"previous_plan": user.SubscriptionPlan,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("payment", "Failed to publish SUBSCRIPTION_CANCELED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// Refund reverses a paid transaction and downgrades the user to the free
// plan. Admin only.
func (s *paymentService) Refund(ctx context.Context, transactionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: transactionId})
	if err != nil {
		return err
	}
	if tx == nil {
		return &dto.NotFoundError{Resource: "transaction"}
	}
	if tx.PaymentStatus != entity.PaymentStatusPaid {
		return errors.New("only paid transactions can be refunded")
	}

	intentId, _ := tx.Metadata["payment_intent_id"].(string)
	if intentId == "" {
		return errors.New("transaction has no payment intent on record")
	}

	if err := s.gateway.Refund(ctx, intentId); err != nil {
		s.log.Error("payment", "Refund failed at gateway", map[string]interface{}{
			"transaction_id": tx.Id,
			"error":          err.Error(),
		})
		return err
	}

	if err := uow.PaymentRepository().UpdateStatus(ctx, tx.Id, entity.PaymentStatusRefunded); err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePlan(ctx, tx.UserId, quota.PlanFree, entity.SubscriptionStatusCanceled); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypePaymentRefunded,
			Data: map[string]interface{}{
				"user_id":        tx.UserId,
				"transaction_id": tx.Id,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("payment", "Failed to publish PAYMENT_REFUNDED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}
