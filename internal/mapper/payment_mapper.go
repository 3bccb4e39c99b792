package mapper

import (
	"encoding/json"

	"anantara-be/internal/entity"
	"anantara-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(t *model.PaymentTransaction) *entity.PaymentTransaction {
	if t == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(t.Metadata) > 0 {
		// Corrupt metadata must not break reads; the field is advisory.
		_ = json.Unmarshal(t.Metadata, &metadata)
	}

	return &entity.PaymentTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		PlanId:          t.PlanId,
		Amount:          t.Amount,
		Currency:        t.Currency,
		PaymentStatus:   t.PaymentStatus,
		StripeSessionId: t.StripeSessionId,
		Metadata:        metadata,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	if t == nil {
		return nil
	}

	var metadata datatypes.JSON
	if t.Metadata != nil {
		if raw, err := json.Marshal(t.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.PaymentTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		PlanId:          t.PlanId,
		Amount:          t.Amount,
		Currency:        t.Currency,
		PaymentStatus:   t.PaymentStatus,
		StripeSessionId: t.StripeSessionId,
		Metadata:        metadata,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(txs []*model.PaymentTransaction) []*entity.PaymentTransaction {
	entities := make([]*entity.PaymentTransaction, len(txs))
	for i, t := range txs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
