package contract

import (
	"context"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	Update(ctx context.Context, tx *entity.PaymentTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
