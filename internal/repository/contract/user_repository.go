package contract

import (
	"context"
	"time"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	UpdatePlan(ctx context.Context, userId uuid.UUID, plan string, status string) error

	// Quota counters. Both issue single-statement updates so concurrent
	// chat turns never lose increments.
	IncrementMessageUsage(ctx context.Context, userId uuid.UUID, at time.Time) error
	ResetDailyUsage(ctx context.Context, userId uuid.UUID) error

	// Token Management
	CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uuid.UUID) error

	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*entity.User, error)
}
