package contract

import (
	"context"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error

	// IncrementMessagesCount adds delta atomically and returns the new
	// count, so the summary cadence check reads the post-update value.
	IncrementMessagesCount(ctx context.Context, id uuid.UUID, delta int) (int, error)

	// DeleteEmpty removes the user's sessions that never recorded an
	// exchange. Returns the number of rows removed.
	DeleteEmpty(ctx context.Context, userId uuid.UUID) (int64, error)
}
