package contract

import (
	"context"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindRecent returns the session's last n messages in timestamp order.
	FindRecent(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatMessage, error)
}
