package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession rows are created lazily: the id is minted first and the row
// only materializes when the first message of the session is sent.
type ChatSession struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Title         *string
	Summary       *string
	MessagesCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
