package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once written.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	UserId    uuid.UUID
	Content   string
	IsUser    bool
	Timestamp time.Time
}
