package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type ChatResponse struct {
	SessionId              uuid.UUID `json:"session_id"`
	Response               string    `json:"response"`
	MessageId              uuid.UUID `json:"message_id"`
	MessagesRemainingToday int       `json:"messages_remaining_today"`
	IsSupport              bool      `json:"is_support"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         *string   `json:"title"`
	Summary       *string   `json:"summary"`
	MessagesCount int       `json:"messages_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

type GenerateSummaryResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Summary   *string   `json:"summary"`
}

type SuggestionsResponse struct {
	Suggestions []string  `json:"suggestions"`
	GeneratedAt time.Time `json:"generated_at"`
}
