package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateSettingRequest struct {
	Content string `json:"content" validate:"required"`
}

type SettingResponse struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type DocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminUserResponse struct {
	Id                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Phone                 string     `json:"phone,omitempty"`
	SubscriptionPlan      string     `json:"subscription_plan"`
	SubscriptionStatus    string     `json:"subscription_status"`
	MessagesUsedToday     int        `json:"messages_used_today"`
	MessagesUsedThisMonth int        `json:"messages_used_this_month"`
	LastMessageDate       *time.Time `json:"last_message_date"`
	IsAdmin               bool       `json:"is_admin"`
	IsSupport             bool       `json:"is_support"`
	CreatedAt             time.Time  `json:"created_at"`
}

type UpdateUserPlanRequest struct {
	PlanId string `json:"plan_id" validate:"required,oneof=free basico premium ilimitado"`
}

type AdminUpdateUserRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	IsSupport *bool  `json:"is_support"`
}

// Export/Import bundle. Entities are flattened into DTO shapes so the
// dump stays stable if internal models change.

type ExportedMessage struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

type ExportedSession struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"user_id"`
	Title         *string   `json:"title"`
	Summary       *string   `json:"summary"`
	MessagesCount int       `json:"messages_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ExportBundle struct {
	ExportedAt time.Time           `json:"exported_at"`
	Users      []AdminUserResponse `json:"users"`
	Sessions   []ExportedSession   `json:"sessions"`
	Messages   []ExportedMessage   `json:"messages"`
	Settings   []SettingResponse   `json:"settings"`
	Documents  []DocumentResponse  `json:"documents"`
}

type ImportResult struct {
	UsersSkipped     int `json:"users_skipped"`
	SessionsCreated  int `json:"sessions_created"`
	MessagesCreated  int `json:"messages_created"`
	SettingsUpserted int `json:"settings_upserted"`
	DocumentsCreated int `json:"documents_created"`
}
