package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminSetting is a singleton-per-type prompt fragment managed from the
// admin panel and injected into the system prompt.
type AdminSetting struct {
	Id        uuid.UUID
	Type      string
	Content   string
	UpdatedAt time.Time
}

const (
	SettingBasePrompt       = "base_prompt"
	SettingAdditionalPrompt = "additional_prompt"
	SettingTheoryDocument   = "theory_document"
	SettingSupportDocument  = "support_document"
)

// AdminDocument is a named reference document injected into the prompt
// between title delimiters.
type AdminDocument struct {
	Id        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
