package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// NonEmptySessions keeps only sessions that recorded at least one exchange.
type NonEmptySessions struct{}

func (s NonEmptySessions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("messages_count > 0")
}
