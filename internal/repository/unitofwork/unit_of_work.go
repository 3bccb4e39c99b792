package unitofwork

import (
	"context"

	"anantara-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PaymentRepository() contract.PaymentRepository
	AdminRepository() contract.AdminRepository
}
