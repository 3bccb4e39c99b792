package contract

import (
	"context"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AdminRepository interface {
	// Settings are singleton-per-type rows.
	FindSetting(ctx context.Context, settingType string) (*entity.AdminSetting, error)
	FindAllSettings(ctx context.Context) ([]*entity.AdminSetting, error)
	UpsertSetting(ctx context.Context, settingType, content string) (*entity.AdminSetting, error)

	CreateDocument(ctx context.Context, doc *entity.AdminDocument) error
	UpdateDocument(ctx context.Context, doc *entity.AdminDocument) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	FindOneDocument(ctx context.Context, specs ...specification.Specification) (*entity.AdminDocument, error)
	FindAllDocuments(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminDocument, error)
}
