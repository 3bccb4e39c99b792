package implementation

import (
	"context"
	"errors"

	"anantara-be/internal/entity"
	"anantara-be/internal/mapper"
	"anantara-be/internal/model"
	"anantara-be/internal/repository/contract"
	"anantara-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdminMapper
}

func NewAdminRepository(db *gorm.DB) contract.AdminRepository {
	return &AdminRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdminMapper(),
	}
}

func (r *AdminRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AdminRepositoryImpl) FindSetting(ctx context.Context, settingType string) (*entity.AdminSetting, error) {
	var m model.AdminSetting
	if err := r.db.WithContext(ctx).Where("type = ?", settingType).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SettingToEntity(&m), nil
}

func (r *AdminRepositoryImpl) FindAllSettings(ctx context.Context) ([]*entity.AdminSetting, error) {
	var models []*model.AdminSetting
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SettingsToEntities(models), nil
}

func (r *AdminRepositoryImpl) UpsertSetting(ctx context.Context, settingType, content string) (*entity.AdminSetting, error) {
	m := model.AdminSetting{
		Type:    settingType,
		Content: content,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}
	return r.FindSetting(ctx, settingType)
}

func (r *AdminRepositoryImpl) CreateDocument(ctx context.Context, doc *entity.AdminDocument) error {
	m := r.mapper.DocumentToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *AdminRepositoryImpl) UpdateDocument(ctx context.Context, doc *entity.AdminDocument) error {
	m := r.mapper.DocumentToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *AdminRepositoryImpl) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AdminDocument{}).Error
}

func (r *AdminRepositoryImpl) FindOneDocument(ctx context.Context, specs ...specification.Specification) (*entity.AdminDocument, error) {
	var m model.AdminDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentToEntity(&m), nil
}

func (r *AdminRepositoryImpl) FindAllDocuments(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminDocument, error) {
	var models []*model.AdminDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DocumentsToEntities(models), nil
}
