package mapper

import (
	"anantara-be/internal/entity"
	"anantara-be/internal/model"
)

type AdminMapper struct{}

func NewAdminMapper() *AdminMapper {
	return &AdminMapper{}
}

func (m *AdminMapper) SettingToEntity(s *model.AdminSetting) *entity.AdminSetting {
	if s == nil {
		return nil
	}
	return &entity.AdminSetting{
		Id:        s.Id,
		Type:      s.Type,
		Content:   s.Content,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *AdminMapper) SettingToModel(s *entity.AdminSetting) *model.AdminSetting {
	if s == nil {
		return nil
	}
	return &model.AdminSetting{
		Id:        s.Id,
		Type:      s.Type,
		Content:   s.Content,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *AdminMapper) SettingsToEntities(settings []*model.AdminSetting) []*entity.AdminSetting {
	entities := make([]*entity.AdminSetting, len(settings))
	for i, s := range settings {
		entities[i] = m.SettingToEntity(s)
	}
	return entities
}

func (m *AdminMapper) DocumentToEntity(d *model.AdminDocument) *entity.AdminDocument {
	if d == nil {
		return nil
	}
	return &entity.AdminDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *AdminMapper) DocumentToModel(d *entity.AdminDocument) *model.AdminDocument {
	if d == nil {
		return nil
	}
	return &model.AdminDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *AdminMapper) DocumentsToEntities(docs []*model.AdminDocument) []*entity.AdminDocument {
	entities := make([]*entity.AdminDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}
