package mapper

import (
	"anantara-be/internal/entity"
	"anantara-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                    u.Id,
		Email:                 u.Email,
		Name:                  u.Name,
		Phone:                 u.Phone,
		PasswordHash:          u.PasswordHash,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionStatus:    u.SubscriptionStatus,
		MessagesUsedToday:     u.MessagesUsedToday,
		MessagesUsedThisMonth: u.MessagesUsedThisMonth,
		LastMessageDate:       u.LastMessageDate,
		IsAdmin:               u.IsAdmin,
		IsSupport:             u.IsSupport,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                    u.Id,
		Email:                 u.Email,
		Name:                  u.Name,
		Phone:                 u.Phone,
		PasswordHash:          u.PasswordHash,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionStatus:    u.SubscriptionStatus,
		MessagesUsedToday:     u.MessagesUsedToday,
		MessagesUsedThisMonth: u.MessagesUsedThisMonth,
		LastMessageDate:       u.LastMessageDate,
		IsAdmin:               u.IsAdmin,
		IsSupport:             u.IsSupport,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) ToModels(users []*entity.User) []*model.User {
	models := make([]*model.User, len(users))
	for i, u := range users {
		models[i] = m.ToModel(u)
	}
	return models
}

// Token Mappers

func (m *UserMapper) PasswordResetTokenToEntity(t *model.PasswordResetToken) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}
	return &entity.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) PasswordResetTokenToModel(t *entity.PasswordResetToken) *model.PasswordResetToken {
	if t == nil {
		return nil
	}
	return &model.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}
