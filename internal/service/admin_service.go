// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"time"

	"anantara-be/internal/dto"
	"anantara-be/internal/entity"
	"anantara-be/internal/pkg/logger"
	"anantara-be/internal/repository/specification"
	"anantara-be/internal/repository/unitofwork"
	"anantara-be/pkg/therapy/quota"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IAdminService interface {
	GetSettings(ctx context.Context) ([]*dto.SettingResponse, error)
	GetSetting(ctx context.Context, settingType string) (*dto.SettingResponse, error)
	UpdateSetting(ctx context.Context, settingType string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)

	CreateDocument(ctx context.Context, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	UpdateDocument(ctx context.Context, id uuid.UUID, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ListDocuments(ctx context.Context) ([]*dto.DocumentResponse, error)

	ListUsers(ctx context.Context, query string, limit, offset int) ([]*dto.AdminUserResponse, error)
	UpdateUserPlan(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserPlanRequest) (*dto.AdminUserResponse, error)
	UpdateUser(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserRequest) (*dto.AdminUserResponse, error)

	ExportData(ctx context.Context) (*dto.ExportBundle, error)
	ImportData(ctx context.Context, bundle *dto.ExportBundle) (*dto.ImportResult, error)

	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	settingsCache *gocache.Cache
	log           logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, settingsCache *gocache.Cache, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		settingsCache: settingsCache,
		log:           log,
	}
}

// invalidatePromptCache drops the cached settings and documents so the
// next chat turn picks up the edit immediately.
func (s *adminService) invalidatePromptCache() {
	s.settingsCache.Delete(settingsCacheKey)
	s.settingsCache.Delete(documentsCacheKey)
}

func toSettingResponse(setting *entity.AdminSetting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Type:      setting.Type,
		Content:   setting.Content,
		UpdatedAt: setting.UpdatedAt,
	}
}

func toDocumentResponse(doc *entity.AdminDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toAdminUserResponse(user *entity.User) *dto.AdminUserResponse {
	return &dto.AdminUserResponse{
		Id:                    user.Id,
		Email:                 user.Email,
		Name:                  user.Name,
		Phone:                 user.Phone,
		SubscriptionPlan:      user.SubscriptionPlan,
		SubscriptionStatus:    user.SubscriptionStatus,
		MessagesUsedToday:     user.MessagesUsedToday,
		MessagesUsedThisMonth: user.MessagesUsedThisMonth,
		LastMessageDate:       user.LastMessageDate,
		IsAdmin:               user.IsAdmin,
		IsSupport:             user.IsSupport,
		CreatedAt:             user.CreatedAt,
	}
}

func (s *adminService) GetSettings(ctx context.Context) ([]*dto.SettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.AdminRepository().FindAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SettingResponse, len(settings))
	for i, setting := range settings {
		result[i] = toSettingResponse(setting)
	}
	return result, nil
}

func (s *adminService) GetSetting(ctx context.Context, settingType string) (*dto.SettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting, err := uow.AdminRepository().FindSetting(ctx, settingType)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, &dto.NotFoundError{Resource: "setting"}
	}
	return toSettingResponse(setting), nil
}

func (s *adminService) UpdateSetting(ctx context.Context, settingType string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting, err := uow.AdminRepository().UpsertSetting(ctx, settingType, req.Content)
	if err != nil {
		return nil, err
	}

	s.invalidatePromptCache()
	s.log.Info("admin", "Setting updated", map[string]interface{}{
		"type": settingType,
	})
	return toSettingResponse(setting), nil
}

func (s *adminService) CreateDocument(ctx context.Context, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.AdminDocument{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.AdminRepository().CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	s.invalidatePromptCache()
	return toDocumentResponse(doc), nil
}

func (s *adminService) UpdateDocument(ctx context.Context, id uuid.UUID, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.AdminRepository().FindOneDocument(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &dto.NotFoundError{Resource: "document"}
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.UpdatedAt = time.Now()
	if err := uow.AdminRepository().UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	s.invalidatePromptCache()
	return toDocumentResponse(doc), nil
}

func (s *adminService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.AdminRepository().FindOneDocument(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return &dto.NotFoundError{Resource: "document"}
	}

	if err := uow.AdminRepository().DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.invalidatePromptCache()
	return nil
}

func (s *adminService) ListDocuments(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.AdminRepository().FindAllDocuments(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		result[i] = toDocumentResponse(doc)
	}
	return result, nil
}

func (s *adminService) ListUsers(ctx context.Context, query string, limit, offset int) ([]*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var users []*entity.User
	var err error
	if query != "" {
		users, err = uow.UserRepository().SearchUsers(ctx, query, limit, offset)
	} else {
		users, err = uow.UserRepository().FindAll(ctx,
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: limit, Offset: offset},
		)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AdminUserResponse, len(users))
	for i, user := range users {
		result[i] = toAdminUserResponse(user)
	}
	return result, nil
}

func (s *adminService) UpdateUserPlan(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserPlanRequest) (*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	status := entity.SubscriptionStatusActive
	if req.PlanId == quota.PlanFree && quota.IsPaid(user.SubscriptionPlan) {
		status = entity.SubscriptionStatusCanceled
	}

	if err := uow.UserRepository().UpdatePlan(ctx, userId, req.PlanId, status); err != nil {
		return nil, err
	}

	s.log.Info("admin", "User plan changed", map[string]interface{}{
		"user_id": userId,
		"from":    user.SubscriptionPlan,
		"to":      req.PlanId,
	})

	user.SubscriptionPlan = req.PlanId
	user.SubscriptionStatus = status
	return toAdminUserResponse(user), nil
}

func (s *adminService) UpdateUser(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserRequest) (*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.IsSupport != nil {
		user.IsSupport = *req.IsSupport
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return toAdminUserResponse(user), nil
}

// ExportData dumps users, conversations, settings and documents into one
// bundle for backup or migration.
func (s *adminService) ExportData(ctx context.Context) (*dto.ExportBundle, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	messages, err := uow.ChatMessageRepository().FindAll(ctx, specification.OrderBy{Field: "timestamp"})
	if err != nil {
		return nil, err
	}
	settings, err := uow.AdminRepository().FindAllSettings(ctx)
	if err != nil {
		return nil, err
	}
	documents, err := uow.AdminRepository().FindAllDocuments(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	bundle := &dto.ExportBundle{ExportedAt: time.Now()}
	for _, user := range users {
		bundle.Users = append(bundle.Users, *toAdminUserResponse(user))
	}
	for _, sess := range sessions {
		bundle.Sessions = append(bundle.Sessions, dto.ExportedSession{
			Id:            sess.Id,
			UserId:        sess.UserId,
			Title:         sess.Title,
			Summary:       sess.Summary,
			MessagesCount: sess.MessagesCount,
			CreatedAt:     sess.CreatedAt,
		})
	}
	for _, msg := range messages {
		bundle.Messages = append(bundle.Messages, dto.ExportedMessage{
			Id:        msg.Id,
			SessionId: msg.SessionId,
			UserId:    msg.UserId,
			Content:   msg.Content,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		})
	}
	for _, setting := range settings {
		bundle.Settings = append(bundle.Settings, *toSettingResponse(setting))
	}
	for _, doc := range documents {
		bundle.Documents = append(bundle.Documents, *toDocumentResponse(doc))
	}

	return bundle, nil
}

// ImportData restores a bundle. Existing rows win: users are never
// overwritten, sessions and messages are only created when their id is
// absent, settings are upserted.
func (s *adminService) ImportData(ctx context.Context, bundle *dto.ExportBundle) (*dto.ImportResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result := &dto.ImportResult{}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Users carry no credentials in the bundle, so they are never
	// created here, only reported.
	for range bundle.Users {
		result.UsersSkipped++
	}

	for _, exported := range bundle.Sessions {
		existing, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: exported.Id})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		sess := &entity.ChatSession{
			Id:            exported.Id,
			UserId:        exported.UserId,
			Title:         exported.Title,
			Summary:       exported.Summary,
			MessagesCount: exported.MessagesCount,
			CreatedAt:     exported.CreatedAt,
			UpdatedAt:     time.Now(),
		}
		if err := uow.ChatSessionRepository().Create(ctx, sess); err != nil {
			return nil, err
		}
		result.SessionsCreated++
	}

	for _, exported := range bundle.Messages {
		existing, err := uow.ChatMessageRepository().FindAll(ctx, specification.ByID{ID: exported.Id})
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			continue
		}
		msg := &entity.ChatMessage{
			Id:        exported.Id,
			SessionId: exported.SessionId,
			UserId:    exported.UserId,
			Content:   exported.Content,
			IsUser:    exported.IsUser,
			Timestamp: exported.Timestamp,
		}
		if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
			return nil, err
		}
		result.MessagesCreated++
	}

	for _, setting := range bundle.Settings {
		if _, err := uow.AdminRepository().UpsertSetting(ctx, setting.Type, setting.Content); err != nil {
			return nil, err
		}
		result.SettingsUpserted++
	}

	for _, exported := range bundle.Documents {
		existing, err := uow.AdminRepository().FindOneDocument(ctx, specification.ByID{ID: exported.Id})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		doc := &entity.AdminDocument{
			Id:        exported.Id,
			Title:     exported.Title,
			Content:   exported.Content,
			CreatedAt: exported.CreatedAt,
			UpdatedAt: time.Now(),
		}
		if err := uow.AdminRepository().CreateDocument(ctx, doc); err != nil {
			return nil, err
		}
		result.DocumentsCreated++
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidatePromptCache()
	return result, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.log.GetLogs(level, limit, offset)
}
