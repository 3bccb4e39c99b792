// FILE: internal/service/chat_service.go
// Chat orchestrator: quota gate, lazy session materialization, prompt
// assembly, LLM exchange, counters and summary cadence.
package service

import (
	"context"
	"time"

	"anantara-be/internal/constant"
	"anantara-be/internal/dto"
	"anantara-be/internal/entity"
	"anantara-be/internal/pkg/logger"
	"anantara-be/internal/repository/specification"
	"anantara-be/internal/repository/unitofwork"
	"anantara-be/pkg/llm"
	"anantara-be/pkg/therapy/classify"
	"anantara-be/pkg/therapy/prompt"
	"anantara-be/pkg/therapy/quota"
	"anantara-be/pkg/therapy/suggest"
	"anantara-be/pkg/therapy/summary"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// historyWindow is how many prior messages accompany each LLM call.
	historyWindow = 10

	// summaryInterval regenerates the session summary every N messages.
	summaryInterval = 4

	settingsCacheKey  = "admin_settings"
	documentsCacheKey = "admin_documents"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetSessionMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	GenerateSummary(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GenerateSummaryResponse, error)
	GetSuggestions(ctx context.Context, userId uuid.UUID) (*dto.SuggestionsResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	provider      llm.LLMProvider
	classifier    classify.Classifier
	promptBuilder *prompt.Builder
	summarizer    *summary.Generator
	suggester     *suggest.Generator
	settingsCache *gocache.Cache
	log           logger.ILogger
	liveBackend   bool
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	classifier classify.Classifier,
	promptBuilder *prompt.Builder,
	summarizer *summary.Generator,
	suggester *suggest.Generator,
	settingsCache *gocache.Cache,
	log logger.ILogger,
	liveBackend bool,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		provider:      provider,
		classifier:    classifier,
		promptBuilder: promptBuilder,
		summarizer:    summarizer,
		suggester:     suggester,
		settingsCache: settingsCache,
		log:           log,
		liveBackend:   liveBackend,
	}
}

// CreateSession only mints an id. The row materializes on first message,
// so abandoned sessions never reach the database.
func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{Id: uuid.New()}, nil
}

func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	// 1. Classify before touching the quota: support questions always
	// pass regardless of plan usage.
	kind := s.classifier.Classify(req.Message)

	// 2. Daily reset happens before the threshold check so the first
	// message of a new day is never rejected on yesterday's counter.
	if quota.NeedsDailyReset(user.LastMessageDate, now) {
		if err := uow.UserRepository().ResetDailyUsage(ctx, user.Id); err != nil {
			return nil, err
		}
		user.MessagesUsedToday = 0
	}

	if kind == classify.KindTherapy && !quota.Allowed(user.SubscriptionPlan, user.MessagesUsedToday, user.MessagesUsedThisMonth) {
		return nil, &dto.QuotaExceededError{
			Plan:      user.SubscriptionPlan,
			Remaining: 0,
			Message:   quota.LimitMessage(user.SubscriptionPlan),
		}
	}

	// 3. Resolve or lazily materialize the session.
	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if sess != nil && sess.UserId != userId {
		// Foreign sessions are indistinguishable from missing ones.
		return nil, &dto.NotFoundError{Resource: "session"}
	}
	if sess == nil {
		sess = &entity.ChatSession{
			Id:        req.SessionId,
			UserId:    userId,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uow.ChatSessionRepository().Create(ctx, sess); err != nil {
			return nil, err
		}
	}

	// 4. Assemble the system prompt (includes the cross-session summary
	// backfill pass).
	systemPrompt, err := s.buildSystemPrompt(ctx, uow, userId, sess, kind == classify.KindSupport)
	if err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindRecent(ctx, sess.Id, historyWindow)
	if err != nil {
		return nil, err
	}

	// 5. Persist the user message before calling out, so even a failed
	// exchange is visible in the transcript.
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sess.Id,
		UserId:    userId,
		Content:   req.Message,
		IsUser:    true,
		Timestamp: now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	// 6. Invoke the model. Failures degrade to a canned reply that is
	// accounted as support: the user keeps their quota.
	reply, aiFailed := s.invokeModel(ctx, systemPrompt, history, req.Message)

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sess.Id,
		UserId:    userId,
		Content:   reply,
		IsUser:    false,
		Timestamp: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	// 7. Counters. Quota moves only for successful therapy exchanges;
	// the session message count moves for every exchange.
	consumed := kind == classify.KindTherapy && !aiFailed
	if consumed {
		if err := uow.UserRepository().IncrementMessageUsage(ctx, userId, now); err != nil {
			return nil, err
		}
		user.MessagesUsedToday++
		user.MessagesUsedThisMonth++
	}

	newCount, err := uow.ChatSessionRepository().IncrementMessagesCount(ctx, sess.Id, 2)
	if err != nil {
		return nil, err
	}

	// 8. Summary cadence: refresh on every 4th message.
	if newCount > 0 && newCount%summaryInterval == 0 {
		if _, err := s.regenerateSummary(ctx, uow, sess.Id); err != nil {
			s.log.Warn("chat", "Summary regeneration failed", map[string]interface{}{
				"session_id": sess.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.ChatResponse{
		SessionId:              sess.Id,
		Response:               reply,
		MessageId:              assistantMsg.Id,
		MessagesRemainingToday: quota.Remaining(user.SubscriptionPlan, user.MessagesUsedToday, user.MessagesUsedThisMonth),
		IsSupport:              kind == classify.KindSupport || aiFailed,
	}, nil
}

func (s *chatService) invokeModel(ctx context.Context, systemPrompt string, history []*entity.ChatMessage, userMessage string) (reply string, failed bool) {
	if !s.liveBackend {
		return constant.BackendDisabledReply, true
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, m := range history {
		role := constant.ChatRoleModel
		if m.IsUser {
			role = constant.ChatRoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: constant.ChatRoleUser, Content: userMessage})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		s.log.Error("chat", "LLM call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.TechnicalDifficultiesReply, true
	}
	return reply, false
}

// buildSystemPrompt loads admin settings and documents (cached), backfills
// summaries for finished sessions that never got one, and assembles the
// final prompt.
func (s *chatService) buildSystemPrompt(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, current *entity.ChatSession, supportMode bool) (string, error) {
	settings, err := s.loadSettings(ctx, uow)
	if err != nil {
		return "", err
	}

	documents, err := s.loadDocuments(ctx, uow)
	if err != nil {
		return "", err
	}

	summaries, err := s.collectSessionSummaries(ctx, uow, userId, current.Id)
	if err != nil {
		return "", err
	}

	var currentContext string
	if current.Summary != nil {
		currentContext = *current.Summary
	}

	namedDocs := make([]prompt.NamedDocument, 0, len(documents))
	for _, d := range documents {
		namedDocs = append(namedDocs, prompt.NamedDocument{Title: d.Title, Content: d.Content})
	}

	return s.promptBuilder.Build(prompt.BuildInput{
		BasePrompt:       settings[entity.SettingBasePrompt],
		AdditionalPrompt: settings[entity.SettingAdditionalPrompt],
		TheoryDocument:   settings[entity.SettingTheoryDocument],
		Documents:        namedDocs,
		SupportDocument:  settings[entity.SettingSupportDocument],
		SessionSummaries: summaries,
		CurrentContext:   currentContext,
		SupportMode:      supportMode,
	}), nil
}

func (s *chatService) loadSettings(ctx context.Context, uow unitofwork.UnitOfWork) (map[string]string, error) {
	if cached, ok := s.settingsCache.Get(settingsCacheKey); ok {
		return cached.(map[string]string), nil
	}

	rows, err := uow.AdminRepository().FindAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Type] = row.Content
	}
	s.settingsCache.Set(settingsCacheKey, settings, gocache.DefaultExpiration)
	return settings, nil
}

func (s *chatService) loadDocuments(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.AdminDocument, error) {
	if cached, ok := s.settingsCache.Get(documentsCacheKey); ok {
		return cached.([]*entity.AdminDocument), nil
	}

	docs, err := uow.AdminRepository().FindAllDocuments(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	s.settingsCache.Set(documentsCacheKey, docs, gocache.DefaultExpiration)
	return docs, nil
}

// collectSessionSummaries returns the summaries of the user's other
// sessions, generating missing ones for sessions long enough to have one.
func (s *chatService) collectSessionSummaries(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, currentId uuid.UUID) ([]prompt.SessionSummary, error) {
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	var summaries []prompt.SessionSummary
	for _, sess := range sessions {
		if sess.Id == currentId {
			continue
		}

		text := sess.Summary
		if text == nil && sess.MessagesCount >= summary.MinMessages {
			generated, err := s.regenerateSummary(ctx, uow, sess.Id)
			if err != nil {
				s.log.Warn("chat", "Summary backfill failed", map[string]interface{}{
					"session_id": sess.Id,
					"error":      err.Error(),
				})
				continue
			}
			text = generated
		}
		if text == nil {
			continue
		}

		summaries = append(summaries, prompt.SessionSummary{
			Date:    sess.CreatedAt,
			Summary: *text,
		})
	}

	return summaries, nil
}

// regenerateSummary rebuilds a session's summary from its full transcript
// and persists it. Returns nil without error when the transcript is too
// short.
func (s *chatService) regenerateSummary(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*string, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	transcript := make([]summary.TranscriptMessage, len(messages))
	for i, m := range messages {
		transcript[i] = summary.TranscriptMessage{Content: m.Content, IsUser: m.IsUser}
	}

	text, err := s.summarizer.Generate(ctx, transcript)
	if err != nil {
		if err == summary.ErrNotEnoughMessages {
			return nil, nil
		}
		return nil, err
	}

	if err := uow.ChatSessionRepository().UpdateSummary(ctx, sessionId, text); err != nil {
		return nil, err
	}
	return &text, nil
}

// ListSessions deletes the user's empty sessions first, so the listing
// only ever shows conversations that actually happened.
func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := uow.ChatSessionRepository().DeleteEmpty(ctx, userId); err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NonEmptySessions{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, len(sessions))
	for i, sess := range sessions {
		result[i] = &dto.SessionResponse{
			Id:            sess.Id,
			Title:         sess.Title,
			Summary:       sess.Summary,
			MessagesCount: sess.MessagesCount,
			CreatedAt:     sess.CreatedAt,
		}
	}
	return result, nil
}

func (s *chatService) GetSessionMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserId != userId {
		return nil, &dto.NotFoundError{Resource: "session"}
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		result[i] = &dto.MessageResponse{
			Id:        m.Id,
			SessionId: m.SessionId,
			Content:   m.Content,
			IsUser:    m.IsUser,
			Timestamp: m.Timestamp,
		}
	}
	return result, nil
}

// GenerateSummary is the user-triggered variant. A missing or foreign
// session is a silent no-op; an empty session is deleted on the way out.
func (s *chatService) GenerateSummary(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GenerateSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resp := &dto.GenerateSummaryResponse{SessionId: sessionId}

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserId != userId {
		return resp, nil
	}

	if sess.MessagesCount <= 0 {
		if err := uow.ChatSessionRepository().Delete(ctx, sess.Id); err != nil {
			s.log.Warn("chat", "Empty session cleanup failed", map[string]interface{}{
				"session_id": sess.Id,
				"error":      err.Error(),
			})
		}
		return resp, nil
	}

	text, err := s.regenerateSummary(ctx, uow, sess.Id)
	if err != nil {
		s.log.Error("chat", "Manual summary generation failed", map[string]interface{}{
			"session_id": sess.Id,
			"error":      err.Error(),
		})
		apologetic := constant.SummaryUnavailableReply
		resp.Summary = &apologetic
		return resp, nil
	}

	resp.Summary = text
	return resp, nil
}

// GetSuggestions offers three conversation starters personalized from the
// user's recent exchanges. Without history, with the backend disabled or
// on any generation failure it serves the fixed fallback set, so the
// endpoint always answers with exactly three suggestions.
func (s *chatService) GetSuggestions(ctx context.Context, userId uuid.UUID) (*dto.SuggestionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	resp := &dto.SuggestionsResponse{
		Suggestions: constant.DefaultSuggestions,
		GeneratedAt: time.Now(),
	}

	if !s.liveBackend {
		return resp, nil
	}

	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: historyWindow},
	)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return resp, nil
	}

	// Chronological order for the transcript.
	transcript := make([]suggest.TranscriptMessage, len(recent))
	for i, m := range recent {
		transcript[len(recent)-1-i] = suggest.TranscriptMessage{Content: m.Content, IsUser: m.IsUser}
	}

	suggestions, err := s.suggester.Generate(ctx, transcript)
	if err != nil {
		s.log.Warn("chat", "Suggestion generation failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return resp, nil
	}

	resp.Suggestions = suggestions
	return resp, nil
}
