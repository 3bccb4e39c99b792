package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"anantara-be/internal/constant"
	"anantara-be/internal/dto"
	"anantara-be/internal/entity"
	"anantara-be/internal/pkg/logger"
	"anantara-be/internal/repository/contract"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. They interpret the same specification objects the GORM
// implementations do, so service queries behave the same way.

type fakeStore struct {
	users       map[uuid.UUID]*entity.User
	sessions    map[uuid.UUID]*entity.ChatSession
	messages    []*entity.ChatMessage
	settings    map[string]*entity.AdminSetting
	documents   []*entity.AdminDocument
	payments    map[uuid.UUID]*entity.PaymentTransaction
	resetTokens map[uuid.UUID]*entity.PasswordResetToken
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*entity.User),
		sessions:    make(map[uuid.UUID]*entity.ChatSession),
		settings:    make(map[string]*entity.AdminSetting),
		payments:    make(map[uuid.UUID]*entity.PaymentTransaction),
		resetTokens: make(map[uuid.UUID]*entity.PasswordResetToken),
	}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}
func (u *fakeUow) PaymentRepository() contract.PaymentRepository {
	return &fakePaymentRepo{store: u.store}
}
func (u *fakeUow) AdminRepository() contract.AdminRepository {
	return &fakeAdminRepo{store: u.store}
}

type fakeUowFactory struct {
	store *fakeStore
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.users, id)
	return nil
}

// detachedUser mirrors the GORM repository, which maps rows into fresh
// entities: callers mutating the result must not touch the stored state.
func detachedUser(u *entity.User) *entity.User {
	copied := *u
	return &copied
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if u, found := r.store.users[byID.ID]; found {
				return detachedUser(u), nil
			}
			return nil, nil
		}
		if byEmail, ok := spec.(specification.ByEmail); ok {
			for _, u := range r.store.users {
				if u.Email == byEmail.Email {
					return detachedUser(u), nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.users)), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	if u, ok := r.store.users[userId]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) UpdatePlan(ctx context.Context, userId uuid.UUID, plan string, status string) error {
	if u, ok := r.store.users[userId]; ok {
		u.SubscriptionPlan = plan
		u.SubscriptionStatus = status
	}
	return nil
}

func (r *fakeUserRepo) IncrementMessageUsage(ctx context.Context, userId uuid.UUID, at time.Time) error {
	u, ok := r.store.users[userId]
	if !ok {
		return errors.New("user not found")
	}
	u.MessagesUsedToday++
	u.MessagesUsedThisMonth++
	u.LastMessageDate = &at
	return nil
}

func (r *fakeUserRepo) ResetDailyUsage(ctx context.Context, userId uuid.UUID) error {
	if u, ok := r.store.users[userId]; ok {
		u.MessagesUsedToday = 0
		now := time.Now()
		u.LastMessageDate = &now
	}
	return nil
}

func (r *fakeUserRepo) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	r.store.resetTokens[token.Id] = token
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	for _, spec := range specs {
		if byToken, ok := spec.(specification.ByToken); ok {
			for _, t := range r.store.resetTokens {
				if t.Token == byToken.Token {
					return t, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) MarkTokenUsed(ctx context.Context, id uuid.UUID) error {
	if t, ok := r.store.resetTokens[id]; ok {
		t.Used = true
	}
	return nil
}

func (r *fakeUserRepo) SearchUsers(ctx context.Context, query string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if s, found := r.store.sessions[byID.ID]; found {
				return s, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var owner *uuid.UUID
	nonEmpty := false
	for _, spec := range specs {
		if owned, ok := spec.(specification.UserOwnedBy); ok {
			id := owned.UserID
			owner = &id
		}
		if _, ok := spec.(specification.NonEmptySessions); ok {
			nonEmpty = true
		}
	}

	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		if owner != nil && s.UserId != *owner {
			continue
		}
		if nonEmpty && s.MessagesCount <= 0 {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.sessions)), nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeSessionRepo) UpdateSummary(ctx context.Context, id uuid.UUID, text string) error {
	if s, ok := r.store.sessions[id]; ok {
		s.Summary = &text
	}
	return nil
}

func (r *fakeSessionRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	if s, ok := r.store.sessions[id]; ok {
		s.Title = &title
	}
	return nil
}

func (r *fakeSessionRepo) IncrementMessagesCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	s, ok := r.store.sessions[id]
	if !ok {
		return 0, errors.New("session not found")
	}
	s.MessagesCount += delta
	return s.MessagesCount, nil
}

func (r *fakeSessionRepo) DeleteEmpty(ctx context.Context, userId uuid.UUID) (int64, error) {
	var removed int64
	for id, s := range r.store.sessions {
		if s.UserId == userId && s.MessagesCount <= 0 {
			delete(r.store.sessions, id)
			removed++
		}
	}
	return removed, nil
}

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var session, owner, id *uuid.UUID
	desc := false
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			v := s.SessionID
			session = &v
		case specification.UserOwnedBy:
			v := s.UserID
			owner = &v
		case specification.ByID:
			v := s.ID
			id = &v
		case specification.OrderBy:
			desc = s.Desc
		case specification.Pagination:
			limit = s.Limit
		}
	}

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if session != nil && m.SessionId != *session {
			continue
		}
		if owner != nil && m.UserId != *owner {
			continue
		}
		if id != nil && m.Id != *id {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[j].Timestamp.Before(out[i].Timestamp)
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.messages)), nil
}

func (r *fakeMessageRepo) FindRecent(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatMessage, error) {
	all, _ := r.FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

type fakeAdminRepo struct {
	store *fakeStore
}

func (r *fakeAdminRepo) FindSetting(ctx context.Context, settingType string) (*entity.AdminSetting, error) {
	return r.store.settings[settingType], nil
}

func (r *fakeAdminRepo) FindAllSettings(ctx context.Context) ([]*entity.AdminSetting, error) {
	var out []*entity.AdminSetting
	for _, s := range r.store.settings {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeAdminRepo) UpsertSetting(ctx context.Context, settingType, content string) (*entity.AdminSetting, error) {
	s := &entity.AdminSetting{Id: uuid.New(), Type: settingType, Content: content, UpdatedAt: time.Now()}
	r.store.settings[settingType] = s
	return s, nil
}

func (r *fakeAdminRepo) CreateDocument(ctx context.Context, doc *entity.AdminDocument) error {
	r.store.documents = append(r.store.documents, doc)
	return nil
}

func (r *fakeAdminRepo) UpdateDocument(ctx context.Context, doc *entity.AdminDocument) error {
	return nil
}

func (r *fakeAdminRepo) DeleteDocument(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeAdminRepo) FindOneDocument(ctx context.Context, specs ...specification.Specification) (*entity.AdminDocument, error) {
	return nil, nil
}

func (r *fakeAdminRepo) FindAllDocuments(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminDocument, error) {
	return r.store.documents, nil
}

// scriptedProvider answers Chat and Generate with fixed replies or errors.
type scriptedProvider struct {
	reply     string
	genReply  string
	err       error
	chatCalls int
	genCalls  int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.chatCalls++
	return p.reply, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, promptText string, options ...llm.Option) (string, error) {
	p.genCalls++
	return p.genReply, p.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type chatFixture struct {
	store    *fakeStore
	provider *scriptedProvider
	svc      IChatService
	user     *entity.User
}

func newChatFixture(t *testing.T, live bool) *chatFixture {
	t.Helper()

	store := newFakeStore()
	provider := &scriptedProvider{reply: "resposta do terapeuta", genReply: "resumo gerado"}

	svc := NewChatService(
		&fakeUowFactory{store: store},
		provider,
		classify.NewKeywordClassifier(),
		prompt.NewBuilder(constant.DefaultPersonaPrompt, constant.DefaultSupportDocument),
		summary.NewGenerator(provider, constant.TranscriptLabelPatient, constant.TranscriptLabelTherapist),
		suggest.NewGenerator(provider, constant.TranscriptLabelPatient, constant.TranscriptLabelTherapist),
		gocache.New(time.Minute, time.Minute),
		nopLogger{},
		live,
	)

	user := &entity.User{
		Id:                 uuid.New(),
		Email:              "paciente@example.com",
		Name:               "Paciente",
		SubscriptionPlan:   quota.PlanBasico,
		SubscriptionStatus: entity.SubscriptionStatusActive,
		CreatedAt:          time.Now(),
	}
	store.users[user.Id] = user

	return &chatFixture{store: store, provider: provider, svc: svc, user: user}
}

func TestSendChatTherapyTurn(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()

	res, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: sessionId,
		Message:   "Estou me sentindo perdido",
	})
	require.NoError(t, err)

	assert.Equal(t, "resposta do terapeuta", res.Response)
	assert.False(t, res.IsSupport)
	assert.Equal(t, 6, res.MessagesRemainingToday)

	// Lazy session materialized with the client id, both turns counted.
	sess := f.store.sessions[sessionId]
	require.NotNil(t, sess)
	assert.Equal(t, 2, sess.MessagesCount)
	assert.Len(t, f.store.messages, 2)
	assert.True(t, f.store.messages[0].IsUser)
	assert.False(t, f.store.messages[1].IsUser)

	assert.Equal(t, 1, f.user.MessagesUsedToday)
	assert.Equal(t, 1, f.user.MessagesUsedThisMonth)
}

func TestSendChatQuotaExceeded(t *testing.T) {
	f := newChatFixture(t, true)
	f.user.MessagesUsedToday = 7
	now := time.Now()
	f.user.LastMessageDate = &now

	_, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: uuid.New(),
		Message:   "Quero conversar sobre meus medos",
	})

	var quotaErr *dto.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, quota.PlanBasico, quotaErr.Plan)
	assert.Zero(t, quotaErr.Remaining)
	assert.NotEmpty(t, quotaErr.Message)
	assert.Empty(t, f.store.messages, "no messages persisted on quota rejection")
}

func TestSendChatSupportBypassesQuota(t *testing.T) {
	f := newChatFixture(t, true)
	f.user.MessagesUsedToday = 7
	now := time.Now()
	f.user.LastMessageDate = &now

	res, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: uuid.New(),
		Message:   "Como faço para cancelar minha assinatura?",
	})
	require.NoError(t, err)

	assert.True(t, res.IsSupport)
	// Support turns never consume the quota.
	assert.Equal(t, 7, f.user.MessagesUsedToday)
	assert.Len(t, f.store.messages, 2)
}

func TestSendChatDailyReset(t *testing.T) {
	f := newChatFixture(t, true)
	yesterday := time.Now().Add(-25 * time.Hour)
	f.user.MessagesUsedToday = 7
	f.user.LastMessageDate = &yesterday

	res, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: uuid.New(),
		Message:   "Bom dia, quero continuar nossa conversa",
	})
	require.NoError(t, err)

	// Yesterday's counter was wiped before the quota check, then one
	// message consumed.
	assert.Equal(t, 1, f.user.MessagesUsedToday)
	assert.Equal(t, 6, res.MessagesRemainingToday)
}

func TestSendChatBackendDisabled(t *testing.T) {
	f := newChatFixture(t, false)

	res, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: uuid.New(),
		Message:   "Estou ansioso",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.BackendDisabledReply, res.Response)
	assert.True(t, res.IsSupport)
	assert.Zero(t, f.user.MessagesUsedToday, "disabled backend must not consume quota")
	assert.Zero(t, f.provider.chatCalls)
	assert.Len(t, f.store.messages, 2, "exchange is still recorded")
}

func TestSendChatProviderFailure(t *testing.T) {
	f := newChatFixture(t, true)
	f.provider.err = errors.New("model offline")
	f.provider.reply = ""

	res, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: uuid.New(),
		Message:   "Estou triste hoje",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.TechnicalDifficultiesReply, res.Response)
	assert.True(t, res.IsSupport)
	assert.Zero(t, f.user.MessagesUsedToday, "failed exchange must not consume quota")
}

func TestSendChatForeignSession(t *testing.T) {
	f := newChatFixture(t, true)
	other := uuid.New()
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: other, CreatedAt: time.Now()}

	_, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
		SessionId: sessionId,
		Message:   "oi",
	})

	var notFound *dto.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSendChatSummaryCadence(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()

	// Two exchanges bring the count to 4, which triggers a summary.
	for i := 0; i < 2; i++ {
		_, err := f.svc.SendChat(context.Background(), f.user.Id, &dto.ChatRequest{
			SessionId: sessionId,
			Message:   "Continuo refletindo sobre o que conversamos",
		})
		require.NoError(t, err)
	}

	sess := f.store.sessions[sessionId]
	require.NotNil(t, sess)
	assert.Equal(t, 4, sess.MessagesCount)
	require.NotNil(t, sess.Summary, "summary expected at the 4-message mark")
	assert.Equal(t, "resumo gerado", *sess.Summary)
}

func TestCreateSessionDoesNotPersist(t *testing.T) {
	f := newChatFixture(t, true)

	res, err := f.svc.CreateSession(context.Background(), f.user.Id)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)
	assert.Empty(t, f.store.sessions, "session row must only appear on first message")
}

func TestListSessionsPrunesEmpty(t *testing.T) {
	f := newChatFixture(t, true)

	emptyId := uuid.New()
	activeId := uuid.New()
	f.store.sessions[emptyId] = &entity.ChatSession{Id: emptyId, UserId: f.user.Id, CreatedAt: time.Now()}
	f.store.sessions[activeId] = &entity.ChatSession{Id: activeId, UserId: f.user.Id, MessagesCount: 2, CreatedAt: time.Now()}

	sessions, err := f.svc.ListSessions(context.Background(), f.user.Id)
	require.NoError(t, err)

	require.Len(t, sessions, 1)
	assert.Equal(t, activeId, sessions[0].Id)
	assert.NotContains(t, f.store.sessions, emptyId)
}

func TestGetSessionMessagesOwnership(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: uuid.New(), MessagesCount: 2, CreatedAt: time.Now()}

	_, err := f.svc.GetSessionMessages(context.Background(), f.user.Id, sessionId)

	var notFound *dto.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGenerateSummaryTooFewMessages(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: f.user.Id, MessagesCount: 2, CreatedAt: time.Now()}
	f.store.messages = []*entity.ChatMessage{
		{Id: uuid.New(), SessionId: sessionId, UserId: f.user.Id, Content: "oi", IsUser: true, Timestamp: time.Now()},
		{Id: uuid.New(), SessionId: sessionId, UserId: f.user.Id, Content: "olá", IsUser: false, Timestamp: time.Now()},
	}

	res, err := f.svc.GenerateSummary(context.Background(), f.user.Id, sessionId)
	require.NoError(t, err)
	assert.Nil(t, res.Summary)
}

func TestGenerateSummaryDeletesEmptySession(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: f.user.Id, CreatedAt: time.Now()}

	res, err := f.svc.GenerateSummary(context.Background(), f.user.Id, sessionId)
	require.NoError(t, err)
	assert.Nil(t, res.Summary)
	assert.NotContains(t, f.store.sessions, sessionId)
}

func TestGenerateSummaryForeignSessionIsNoop(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: uuid.New(), MessagesCount: 4, CreatedAt: time.Now()}

	res, err := f.svc.GenerateSummary(context.Background(), f.user.Id, sessionId)
	require.NoError(t, err)
	assert.Nil(t, res.Summary)
	assert.Contains(t, f.store.sessions, sessionId, "foreign session must stay untouched")
}

func TestGenerateSummaryManual(t *testing.T) {
	f := newChatFixture(t, true)
	sessionId := uuid.New()
	f.store.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: f.user.Id, MessagesCount: 4, CreatedAt: time.Now()}
	base := time.Now()
	for i := 0; i < 4; i++ {
		f.store.messages = append(f.store.messages, &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: sessionId,
			UserId:    f.user.Id,
			Content:   "mensagem",
			IsUser:    i%2 == 0,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	res, err := f.svc.GenerateSummary(context.Background(), f.user.Id, sessionId)
	require.NoError(t, err)
	require.NotNil(t, res.Summary)
	assert.Equal(t, "resumo gerado", *res.Summary)

	sess := f.store.sessions[sessionId]
	require.NotNil(t, sess.Summary)
	assert.Equal(t, "resumo gerado", *sess.Summary)
}

func TestGetSuggestionsNoHistoryFallsBack(t *testing.T) {
	f := newChatFixture(t, true)

	res, err := f.svc.GetSuggestions(context.Background(), f.user.Id)
	require.NoError(t, err)

	assert.Equal(t, constant.DefaultSuggestions, res.Suggestions)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Zero(t, f.provider.genCalls, "no model call without history")
}

func TestGetSuggestionsFromHistory(t *testing.T) {
	f := newChatFixture(t, true)
	f.provider.genReply = "1. Como foi sua semana?\n2. O que mudou desde nossa última conversa?\n3. Quer retomar o tema da ansiedade?"

	sessionId := uuid.New()
	base := time.Now()
	for i := 0; i < 4; i++ {
		f.store.messages = append(f.store.messages, &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: sessionId,
			UserId:    f.user.Id,
			Content:   "mensagem",
			IsUser:    i%2 == 0,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	res, err := f.svc.GetSuggestions(context.Background(), f.user.Id)
	require.NoError(t, err)

	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Como foi sua semana?", res.Suggestions[0])
	assert.Equal(t, "Quer retomar o tema da ansiedade?", res.Suggestions[2])
	assert.Equal(t, 1, f.provider.genCalls)
}

func TestGetSuggestionsProviderFailureFallsBack(t *testing.T) {
	f := newChatFixture(t, true)
	f.provider.err = errors.New("model offline")
	f.provider.genReply = ""

	f.store.messages = append(f.store.messages, &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		UserId:    f.user.Id,
		Content:   "oi",
		IsUser:    true,
		Timestamp: time.Now(),
	})

	res, err := f.svc.GetSuggestions(context.Background(), f.user.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultSuggestions, res.Suggestions)
}

func TestGetSuggestionsBackendDisabled(t *testing.T) {
	f := newChatFixture(t, false)

	res, err := f.svc.GetSuggestions(context.Background(), f.user.Id)
	require.NoError(t, err)

	assert.Equal(t, constant.DefaultSuggestions, res.Suggestions)
	assert.Zero(t, f.provider.genCalls)
}
