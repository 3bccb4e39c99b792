package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"anantara-be/internal/entity"
	"anantara-be/internal/repository/specification"
	"anantara-be/internal/repository/unitofwork"
	"anantara-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())
	assert.NotNil(t, uow.PaymentRepository())
	assert.NotNil(t, uow.AdminRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Chat Session Round Trip", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:                 uuid.New(),
			Email:              "test-integration-" + uuid.New().String() + "@example.com",
			Name:               "Integration Test",
			PasswordHash:       "x",
			SubscriptionPlan:   "free",
			SubscriptionStatus: "active",
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))
		defer uow.UserRepository().Delete(ctx, user.Id)

		sess := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    user.Id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, sess))
		defer uow.ChatSessionRepository().Delete(ctx, sess.Id)

		// Atomic counter returns the post-increment value.
		count, err := uow.ChatSessionRepository().IncrementMessagesCount(ctx, sess.Id, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sess.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2, found.MessagesCount)
	})

	t.Run("Empty Session Cleanup", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:                 uuid.New(),
			Email:              "test-cleanup-" + uuid.New().String() + "@example.com",
			Name:               "Cleanup Test",
			PasswordHash:       "x",
			SubscriptionPlan:   "free",
			SubscriptionStatus: "active",
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))
		defer uow.UserRepository().Delete(ctx, user.Id)

		sess := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    user.Id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, sess))

		removed, err := uow.ChatSessionRepository().DeleteEmpty(ctx, user.Id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, removed, int64(1))

		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sess.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
