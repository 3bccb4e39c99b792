package bootstrap

import (
	"log"
	"time"

	"anantara-be/internal/config"
	"anantara-be/internal/constant"
	"anantara-be/internal/controller"
	"anantara-be/internal/pkg/logger"
	"anantara-be/internal/pkg/mailer"
	"anantara-be/internal/pkg/serverutils"
	"anantara-be/internal/repository/unitofwork"
	"anantara-be/internal/service"
	"anantara-be/pkg/llm/factory"
	"anantara-be/pkg/payment"
	"anantara-be/pkg/therapy/classify"
	"anantara-be/pkg/therapy/prompt"
	"anantara-be/pkg/therapy/suggest"
	"anantara-be/pkg/therapy/summary"

	pktNats "anantara-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatController    controller.IChatController
	PaymentController controller.IPaymentController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// App-level error handler built around the shared logger.
	ErrorHandler fiber.ErrorHandler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS domain events (optional, nil-safe publishers)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Therapy domain components
	classifier := classify.NewKeywordClassifier()
	promptBuilder := prompt.NewBuilder(constant.DefaultPersonaPrompt, constant.DefaultSupportDocument)
	summarizer := summary.NewGenerator(llmProvider, constant.TranscriptLabelPatient, constant.TranscriptLabelTherapist)
	suggester := suggest.NewGenerator(llmProvider, constant.TranscriptLabelPatient, constant.TranscriptLabelTherapist)

	// Prompt settings cache shared by chat and admin services.
	settingsCache := gocache.New(5*time.Minute, 10*time.Minute)

	// 5. Payment Gateway
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, service.EmailJobsTopic, emailService)

	authService := service.NewAuthService(uowFactory, publisherService, natsPub)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		classifier,
		promptBuilder,
		summarizer,
		suggester,
		settingsCache,
		sysLogger,
		cfg.Ai.LiveBackend,
	)
	paymentService := service.NewPaymentService(uowFactory, gateway, natsPub, sysLogger, cfg.App.FrontendURL)
	adminService := service.NewAdminService(uowFactory, settingsCache, sysLogger)

	// 7. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatController:    controller.NewChatController(chatService),
		PaymentController: controller.NewPaymentController(paymentService),
		AdminController:   controller.NewAdminController(adminService, paymentService),

		ConsumerService: consumerService,

		ErrorHandler: serverutils.NewErrorHandler(sysLogger),
		Logger:       sysLogger,
	}
}
