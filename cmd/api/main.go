package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/djobea/djobea-ai/internal/api/router"
	appconfig "github.com/djobea/djobea-ai/internal/config"
	"github.com/djobea/djobea-ai/internal/conversation"
	"github.com/djobea/djobea-ai/internal/locations"
	"github.com/djobea/djobea-ai/internal/messaging"
	"github.com/djobea/djobea-ai/internal/notifications"
	"github.com/djobea/djobea-ai/internal/notify"
	"github.com/djobea/djobea-ai/internal/observability/metrics"
	"github.com/djobea/djobea-ai/internal/pricing"
	"github.com/djobea/djobea-ai/internal/proactive"
	"github.com/djobea/djobea-ai/internal/providers"
	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/internal/scheduling"
	"github.com/djobea/djobea-ai/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting djobea-ai API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: Postgres when configured, in-memory otherwise.
	var (
		requestRepo  requests.Repository
		providerRepo providers.Repository
		attemptStore notifications.AttemptStore
		slotStore    scheduling.SlotStore
		matchStore   locations.MatchStore
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		requestRepo = requests.NewPostgresRepository(pool)
		providerRepo = providers.NewPostgresRepository(pool)
		attemptStore = notifications.NewPostgresAttemptStore(pool)
		slotStore = scheduling.NewPostgresSlotStore(pool)
		matchStore = locations.NewPostgresMatchStore(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		requestRepo = requests.NewInMemoryRepository()
		providerRepo = providers.NewInMemoryRepository()
		attemptStore = notifications.NewInMemoryAttemptStore()
		slotStore = scheduling.NewInMemorySlotStore()
		matchStore = locations.NewInMemoryMatchStore()
	}

	// Sessions: Redis TTL store with in-memory fallback.
	var sessions conversation.SessionStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, using in-memory sessions", "error", err)
			sessions = conversation.NewInMemorySessionStore(cfg.SessionTimeout)
		} else {
			sessions = conversation.NewRedisSessionStore(redisClient, cfg.SessionTimeout)
		}
	} else {
		sessions = conversation.NewInMemorySessionStore(cfg.SessionTimeout)
	}

	// Outbound messaging.
	sender, selected, reason := messaging.BuildSender(messaging.SelectionConfig{
		Preference:     cfg.MessagingProvider,
		AccountSID:     cfg.TwilioAccountSID,
		AuthToken:      cfg.TwilioAuthToken,
		WhatsAppNumber: cfg.TwilioWhatsAppNumber,
		SMSNumber:      cfg.TwilioSMSNumber,
	}, logger)
	if sender == nil {
		logger.Warn("outbound messaging disabled", "reason", reason)
		sender = messaging.NewStubSender(logger)
	} else {
		logger.Info("outbound messaging configured", "channel", selected)
	}

	// Metrics.
	registry := prometheus.NewRegistry()
	conversationMetrics := metrics.NewConversationMetrics(registry)
	notificationMetrics := metrics.NewNotificationMetrics(registry)
	proactiveMetrics := metrics.NewProactiveMetrics(registry)

	// Domain services.
	matcher := providers.NewMatcher(providerRepo, logger)
	landmarks := locations.NewMatcher(locations.DefaultGazetteer(), matchStore, logger)
	priceTable := pricing.NewTable(nil, logger)
	scheduler := scheduling.NewService(requestRepo, slotStore, logger)

	emailSender := notify.EmailSender(notify.NewStubEmailSender(logger))
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	}
	escalation := notify.NewEscalationService(emailSender, cfg.SupportEmail, logger)

	protocol := notifications.NewProtocol(
		matcher, attemptStore, sender, priceTable, requestRepo,
		notifications.NewEmailEscalator(escalation),
		notifications.ProtocolConfig{
			BatchSize:        cfg.NotificationBatchSize,
			MaxRounds:        cfg.NotificationMaxRounds,
			FallbackContacts: cfg.FallbackContactCount,
			ResponseTimeout:  cfg.ProviderResponseTimeout,
			Support: notifications.SupportContact{
				Phone:    cfg.SupportPhone,
				WhatsApp: cfg.SupportWhatsApp,
				Email:    cfg.SupportEmail,
			},
		},
		logger, notificationMetrics,
	)

	updater := proactive.NewUpdater(requestRepo, sender, protocol, proactive.Config{
		Tick:               cfg.ProactiveTick,
		UrgentTick:         cfg.ProactiveTickUrgent,
		UpdateInterval:     cfg.ProactiveUpdateInterval,
		ResponseTimeout:    cfg.ProviderResponseTimeout,
		CountdownThreshold: cfg.CountdownThreshold,
		MaxIterations:      cfg.ProactiveMaxIterations,
	}, logger, proactiveMetrics)
	defer updater.Shutdown()

	lifecycle := requests.NewService(requestRepo, protocol, updater, sender, scheduler, logger)

	// LLM intent classifier, optional.
	var classifier conversation.IntentClassifier
	if cfg.GeminiAPIKey != "" {
		gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Warn("gemini client unavailable, classifier disabled", "error", err)
		} else {
			defer func() { _ = gemini.Close() }()
			classifier = conversation.NewLLMIntentClassifier(gemini, conversation.ClassifierConfig{
				Model:       cfg.GeminiModelID,
				Temperature: float32(cfg.ClassifierTemp),
			}, logger)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, classifier disabled")
	}

	engine := conversation.NewEngine(
		sessions, lifecycle, scheduler, landmarks, priceTable,
		classifier, logger, conversationMetrics,
	)

	var processor conversation.Processor = engine
	if cfg.UseMemoryQueue {
		dispatcher := conversation.NewDispatcher(
			engine,
			conversation.NewMemoryQueue(0),
			logger,
			conversation.WithWorkerCount(cfg.WorkerCount),
		)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = dispatcher.Shutdown(shutdownCtx)
		}()
		processor = dispatcher
	}

	conversationHandler := conversation.NewHandler(processor, logger)
	requestsHandler := requests.NewHandler(lifecycle, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: conversationHandler,
		RequestsHandler:     requestsHandler,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  nil,
		WebhookRateLimit:    5,
		WebhookBurst:        20,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
