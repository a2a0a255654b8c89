package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/djobea/djobea-ai/internal/conversation"
	httpmiddleware "github.com/djobea/djobea-ai/internal/http/middleware"
	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	RequestsHandler     *requests.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
	// WebhookRateLimit is requests/second per IP on the public webhook
	// endpoints; zero disables limiting.
	WebhookRateLimit float64
	WebhookBurst     int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public webhooks.
	r.Group(func(public chi.Router) {
		if cfg.WebhookRateLimit > 0 {
			burst := cfg.WebhookBurst
			if burst <= 0 {
				burst = 10
			}
			public.Use(httpmiddleware.RateLimit(cfg.WebhookRateLimit, burst))
		}
		public.Post("/webhooks/whatsapp", cfg.ConversationHandler.WhatsAppWebhook)
		public.Post("/chat/message", cfg.ConversationHandler.ChatMessage)
		public.Post("/providers/response", cfg.RequestsHandler.ProviderResponse)
	})

	r.Get("/requests/{id}/status", cfg.RequestsHandler.Status)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
