package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	// Conversation engine
	UseMemoryQueue        bool
	WorkerCount           int
	SessionTimeout        time.Duration
	MaxCollectionAttempts int

	// Redis session storage
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Outbound messaging (Twilio WhatsApp primary, SMS failover)
	MessagingProvider    string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	TwilioSMSNumber      string

	// LLM intent classifier
	GeminiAPIKey   string
	GeminiModelID  string
	ClassifierTemp float64

	// Provider notification ladder
	ProviderResponseTimeout time.Duration
	NotificationMaxRounds   int
	NotificationBatchSize   int
	FallbackContactCount    int

	// Proactive updates
	ProactiveTick           time.Duration
	ProactiveTickUrgent     time.Duration
	CountdownThreshold      time.Duration
	ProactiveMaxIterations  int
	ProactiveUpdateInterval time.Duration

	// Human support escalation
	SupportPhone    string
	SupportWhatsApp string
	SupportEmail    string

	// SendGrid escalation email
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		UseMemoryQueue:        getEnvAsBool("USE_MEMORY_QUEUE", true),
		WorkerCount:           getEnvAsInt("WORKER_COUNT", 2),
		SessionTimeout:        getEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
		MaxCollectionAttempts: getEnvAsInt("MAX_COLLECTION_ATTEMPTS", 3),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		MessagingProvider:    strings.ToLower(strings.TrimSpace(getEnv("MESSAGING_PROVIDER", "auto"))),
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		TwilioSMSNumber:      getEnv("TWILIO_SMS_NUMBER", ""),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:  getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		ClassifierTemp: getEnvAsFloat("CLASSIFIER_TEMPERATURE", 0.1),

		ProviderResponseTimeout: getEnvAsDuration("PROVIDER_RESPONSE_TIMEOUT", 10*time.Minute),
		NotificationMaxRounds:   getEnvAsInt("NOTIFICATION_MAX_ROUNDS", 2),
		NotificationBatchSize:   getEnvAsInt("NOTIFICATION_BATCH_SIZE", 3),
		FallbackContactCount:    getEnvAsInt("FALLBACK_CONTACT_COUNT", 3),

		ProactiveTick:           getEnvAsDuration("PROACTIVE_TICK", 30*time.Second),
		ProactiveTickUrgent:     getEnvAsDuration("PROACTIVE_TICK_URGENT", 15*time.Second),
		CountdownThreshold:      getEnvAsDuration("COUNTDOWN_THRESHOLD", 3*time.Minute),
		ProactiveMaxIterations:  getEnvAsInt("PROACTIVE_MAX_ITERATIONS", 120),
		ProactiveUpdateInterval: getEnvAsDuration("PROACTIVE_UPDATE_INTERVAL", 2*time.Minute),

		SupportPhone:    getEnv("SUPPORT_PHONE", "+237690000000"),
		SupportWhatsApp: getEnv("SUPPORT_WHATSAPP", "+237690000000"),
		SupportEmail:    getEnv("SUPPORT_EMAIL", "support@djobea.ai"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "alerts@djobea.ai"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Djobea AI"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
