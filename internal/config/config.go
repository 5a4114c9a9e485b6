package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	LogFormat          string
	StaticDir          string
	CORSAllowedOrigins []string
	MetricsEnabled     bool

	// Chat backend
	ChatBackend       string
	ChatBackendURL    string
	ChatBackendAPIKey string
	ChatTimeout       time.Duration
	GeminiAPIKey      string
	GeminiModelID     string
	BedrockModelID    string

	// AWS (Bedrock)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Image generation
	ImageBaseURL string
	ImageModel   string
	ImageTimeout time.Duration

	// SMS
	SMSProvider              string
	SMSTimeout               time.Duration
	TwilioAccountSID         string
	TwilioAuthToken          string
	TwilioFromNumber         string
	TelnyxAPIKey             string
	TelnyxMessagingProfileID string
	TelnyxFromNumber         string
}

// maxChatTimeout bounds remote chat calls regardless of CHAT_TIMEOUT.
const maxChatTimeout = 15 * time.Second

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		StaticDir:          getEnv("STATIC_DIR", "frontend/dist"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),

		ChatBackend:       strings.ToLower(strings.TrimSpace(getEnv("CHAT_BACKEND", "auto"))),
		ChatBackendURL:    getEnv("CHAT_BACKEND_URL", ""),
		ChatBackendAPIKey: getEnv("CHAT_BACKEND_API_KEY", ""),
		ChatTimeout:       getEnvAsDuration("CHAT_TIMEOUT", maxChatTimeout),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:     getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		ImageBaseURL: getEnv("IMAGE_BASE_URL", "https://pollinations.ai/p"),
		ImageModel:   getEnv("IMAGE_MODEL", "flux"),
		ImageTimeout: getEnvAsDuration("IMAGE_TIMEOUT", 90*time.Second),

		SMSProvider:              strings.ToLower(strings.TrimSpace(getEnv("SMS_PROVIDER", "auto"))),
		SMSTimeout:               getEnvAsDuration("SMS_TIMEOUT", 10*time.Second),
		TwilioAccountSID:         getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:          getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:         getEnv("TWILIO_FROM_NUMBER", ""),
		TelnyxAPIKey:             getEnv("TELNYX_API_KEY", ""),
		TelnyxMessagingProfileID: getEnv("TELNYX_MESSAGING_PROFILE_ID", ""),
		TelnyxFromNumber:         getEnv("TELNYX_FROM_NUMBER", ""),
	}
	if cfg.ChatTimeout <= 0 || cfg.ChatTimeout > maxChatTimeout {
		cfg.ChatTimeout = maxChatTimeout
	}
	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
