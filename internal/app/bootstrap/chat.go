package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/wolfman30/eventpulse-api/internal/chat"
	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

// Chat backend selectors accepted in CHAT_BACKEND.
const (
	ChatBackendAuto    = "auto"
	ChatBackendNone    = "none"
	ChatBackendHTTP    = "http"
	ChatBackendGemini  = "gemini"
	ChatBackendBedrock = "bedrock"
)

// AWSConfigLoader resolves SDK configuration for the Bedrock backend.
type AWSConfigLoader func(ctx context.Context, cfg *appconfig.Config) (aws.Config, error)

// BuildChatBackend picks the remote conversational backend from config. A nil
// backend with a nil error means local keyword replies only.
func BuildChatBackend(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, loadAWS AWSConfigLoader) (chat.Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	selected := strings.ToLower(strings.TrimSpace(cfg.ChatBackend))
	if selected == "" || selected == ChatBackendAuto {
		selected = resolveAutoChatBackend(cfg)
	}

	switch selected {
	case ChatBackendNone:
		logger.Info("no chat backend configured; using local replies")
		return nil, nil
	case ChatBackendHTTP:
		backend, err := chat.NewHTTPBackend(chat.HTTPBackendConfig{
			URL:    cfg.ChatBackendURL,
			APIKey: cfg.ChatBackendAPIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: http chat backend: %w", err)
		}
		logger.Info("chat backend enabled", "backend", ChatBackendHTTP)
		return backend, nil
	case ChatBackendGemini:
		backend, err := chat.NewGeminiBackend(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: gemini chat backend: %w", err)
		}
		logger.Info("chat backend enabled", "backend", ChatBackendGemini, "model", cfg.GeminiModelID)
		return backend, nil
	case ChatBackendBedrock:
		model := strings.TrimSpace(cfg.BedrockModelID)
		if model == "" {
			return nil, fmt.Errorf("bootstrap: bedrock chat backend: BEDROCK_MODEL_ID is required")
		}
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: bedrock chat backend: aws config loader is required")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		backend, err := chat.NewBedrockBackend(bedrockruntime.NewFromConfig(awsCfg), model)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: bedrock chat backend: %w", err)
		}
		logger.Info("chat backend enabled", "backend", ChatBackendBedrock, "model", model)
		return backend, nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown CHAT_BACKEND %q", cfg.ChatBackend)
	}
}

func resolveAutoChatBackend(cfg *appconfig.Config) string {
	switch {
	case strings.TrimSpace(cfg.ChatBackendURL) != "":
		return ChatBackendHTTP
	case strings.TrimSpace(cfg.GeminiAPIKey) != "":
		return ChatBackendGemini
	case strings.TrimSpace(cfg.BedrockModelID) != "":
		return ChatBackendBedrock
	default:
		return ChatBackendNone
	}
}
