package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

var telnyxSendTracer = otel.Tracer("eventpulse.internal.messaging.telnyx_send")

const defaultTelnyxBaseURL = "https://api.telnyx.com/v2"

// TelnyxConfig holds the credentials and transport for TelnyxSender.
type TelnyxConfig struct {
	APIKey             string
	MessagingProfileID string
	From               string
	BaseURL            string
	Timeout            time.Duration
	HTTPClient         *http.Client
	Logger             *logging.Logger
}

// TelnyxSender posts SMS messages using Telnyx's V2 API.
type TelnyxSender struct {
	apiKey             string
	messagingProfileID string
	from               string
	baseURL            string
	httpClient         *http.Client
	logger             *logging.Logger
}

// NewTelnyxSender builds a sender for Telnyx V2 API.
func NewTelnyxSender(cfg TelnyxConfig) *TelnyxSender {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultTelnyxBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &TelnyxSender{
		apiKey:             cfg.APIKey,
		messagingProfileID: cfg.MessagingProfileID,
		from:               cfg.From,
		baseURL:            baseURL,
		httpClient:         httpClient,
		logger:             cfg.Logger,
	}
}

var _ Sender = (*TelnyxSender)(nil)

func (s *TelnyxSender) Name() string { return SMSProviderTelnyx }

// Send dispatches a single SMS with one attempt and returns the Telnyx message id.
func (s *TelnyxSender) Send(ctx context.Context, to, body string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("messaging: telnyx api key missing")
	}
	if s.from == "" && s.messagingProfileID == "" {
		return "", errors.New("messaging: telnyx from number or messaging profile required")
	}

	ctx, span := telnyxSendTracer.Start(ctx, "messaging.telnyx.send")
	defer span.End()
	span.SetAttributes(attribute.String("eventpulse.to", to))

	payload := map[string]string{
		"to":   to,
		"text": body,
	}
	if s.from != "" {
		payload["from"] = s.from
	}
	if s.messagingProfileID != "" {
		payload["messaging_profile_id"] = s.messagingProfileID
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("messaging: failed to marshal telnyx payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("messaging: build telnyx request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", &ProviderError{Provider: SMSProviderTelnyx, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Provider: SMSProviderTelnyx, StatusCode: resp.StatusCode, Detail: formatTelnyxError(resp.StatusCode, respBody)}
		span.RecordError(perr)
		return "", perr
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.Data.ID == "" {
		perr := &ProviderError{Provider: SMSProviderTelnyx, StatusCode: resp.StatusCode, Detail: "response missing message id"}
		span.RecordError(perr)
		return "", perr
	}
	s.logger.Info("telnyx sms sent", "to", to, "message_id", parsed.Data.ID)
	return parsed.Data.ID, nil
}

func formatTelnyxError(status int, body []byte) string {
	var parsed struct {
		Errors []struct {
			Code   string `json:"code"`
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		first := parsed.Errors[0]
		detail := first.Detail
		if detail == "" {
			detail = first.Title
		}
		if first.Code != "" {
			return fmt.Sprintf("code %s: %s", first.Code, detail)
		}
		return detail
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return http.StatusText(status)
}
