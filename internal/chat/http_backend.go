package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBackendBody caps how much of a backend response is read.
const maxBackendBody = 1 << 20

// HTTPBackendConfig describes a generic JSON conversational endpoint.
type HTTPBackendConfig struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPBackend posts {"message": ...} to a conversational endpoint and reads the
// reply from the common response shapes.
type HTTPBackend struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewHTTPBackend(cfg HTTPBackendConfig) (*HTTPBackend, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("chat: backend URL required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: MaxTimeout}
	}
	return &HTTPBackend{
		url:    strings.TrimSpace(cfg.URL),
		apiKey: cfg.APIKey,
		http:   client,
	}, nil
}

func (b *HTTPBackend) Name() string { return "http" }

func (b *HTTPBackend) Reply(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("chat: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("chat: request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(b.apiKey) != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendBody))
	if err != nil {
		return "", fmt.Errorf("chat: read response failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return extractReply(data)
}

var replyKeys = []string{"response", "reply", "generated_text", "text", "message"}

// extractReply accepts {"response": ...} style objects and
// [{"generated_text": ...}] arrays.
func extractReply(data []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("chat: decode response failed: %w", err)
	}
	if list, ok := decoded.([]any); ok {
		if len(list) == 0 {
			return "", errors.New("chat: backend returned an empty list")
		}
		decoded = list[0]
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return "", errors.New("chat: backend returned an unexpected shape")
	}
	for _, key := range replyKeys {
		if text, ok := obj[key].(string); ok && strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", errors.New("chat: backend response has no reply text")
}
