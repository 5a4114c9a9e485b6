package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// systemPrompt keeps hosted models on topic for this assistant.
const systemPrompt = "You are the EventPulse assistant. Answer briefly and helpfully. " +
	"You can point users to the Events tab for conferences and hackathons, the Image Generation tab " +
	"for text-to-image, and the SMS tab for messaging contacts."

// GeminiBackend answers through Google's Gemini API.
type GeminiBackend struct {
	client  *genai.Client
	modelID string
}

func NewGeminiBackend(ctx context.Context, apiKey, modelID string) (*GeminiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chat: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chat: failed to create gemini client: %w", err)
	}
	return &GeminiBackend{client: client, modelID: modelID}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Reply(ctx context.Context, message string) (string, error) {
	model := b.client.GenerativeModel(b.modelID)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SetMaxOutputTokens(512)

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("chat: gemini completion failed: %w", err)
	}
	return geminiResponseText(resp)
}

// geminiResponseText joins the text parts of the first candidate.
func geminiResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("chat: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("chat: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// Close releases the underlying gRPC connection.
func (b *GeminiBackend) Close() error {
	return b.client.Close()
}
