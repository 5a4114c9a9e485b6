package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/wolfman30/eventpulse-api/internal/chat"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

type echoBackend struct{}

func (echoBackend) Name() string { return "echo" }

func (echoBackend) Reply(_ context.Context, message string) (string, error) {
	if strings.Contains(message, "events") {
		return "See the Events tab.", nil
	}
	return message, nil
}

func TestRunProbesCountsRemoteReplies(t *testing.T) {
	responder := chat.NewResponder(chat.ResponderConfig{Backend: echoBackend{}, Logger: logging.Discard()})
	var out bytes.Buffer

	remote := runProbes(context.Background(), responder, []string{"any events?", "thanks", "  "}, &out)

	if remote != 1 {
		t.Fatalf("expected 1 remote reply, got %d", remote)
	}
	text := out.String()
	if !strings.Contains(text, "backend: echo") {
		t.Fatalf("expected backend header, got %q", text)
	}
	if !strings.Contains(text, "source=fallback") {
		t.Fatalf("expected echoed reply to fall back, got %q", text)
	}
	if !strings.Contains(text, "error: chat: message is required") {
		t.Fatalf("expected blank probe error, got %q", text)
	}
	if !strings.Contains(text, "1/3 replies from echo") {
		t.Fatalf("expected summary line, got %q", text)
	}
}

func TestRunProbesLocalOnly(t *testing.T) {
	responder := chat.NewResponder(chat.ResponderConfig{Logger: logging.Discard()})
	var out bytes.Buffer
	if remote := runProbes(context.Background(), responder, defaultProbes, &out); remote != 0 {
		t.Fatalf("expected no remote replies, got %d", remote)
	}
	if !strings.Contains(out.String(), "backend: local") {
		t.Fatalf("expected local backend, got %q", out.String())
	}
}
