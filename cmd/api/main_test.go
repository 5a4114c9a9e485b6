package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

func TestSetupMetricsExposesMetrics(t *testing.T) {
	handler, m := setupMetrics(true)
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSMS("twilio", "sent")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "eventpulse_sms_outbound_total") {
		t.Fatalf("expected sms counter to be exported")
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Fatalf("expected runtime collectors to be registered")
	}
}

func TestSetupMetricsDisabled(t *testing.T) {
	handler, m := setupMetrics(false)
	if handler != nil {
		t.Fatalf("expected no handler when metrics are disabled")
	}
	m.ObserveChatReply("fallback")
}

func TestWriteTimeoutCoversImageTimeout(t *testing.T) {
	tests := []struct {
		name  string
		image time.Duration
		want  time.Duration
	}{
		{"configured", 30 * time.Second, 45 * time.Second},
		{"zero uses client default", 0, 105 * time.Second},
		{"negative uses client default", -time.Second, 105 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeTimeout(tt.image); got != tt.want {
				t.Fatalf("writeTimeout(%s) = %s, want %s", tt.image, got, tt.want)
			}
		})
	}
}

func TestBuildHandlerLocalOnly(t *testing.T) {
	cfg := &appconfig.Config{
		ChatBackend:        "none",
		StaticDir:          t.TempDir(),
		CORSAllowedOrigins: []string{"*"},
		ImageTimeout:       time.Second,
		SMSProvider:        "auto",
	}
	handler, cleanup := buildHandler(context.Background(), cfg, logging.Discard())
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"hello"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to be absent when disabled, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sms-status", nil))
	if !strings.Contains(rr.Body.String(), `"sms_configured":false`) {
		t.Fatalf("expected unconfigured sms, got %s", rr.Body.String())
	}
}

func TestBuildHandlerSurvivesBadChatBackend(t *testing.T) {
	cfg := &appconfig.Config{ChatBackend: "bedrock", StaticDir: t.TempDir()}
	handler, cleanup := buildHandler(context.Background(), cfg, logging.Discard())
	cleanup()
	cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"thanks"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected local reply, got %d", rr.Code)
	}
}
