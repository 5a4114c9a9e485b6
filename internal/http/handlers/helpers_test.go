package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/wolfman30/eventpulse-api/internal/messaging"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

type stubSender struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (s *stubSender) Name() string { return "stub" }

func (s *stubSender) Send(_ context.Context, to, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, to)
	if err := s.fail[to]; err != nil {
		return "", err
	}
	return "SM" + to[1:], nil
}

func newSMSHandler(sender messaging.Sender, reason string) *SMSHandler {
	svc := messaging.NewService(sender, "", reason, logging.Discard(), nil)
	return NewSMSHandler(svc, messaging.NewDispatcher(svc), logging.Discard())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

var errCarrier = errors.New("carrier rejected")
