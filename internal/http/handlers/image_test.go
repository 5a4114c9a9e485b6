package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/eventpulse-api/internal/imagegen"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

func newImageHandler(t *testing.T, upstream http.HandlerFunc, timeout time.Duration) *ImageHandler {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)
	client := imagegen.New(imagegen.Config{BaseURL: server.URL, Timeout: timeout, Logger: logging.Discard()})
	return NewImageHandler(client, logging.Discard())
}

func TestGenerateImageAttachment(t *testing.T) {
	var gotQuery string
	h := newImageHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}, time.Second)

	rec := postJSON(t, h.Generate, "/api/generate-image", `{"prompt":"a red fox","width":512}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PNGDATA", rec.Body.String())
	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment; filename=generated_"), disposition)
	assert.True(t, strings.HasSuffix(disposition, ".png"), disposition)
	assert.Contains(t, gotQuery, "width=512")
	assert.Contains(t, gotQuery, "height=1024")
	assert.Contains(t, gotQuery, "seed=42")
}

func TestGenerateImageKeepsExplicitZeroSeed(t *testing.T) {
	var gotQuery string
	h := newImageHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("JPEG"))
	}, time.Second)

	rec := postJSON(t, h.Generate, "/api/generate-image", `{"prompt":"cat","seed":0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotQuery, "seed=0")
}

func TestGenerateImageEmptyBodyUsesDefaults(t *testing.T) {
	var gotPath string
	h := newImageHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("JPEG"))
	}, time.Second)

	rec := postJSON(t, h.Generate, "/api/generate-image", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/A%20beautiful%20landscape", gotPath)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
}

func TestGenerateImageUpstreamError(t *testing.T) {
	h := newImageHandler(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusBadGateway)
	}, time.Second)

	rec := postJSON(t, h.Generate, "/api/generate-image", `{"prompt":"x"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Failed to generate image", body["error"])
	assert.Contains(t, body["details"], "model overloaded")
}

func TestGenerateImageTimeout(t *testing.T) {
	h := newImageHandler(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	rec := postJSON(t, h.Generate, "/api/generate-image", `{}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["details"])
}

func TestGenerateImageMalformedJSON(t *testing.T) {
	h := NewImageHandler(imagegen.New(imagegen.Config{Logger: logging.Discard()}), logging.Discard())
	rec := postJSON(t, h.Generate, "/api/generate-image", `{"width":"wide"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeBody(t, rec)["status"])
}
