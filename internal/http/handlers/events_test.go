package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/eventpulse-api/internal/events"
)

func TestEventsListIsStable(t *testing.T) {
	h := NewEventsHandler(events.NewCatalog())

	first := httptest.NewRecorder()
	h.List(first, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	second := httptest.NewRecorder()
	h.List(second, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())

	var list []events.Event
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &list))
	assert.Equal(t, events.NewCatalog().List(), list)
}

func TestHackathonsEnvelope(t *testing.T) {
	catalog := events.NewCatalogFrom([]events.Event{
		{ID: 7, Title: "Build Night", Location: "Pune", Date: "2025-03-01", Description: "Overnight build"},
	})
	h := NewEventsHandler(catalog)

	rec := httptest.NewRecorder()
	h.Hackathons(rec, httptest.NewRequest(http.MethodGet, "/api/hackathons", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"count": 1,
		"data": [{"id":7,"title":"Build Night","location":"Pune","date":"2025-03-01","description":"Overnight build"}],
		"message": "Hackathons retrieved successfully"
	}`, rec.Body.String())
}

func TestHackathonsEmptyCatalog(t *testing.T) {
	h := NewEventsHandler(events.NewCatalogFrom(nil))
	rec := httptest.NewRecorder()
	h.Hackathons(rec, httptest.NewRequest(http.MethodGet, "/api/hackathons", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["data"])
}
