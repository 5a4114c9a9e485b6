package handlers

import (
	"net/http"

	"github.com/wolfman30/eventpulse-api/internal/events"
)

type eventLister interface {
	List() []events.Event
	Hackathons() []events.Event
}

// EventsHandler serves the read-only event catalog.
type EventsHandler struct {
	catalog eventLister
}

func NewEventsHandler(catalog eventLister) *EventsHandler {
	return &EventsHandler{catalog: catalog}
}

// List serves GET /api/events as a bare array.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List())
}

type hackathonsResponse struct {
	Status  string         `json:"status"`
	Count   int            `json:"count"`
	Data    []events.Event `json:"data"`
	Message string         `json:"message"`
}

// Hackathons serves GET /api/hackathons wrapped in a status envelope.
func (h *EventsHandler) Hackathons(w http.ResponseWriter, r *http.Request) {
	data := h.catalog.Hackathons()
	writeJSON(w, http.StatusOK, hackathonsResponse{
		Status:  "success",
		Count:   len(data),
		Data:    data,
		Message: "Hackathons retrieved successfully",
	})
}
