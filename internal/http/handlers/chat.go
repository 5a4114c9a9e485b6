package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/wolfman30/eventpulse-api/internal/chat"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

type chatResponder interface {
	Respond(ctx context.Context, message string) (chat.Reply, error)
}

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	responder chatResponder
	logger    *logging.Logger
}

func NewChatHandler(responder chatResponder, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{responder: responder, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// chat errors keep the bare {error} body the frontend already reads.
type chatError struct {
	Error string `json:"error"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeJSON(w, http.StatusBadRequest, chatError{Error: "invalid JSON body"})
		return
	}

	reply, err := h.responder.Respond(r.Context(), req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		writeJSON(w, http.StatusBadRequest, chatError{Error: "No message provided"})
		return
	}
	if err != nil {
		h.logger.Error("chat reply failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, chatError{Error: "Internal server error"})
		return
	}

	h.logger.Debug("chat reply", "source", reply.Source)
	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Text})
}
