package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/wolfman30/eventpulse-api/internal/messaging"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

type smsService interface {
	Configured() bool
	Provider() string
	Reason() string
	SendOne(ctx context.Context, to, message string) (messaging.Result, error)
}

type bulkSender interface {
	SendBulk(ctx context.Context, to messaging.Recipients, message string) (messaging.Summary, error)
}

// SMSHandler serves the SMS routes.
type SMSHandler struct {
	sms    smsService
	bulk   bulkSender
	logger *logging.Logger
}

func NewSMSHandler(sms smsService, bulk bulkSender, logger *logging.Logger) *SMSHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SMSHandler{sms: sms, bulk: bulk, logger: logger}
}

type sendSMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type sendSMSResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	SID     string `json:"sid"`
	To      string `json:"to"`
}

type bulkSMSRequest struct {
	To      messaging.Recipients `json:"to"`
	Message string               `json:"message"`
}

type smsStatusResponse struct {
	Status        string `json:"status"`
	SMSConfigured bool   `json:"sms_configured"`
	Provider      string `json:"provider,omitempty"`
	Message       string `json:"message"`
}

// Send serves POST /api/send-sms.
func (h *SMSHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.sms.Configured() {
		h.writeNotConfigured(w)
		return
	}
	var req sendSMSRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	result, err := h.sms.SendOne(r.Context(), req.To, req.Message)
	if err != nil {
		h.writeSendError(w, err)
		return
	}
	if !result.Succeeded() {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Status:  statusError,
			Error:   "Failed to send SMS",
			Details: result.Error,
			To:      result.To,
		})
		return
	}
	writeJSON(w, http.StatusOK, sendSMSResponse{
		Status:  messaging.StatusSuccess,
		Message: "SMS sent successfully",
		SID:     result.MessageID,
		To:      result.To,
	})
}

// SendBulk serves POST /api/send-sms-bulk. Per-recipient failures are part of
// a 200 summary; only configuration and input problems fail the request.
func (h *SMSHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	if !h.sms.Configured() {
		h.writeNotConfigured(w)
		return
	}
	var req bulkSMSRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	summary, err := h.bulk.SendBulk(r.Context(), req.To, req.Message)
	if err != nil {
		h.writeSendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Status serves GET /api/sms-status.
func (h *SMSHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := smsStatusResponse{Status: messaging.StatusSuccess}
	if h.sms.Configured() {
		resp.SMSConfigured = true
		resp.Provider = h.sms.Provider()
		resp.Message = "SMS service is configured and ready"
	} else {
		resp.Message = "SMS service not configured: " + h.sms.Reason()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SMSHandler) writeNotConfigured(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "SMS service not configured", h.sms.Reason())
}

func (h *SMSHandler) writeSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, messaging.ErrNotConfigured):
		h.writeNotConfigured(w)
	case errors.Is(err, messaging.ErrInvalidRecipient):
		writeError(w, http.StatusBadRequest, "Phone number must be in international format (e.g., +1234567890)", "")
	case errors.Is(err, messaging.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Message is required", "")
	case errors.Is(err, messaging.ErrNoRecipients):
		writeError(w, http.StatusBadRequest, "At least one recipient is required", "")
	default:
		h.logger.Error("sms request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send SMS", err.Error())
	}
}
