package messaging

import (
	"context"
	"errors"
	"strings"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

// Result status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OutcomeKind tells callers what happened to one recipient.
type OutcomeKind string

const (
	OutcomeDelivered        OutcomeKind = "delivered"
	OutcomeDeliveryFailed   OutcomeKind = "delivery_failed"
	OutcomeInvalidRecipient OutcomeKind = "invalid_recipient"
)

// Result is the per-recipient outcome of a send.
type Result struct {
	To        string      `json:"to"`
	Status    string      `json:"status"`
	MessageID string      `json:"sid,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
	Kind      OutcomeKind `json:"-"`
}

// Succeeded reports whether the provider accepted the message.
func (r Result) Succeeded() bool {
	return r.Kind == OutcomeDelivered
}

type smsObserver interface {
	ObserveSMS(provider, status string)
}

// Service is the SMS adapter. A Service without a sender is valid and fails
// every send with ErrNotConfigured.
type Service struct {
	sender   Sender
	provider string
	reason   string
	logger   *logging.Logger
	metrics  smsObserver
}

// NewService wraps sender. provider and reason come from BuildSender.
func NewService(sender Sender, provider, reason string, logger *logging.Logger, metrics smsObserver) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if sender != nil && provider == "" {
		provider = sender.Name()
	}
	if sender == nil && reason == "" {
		reason = "no SMS providers configured"
	}
	return &Service{
		sender:   sender,
		provider: provider,
		reason:   reason,
		logger:   logger,
		metrics:  metrics,
	}
}

// Configured reports whether a provider is available.
func (s *Service) Configured() bool {
	return s != nil && s.sender != nil
}

// Provider returns the active provider name, empty when unconfigured.
func (s *Service) Provider() string {
	if !s.Configured() {
		return ""
	}
	return s.provider
}

// Reason explains why the service is unconfigured.
func (s *Service) Reason() string {
	if s == nil {
		return "no SMS providers configured"
	}
	return s.reason
}

// SendOne validates and sends a single SMS. The returned error is reserved for
// configuration and input problems; a provider failure comes back as a Result
// with StatusError.
func (s *Service) SendOne(ctx context.Context, to, message string) (Result, error) {
	if !s.Configured() {
		return Result{}, ErrNotConfigured
	}
	trimmed := strings.TrimSpace(to)
	if !strings.HasPrefix(trimmed, "+") {
		return Result{}, ErrInvalidRecipient
	}
	normalized, err := NormalizeRecipient(trimmed)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(message) == "" {
		return Result{}, ErrEmptyMessage
	}
	return s.deliver(ctx, normalized, message), nil
}

func (s *Service) deliver(ctx context.Context, to, message string) Result {
	id, err := s.sender.Send(ctx, to, message)
	if err != nil {
		s.logger.Error("sms send failed", "provider", s.provider, "to", to, "error", err)
		s.observe("failed")
		return Result{
			To:        to,
			Status:    StatusError,
			Error:     providerDetail(err),
			ErrorType: "delivery",
			Kind:      OutcomeDeliveryFailed,
		}
	}
	s.observe("sent")
	return Result{
		To:        to,
		Status:    StatusSuccess,
		MessageID: id,
		Kind:      OutcomeDelivered,
	}
}

func (s *Service) observe(status string) {
	if s.metrics != nil {
		s.metrics.ObserveSMS(s.provider, status)
	}
}

// providerDetail returns the provider's message verbatim when available.
func providerDetail(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Detail
	}
	return err.Error()
}
