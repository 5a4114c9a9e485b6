package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

var tracer = otel.Tracer("eventpulse.internal.chat")

// ErrEmptyMessage is returned when the message is blank after trimming.
var ErrEmptyMessage = errors.New("chat: message is required")

const (
	// SourceRemote marks replies produced by the configured backend.
	SourceRemote = "remote"
	// SourceFallback marks replies produced by the local keyword table.
	SourceFallback = "fallback"

	// MaxTimeout bounds every remote backend call.
	MaxTimeout = 15 * time.Second
)

// Backend is a remote conversational model.
type Backend interface {
	Name() string
	Reply(ctx context.Context, message string) (string, error)
}

type replyObserver interface {
	ObserveChatReply(source string)
}

// Reply is the text returned to the user and where it came from.
type Reply struct {
	Text   string
	Source string
}

// ResponderConfig wires a Responder. Backend may be nil for local-only mode.
type ResponderConfig struct {
	Backend Backend
	Timeout time.Duration
	Logger  *logging.Logger
	Metrics replyObserver
}

// Responder answers chat messages, preferring the remote backend and degrading
// to the keyword table whenever the backend cannot produce a usable reply.
type Responder struct {
	backend Backend
	timeout time.Duration
	logger  *logging.Logger
	metrics replyObserver
}

func NewResponder(cfg ResponderConfig) *Responder {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Timeout <= 0 || cfg.Timeout > MaxTimeout {
		cfg.Timeout = MaxTimeout
	}
	return &Responder{
		backend: cfg.Backend,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// BackendName returns the configured backend name, or "local".
func (r *Responder) BackendName() string {
	if r.backend == nil {
		return "local"
	}
	return r.backend.Name()
}

// Respond never fails for a non-empty message.
func (r *Responder) Respond(ctx context.Context, message string) (Reply, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Reply{}, ErrEmptyMessage
	}

	if r.backend != nil {
		if text, ok := r.tryRemote(ctx, trimmed); ok {
			r.observe(SourceRemote)
			return Reply{Text: text, Source: SourceRemote}, nil
		}
	}

	r.observe(SourceFallback)
	return Reply{Text: Fallback(trimmed), Source: SourceFallback}, nil
}

func (r *Responder) tryRemote(ctx context.Context, message string) (text string, ok bool) {
	ctx, span := tracer.Start(ctx, "chat.remote")
	defer span.End()
	span.SetAttributes(attribute.String("eventpulse.chat.backend", r.backend.Name()))

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("chat backend panicked; using fallback", "backend", r.backend.Name(), "panic", rec)
			text, ok = "", false
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.backend.Reply(callCtx, message)
	if err != nil {
		span.RecordError(err)
		r.logger.Warn("chat backend failed; using fallback", "backend", r.backend.Name(), "error", err)
		return "", false
	}
	reply := strings.TrimSpace(raw)
	if reply == "" || strings.EqualFold(reply, message) {
		r.logger.Warn("chat backend returned unusable reply; using fallback", "backend", r.backend.Name())
		return "", false
	}
	return withContextPrefix(message, reply), true
}

func (r *Responder) observe(source string) {
	if r.metrics != nil {
		r.metrics.ObserveChatReply(source)
	}
}

var contextPrefixes = map[Category]string{
	CategoryGreeting: "Hello! ",
	CategoryHelp:     "Happy to help! ",
	CategoryCreator:  "I'm the EventPulse assistant. ",
}

// withContextPrefix adds a short opener for greeting, help and identity
// questions unless the reply already opens with the prefix's first word.
func withContextPrefix(message, reply string) string {
	prefix, ok := contextPrefixes[Classify(message)]
	if !ok || opensWith(reply, prefix) {
		return reply
	}
	return prefix + reply
}

func opensWith(reply, prefix string) bool {
	lead, _, _ := strings.Cut(strings.TrimSpace(prefix), " ")
	lead = strings.TrimRight(lead, "!.,")
	return strings.HasPrefix(strings.ToLower(reply), strings.ToLower(lead))
}
