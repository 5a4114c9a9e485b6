package imagegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

var tracer = otel.Tracer("eventpulse.internal.imagegen")

const (
	DefaultBaseURL = "https://pollinations.ai/p"
	DefaultModel   = "flux"
	DefaultTimeout = 90 * time.Second

	// Some providers reject Go's default client identifier.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	fallbackContentType = "image/jpeg"
	maxImageBytes       = 20 << 20
)

// UpstreamError reports a failed call to the image provider. StatusCode is 0
// for transport failures and timeouts.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return "imagegen: upstream request failed: " + e.Detail
	}
	return fmt.Sprintf("imagegen: upstream returned status %d: %s", e.StatusCode, e.Detail)
}

type imageObserver interface {
	ObserveImage(status string, seconds float64)
}

// Config controls how the image client reaches the provider.
type Config struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *logging.Logger
	Metrics    imageObserver
}

// Image is a generated image held in memory for the lifetime of one request.
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Client proxies prompts to a text-to-image provider.
type Client struct {
	baseURL   string
	model     string
	userAgent string
	http      *http.Client
	logger    *logging.Logger
	metrics   imageObserver
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Client{
		baseURL:   baseURL,
		model:     model,
		userAgent: userAgent,
		http:      httpClient,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// BuildURL returns the provider URL for a normalized request.
func (c *Client) BuildURL(req Request) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(req.Width))
	q.Set("height", strconv.Itoa(req.Height))
	q.Set("seed", strconv.Itoa(req.SeedValue()))
	q.Set("model", c.model)
	return c.baseURL + "/" + url.PathEscape(req.Prompt) + "?" + q.Encode()
}

// Generate fetches one image. The body is read completely before returning so
// callers never stream a partial image.
func (c *Client) Generate(ctx context.Context, req Request) (*Image, error) {
	req = req.Normalize()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "imagegen.generate", trace.WithAttributes(
		attribute.Int("eventpulse.image.width", req.Width),
		attribute.Int("eventpulse.image.height", req.Height),
		attribute.Int("eventpulse.image.seed", req.SeedValue()),
	))
	defer span.End()

	img, err := c.fetch(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		c.logger.Error("image generation failed", "error", err, "width", req.Width, "height", req.Height)
	} else {
		c.logger.Info("image generated", "bytes", len(img.Data), "content_type", img.ContentType)
	}
	if c.metrics != nil {
		c.metrics.ObserveImage(status, time.Since(start).Seconds())
	}
	return img, err
}

func (c *Client) fetch(ctx context.Context, req Request) (*Image, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("imagegen: request build failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "image/*")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = resp.Status
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: detail}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, &UpstreamError{Detail: "reading image body: " + err.Error()}
	}
	if len(data) > maxImageBytes {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: "image exceeds size limit"}
	}
	if len(data) == 0 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: "empty image body"}
	}

	contentType := imageContentType(resp.Header.Get("Content-Type"))
	return &Image{
		Data:        data,
		ContentType: contentType,
		Filename:    newFilename(contentType),
	}, nil
}

// IsUpstream reports whether err came from the provider call.
func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

func imageContentType(header string) string {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return fallbackContentType
	}
	return mediaType
}

func newFilename(contentType string) string {
	ext := "jpg"
	switch contentType {
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	case "image/gif":
		ext = "gif"
	}
	return "generated_" + strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext
}
