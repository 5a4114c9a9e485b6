package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/eventpulse-api/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/eventpulse-api/internal/http/middleware"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *handlers.ChatHandler
	EventsHandler      *handlers.EventsHandler
	ImageHandler       *handlers.ImageHandler
	SMSHandler         *handlers.SMSHandler
	Static             http.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.Recover(cfg.Logger))
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.ChatHandler != nil {
			api.Post("/chat", cfg.ChatHandler.Chat)
		}
		if cfg.EventsHandler != nil {
			api.Get("/events", cfg.EventsHandler.List)
			api.Get("/hackathons", cfg.EventsHandler.Hackathons)
		}
		if cfg.ImageHandler != nil {
			api.Post("/generate-image", cfg.ImageHandler.Generate)
		}
		if cfg.SMSHandler != nil {
			api.Post("/send-sms", cfg.SMSHandler.Send)
			api.Post("/send-sms-bulk", cfg.SMSHandler.SendBulk)
			api.Get("/sms-status", cfg.SMSHandler.Status)
		}
		api.NotFound(handlers.NotFound)
		api.MethodNotAllowed(handlers.MethodNotAllowed)
	})

	// Everything else belongs to the frontend.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if cfg.Static == nil || isAPIPath(req.URL.Path) {
			handlers.NotFound(w, req)
			return
		}
		cfg.Static.ServeHTTP(w, req)
	})
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	return r
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
