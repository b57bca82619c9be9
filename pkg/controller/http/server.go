package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
	eventToken    string
	eventUC       interfaces.EventUseCase
	popups        PopupFeed
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithEvents enables the portal event endpoint. A non-empty token is
// required as a bearer token on every request.
func WithEvents(uc interfaces.EventUseCase, token string) Option {
	return func(c *config) {
		c.eventUC = uc
		c.eventToken = token
	}
}

// WithPopups enables the popup list and stream endpoints
func WithPopups(feed PopupFeed) Option {
	return func(c *config) {
		c.popups = feed
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", healthHandler(cfg.popups))

	webhookHandler := NewWebhookHandler(cfg.webhookSecret, webhookUC)
	router.Post("/hooks/github", webhookHandler.Handle)

	if cfg.eventUC != nil {
		eventHandler := NewEventHandler(cfg.eventToken, cfg.eventUC)
		router.Post("/events/{name}", eventHandler.Handle)
	}

	if cfg.popups != nil {
		popupHandler := NewPopupHandler(cfg.popups)
		router.Get("/popups", popupHandler.List)
		router.Get("/popups/stream", popupHandler.Stream)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
