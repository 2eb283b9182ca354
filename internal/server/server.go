// Package server assembles the HTTP surface: the Mini-App API, the Telegram
// webhook, operator routes and the health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/handler"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// Options are the listener and security settings
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string
	Version        string
	Environment    string
	RateLimit      int
}

// Deps are the components the routes call into
type Deps struct {
	Verifier  handler.IdentityVerifier
	Game      handler.Game
	Catalog   *farm.Catalog
	Invoices  handler.InvoiceCreator
	Unsettled handler.UnsettledLister
	Store     handler.Pinger
	Webhook   http.Handler
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs outermost first.
func NewRouter(opts Options, deps Deps) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector(opts.RateLimit)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderInitData},
		MaxAge:         CORSMaxAgeSeconds,
	}))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(opts.Version, opts.Environment))
	r.Handle("/metrics", promhttp.Handler())

	if deps.Webhook != nil {
		r.Method(http.MethodPost, RouteWebhook, deps.Webhook)
	}

	r.Route("/api/v1", func(r chi.Router) {
		stateHandler := handler.NewStateHandler(deps.Verifier, deps.Game)
		r.Post("/state", stateHandler.HandleState)
		r.Get("/catalog", handler.HandleGetCatalog(deps.Catalog))

		if deps.Invoices != nil {
			invoiceHandler := handler.NewInvoiceHandler(deps.Verifier, deps.Catalog, deps.Invoices)
			r.Post("/invoice", invoiceHandler.HandleCreateInvoice)
		}

		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(opts.APIKey, opts.TrustedProxies, detector))
			r.Get("/payments/unsettled", handler.HandleListUnsettled(deps.Unsettled))
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuiet(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out[k] = v
		for _, secret := range RedactedHeaders {
			if strings.EqualFold(k, secret) {
				out[k] = []string{RedactedValue}
				break
			}
		}
	}
	return out
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuiet(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop. A clean shutdown returns nil.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
