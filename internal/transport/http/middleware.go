package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/auth"
)

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger hclog.Logger
	Admin  *auth.Admin
}

func NewMiddleware(logger hclog.Logger, admin *auth.Admin) *Middleware {
	return &Middleware{
		Logger: logger,
		Admin:  admin,
	}
}

// CORSMiddleware allows any origin. The storefront and the admin panel
// are served from a different origin than the API, and the API carries
// no cookies the browser would attach cross-site by default.
func (m *Middleware) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")

		// preflight gets an empty 200
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs the incoming requests and responses
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		m.Logger.Info("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		duration := time.Since(start)
		m.Logger.Info("Completed request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
			"duration", duration,
		)
	})
}

// RecoverMiddleware converts an unhandled panic into a generic 500
// without leaking the stack to the client.
func (m *Middleware) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.Logger.Error("Panic while handling request",
					"method", r.Method, "url", r.URL.Path, "panic", rec)
				respondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// AdminOnlyMiddleware guards the write surface behind the admin session.
func (m *Middleware) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Admin session required")
			return
		}
		if err := m.Admin.Verify(token); err != nil {
			respondError(w, http.StatusUnauthorized, "Admin session invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
