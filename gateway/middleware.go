package gateway

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kiranahq/lingocache/metrics"
)

type ctxKey int

const (
	ctxKeyClientID ctxKey = iota
	ctxKeyCorrelationID
)

// clientID returns the authenticated client identity from the context.
func clientID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyClientID).(string); ok {
		return id
	}
	return ""
}

// correlationID returns the request's correlation id from the context.
func correlationID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyCorrelationID).(string); ok {
		return id
	}
	return ""
}

// correlationMiddleware resolves the X-Correlation-Id header, minting one
// when absent, and echoes it on the response for tracing.
func (g *Gateway) correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Correlation-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Correlation-Id", id)
		ctx := context.WithValue(r.Context(), ctxKeyCorrelationID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs basic request info and duration.
func (g *Gateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)
		dur := time.Since(start)

		g.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", srw.status),
			zap.String("duration", dur.String()),
			zap.String("correlation_id", correlationID(r.Context())),
		)
		g.metrics.Emit(metrics.RequestDuration, dur.Seconds(), map[string]string{
			"path":   r.URL.Path,
			"status": fmt.Sprintf("%d", srw.status),
		})
	})
}

// authMiddleware resolves the API key to a client identity.
// Accepts X-API-Key or Authorization: Bearer/ApiKey.
func (g *Gateway) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := extractAPIKey(r)
		client, err := g.validator.Validate(key)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="lingocache"`)
			writeError(w, http.StatusUnauthorized, "missing or invalid API key")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyClientID, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware returns 429 with a Retry-After hint when a client
// exceeds its window budget.
func (g *Gateway) rateLimitMiddleware(next http.Handler) http.Handler {
	if g.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientID(r.Context())
		ok, retryAfter := g.limiter.Allow(client)
		if !ok {
			g.metrics.Emit(metrics.RateLimited, 1, map[string]string{"client": client})
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractAPIKey pulls the API key from X-API-Key or the Authorization
// header.
func extractAPIKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	lower := strings.ToLower(authz)
	for _, prefix := range []string{"bearer ", "apikey "} {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(authz[len(prefix):])
		}
	}
	return ""
}

// statusResponseWriter captures the response status for logging.
type statusResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
