package rest

import (
	"net/http"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HTTPObserver records per-route request metrics.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// LoggerMiddleware puts a trace-scoped logger into the request context and
// logs the start and the end of every request.
func LoggerMiddleware(logger port.LoggerPort, observer HTTPObserver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = uuid.New().String()
			}

			// passed down to use cases and repositories
			coreLogger := logger.WithFields(port.Fields{
				"trace_id": traceID,
			})

			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := r.Context()
			ctx = contextkeys.ContextWithLogger(ctx, coreLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set("X-Trace-ID", traceID)
			startTime := time.Now()

			httpLogger.Info("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(startTime)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			httpLogger.Info("Request finished", port.Fields{
				"status_code":   status,
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   elapsed.Milliseconds(),
			})

			if observer != nil {
				observer.ObserveHTTP(r.Method, routePattern(r), status, elapsed)
			}
		})
	}
}

// routePattern keeps metric labels bounded: unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
