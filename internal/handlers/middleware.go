// artcom-pay/internal/handlers/middleware.go
package handlers

import (
	"net/http"
	"time"

	"github.com/example/artcom-pay/pkg/logger"
	m "github.com/example/artcom-pay/pkg/metrics"
)

const serviceName = "payment-functions"

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		statusLabel := "FAILED"
		if rec.status >= 200 && rec.status < 400 {
			statusLabel = "SUCCESS"
		}
		m.ObserveDuration(serviceName, statusLabel, time.Since(start).Seconds())
	})
}

// requestIDMiddleware honours an inbound X-Request-ID or mints one, and
// logs the request once it completes.
func requestIDMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = log.GenerateRequestID()
			}
			w.Header().Set("X-Request-ID", id)
			ctx := log.WithRequestID(r.Context(), id)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))
			log.LogRequest(ctx, r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

// recoverMiddleware turns a panic into a 500 envelope.
func recoverMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Ctx(r.Context()).Errorw("handler panic", "panic", p, "path", r.URL.Path)
					writeJSON(w, http.StatusInternalServerError, ErrorOut{
						Error:     "internal_error",
						ErrorType: "network_error",
						Message:   "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
