package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwaldner/tetra/internal/logger"
)

type contextKey string

const requestIDKey contextKey = "request-id"

// RequestID tags every request with a short id, echoes it in X-Request-ID
// and logs the request line with timing.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Debug.Printf("🌐 %s %s [%s] %v", r.Method, r.URL.Path, id, time.Since(start).Round(time.Microsecond))
	})
}

// requestIDFrom pulls the id assigned by the RequestID middleware
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
