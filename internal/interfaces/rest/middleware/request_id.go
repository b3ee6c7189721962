package middleware

import (
	"net/http"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/google/uuid"
)

const requestIDHeader = "request-id"

// RequestID attaches a correlation id to the request context. An inbound
// request-id header is honored so ids propagate across services; otherwise
// a new one is generated. The id is echoed back on the response and carried
// through to every provider call.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set(requestIDHeader, requestID)

			ctx := application.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
