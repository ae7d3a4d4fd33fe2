package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Divyeshhhh/steamy-sips/pkg/logger"
)

// ClientIDHeader identifies the shopper making the request, when known.
const ClientIDHeader = "X-Client-ID"

// RequestLogger stores a logger enriched with correlation_id, client_id,
// trace_id and span_id in the request context. Mount it after
// RequestLogging and Tracing so those values exist.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if clientID := r.Header.Get(ClientIDHeader); clientID != "" {
				ctx = logger.WithClientID(ctx, clientID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
