package transport

import (
	"context"
	"net/http"
)

type sessionKey struct{}

// SessionIDFromContext returns the MCP session ID from context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok
}

// SessionMiddleware stores the Mcp-Session-Id header in context so request logs can
// be correlated with MCP traffic logs.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := r.Header.Get("Mcp-Session-Id"); sessionID != "" {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID))
		}
		next.ServeHTTP(w, r)
	})
}
