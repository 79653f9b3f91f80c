package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionIDKey is the context key for session IDs
const SessionIDKey contextKey = "session_id"

// sessionCookie names the cookie carrying the session id.
const sessionCookie = "nomad_session"

// SessionMiddleware assigns each browser a session id, carried in a cookie
// and exposed on the request context. Session state itself lives in the
// in-memory session store for the process lifetime.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID retrieves the session ID from context.
// Returns an empty string if no session ID is set.
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}
