package api

import (
	"context"
	"net/http"
	"time"
)

const sessionCookieName = "session_token"

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth resolves the session cookie to a user ID and stores it on
// the request context. Requests without a valid session get a 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			s.respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.redisStore.GetSession(r.Context(), cookie.Value)
		if err != nil {
			s.respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFrom returns the authenticated user ID placed by requireAuth.
func userIDFrom(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey).(int)
	return id
}

func (s *Server) sessionTTL() time.Duration {
	return time.Duration(s.config.SessionTTLHours) * time.Hour
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionTTL().Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
