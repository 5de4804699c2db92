package web

import (
	"log/slog"
	"net/http"
)

// requireAuth gates a handler behind HTTP Basic credentials checked
// against the user table. On success the resolved user is attached to
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="gnote"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := s.store.VerifyCredentials(r.Context(), username, password)
		if err != nil {
			slog.Debug("basic auth rejected", "username", username)
			w.Header().Set("WWW-Authenticate", `Basic realm="gnote"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := WithUser(r.Context(), User{ID: user.ID, Name: user.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
