package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/moviebase/mediavault/internal/server/auth"
)

type ctxKey string

const adminIDKey ctxKey = "adminID"

// withAuth validates the bearer token and stashes the acting admin's ID in
// the request context. Role checks happen per handler; a valid session is
// enough to read.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, r, http.StatusUnauthorized, "missing token")
			return
		}

		adminID, err := auth.GetAdminIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func adminIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}
