package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kisaanchat/internal/common"
)

type contextKey string

const principalKey contextKey = "principal"

// apiPrincipal is the authenticated caller attached to the request
// context by the auth middleware.
type apiPrincipal struct {
	UserID string
	Name   string
	Role   string
}

func principalFrom(ctx context.Context) (*apiPrincipal, bool) {
	p, ok := ctx.Value(principalKey).(*apiPrincipal)
	return p, ok
}

// authMiddleware validates the bearer token and stores the principal on
// the request context. Raw tokens are never logged.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		claims, err := common.ValidToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, &apiPrincipal{
			UserID: claims.UserID,
			Name:   claims.Name,
			Role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly rejects non-admin principals.
func adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok || p.Role != "admin" {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
