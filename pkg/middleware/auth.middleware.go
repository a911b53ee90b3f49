package middleware

import (
	"context"
	"log"
	"net/http"

	"portal-service/pkg/response"
)

type contextKey string

const (
	ContextUserID contextKey = "userID"
	ContextRole   contextKey = "role"
)

// GetUserID returns the authenticated user ID placed on the context by
// RequireIdentity.
func GetUserID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextUserID).(string)
	return val, ok
}

// GetRole returns the caller role placed on the context by RequireIdentity.
func GetRole(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextRole).(string)
	return val, ok
}

// RequireIdentity trusts the identity headers injected by the auth gateway
// in front of this service. Session verification itself lives in the auth
// services; requests arriving without an identity are rejected here.
func RequireIdentity(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				log.Println("[WARN] request without gateway identity rejected")
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				role = "user"
			}
			if len(allowed) > 0 && !allowed[role] {
				response.Error(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = context.WithValue(ctx, ContextRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
