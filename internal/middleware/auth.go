package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// actorKey is the context key for the authenticated actor.
const actorKey contextKey = "actor"

// ActorFromContext extracts the authenticated actor from the context.
// The zero Actor is returned if authentication never ran.
func ActorFromContext(ctx context.Context) service.Actor {
	actor, _ := ctx.Value(actorKey).(service.Actor)
	return actor
}

// RequireAuth validates the bearer token on every request and stores the
// resulting actor in the request context. Requests without a valid token
// are rejected before reaching a handler.
func RequireAuth(jwtManager *auth.JWTManager, onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				onError(w, r, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				onError(w, r, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				onError(w, r, err)
				return
			}

			actor := service.Actor{
				Role:     claims.Role,
				MemberID: claims.MemberID,
				Phone:    claims.Phone,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}
