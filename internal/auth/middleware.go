package auth

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

type contextKey struct{}

var userIDKey contextKey

// UserID returns the authenticated caller's id from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID is used by tests to simulate an authenticated request.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Middleware verifies the Bearer token on operations that declare the
// bearer security scheme and stores the caller's user id in the context.
func Middleware(api huma.API, manager *Manager) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresAuth(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			_ = huma.WriteErr(api, ctx, 401, "Missing or invalid Authorization header")
			return
		}

		userID, err := manager.VerifyToken(token)
		if err != nil {
			_ = huma.WriteErr(api, ctx, 401, "Invalid or expired token")
			return
		}

		next(huma.WithValue(ctx, userIDKey, userID))
	}
}

func requiresAuth(op *huma.Operation) bool {
	for _, scheme := range op.Security {
		if _, ok := scheme["bearer"]; ok {
			return true
		}
	}
	return false
}
