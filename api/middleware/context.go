package middleware

import (
	"context"

	pkgauth "github.com/minliz/udacimarket-backend/pkg/auth"
)

type contextKey string

const (
	ctxClaims contextKey = "claims"
	ctxUserID contextKey = "user_id"
)

// WithClaims injects the verified claim set into the context.
func WithClaims(ctx context.Context, claims *pkgauth.Claims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClaims, claims)
}

// ClaimsFromContext returns the verified claim set, or nil when the request
// never passed authentication.
func ClaimsFromContext(ctx context.Context) *pkgauth.Claims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*pkgauth.Claims); ok {
		return v
	}
	return nil
}

// WithUserID injects the subject identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}
