package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/minliz/udacimarket-backend/api/responses"
	pkgauth "github.com/minliz/udacimarket-backend/pkg/auth"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/enums"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

// testPermissionHeader lets automated tests pick the grant a request should
// carry. Honored only when the test-mode flag is on.
const testPermissionHeader = "X-Test-Permission"

// tokenVerifier is the part of pkg/auth the middleware needs.
type tokenVerifier interface {
	Verify(ctx context.Context, token string) (*pkgauth.Claims, error)
}

// SessionTokenSource supplies the access token stored at login, for
// first-party page flows that carry a cookie instead of a header.
type SessionTokenSource interface {
	AccessToken(ctx context.Context, r *http.Request) (string, error)
}

// Auth resolves the request's bearer token, verifies it, and seeds the
// context with the claims. Token resolution order:
//
//  1. test-mode overrides (header-picked permission or the fixed token)
//  2. the Authorization header
//  3. the server-side session, when the bypass flag is enabled
func Auth(cfg *config.Config, verifier tokenVerifier, sessions SessionTokenSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.FeatureFlags.TestMode {
				if perm := r.Header.Get(testPermissionHeader); perm != "" {
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, pkgauth.NewClaims(perm))))
					return
				}
			}

			token, err := pkgauth.ExtractToken(r)
			if err != nil && cfg.FeatureFlags.SessionBypass && sessions != nil {
				token, err = sessions.AccessToken(ctx, r)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, pkgauth.ErrNotLoggedIn, pkgauth.ErrNotLoggedIn.Error()))
					return
				}
			}
			if err != nil && token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, err.Error()))
				return
			}

			if cfg.FeatureFlags.TestMode && cfg.FeatureFlags.TestToken != "" && token == cfg.FeatureFlags.TestToken {
				next.ServeHTTP(w, r.WithContext(WithClaims(ctx, allPermissionClaims())))
				return
			}

			claims, err := verifier.Verify(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, classifyAuthError(err))
				return
			}

			ctx = WithClaims(ctx, claims)
			if subject := claims.Subject; subject != "" {
				ctx = WithUserID(ctx, subject)
				if logg != nil {
					ctx = logg.WithUserID(ctx, subject)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on the claim set carrying the grant. A
// token without a permissions field at all is a malformed credential, not a
// denial.
func RequirePermission(logg *logger.Logger, required ...enums.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims := ClaimsFromContext(ctx)
			if claims == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}

			if err := claims.HasAnyPermission(required...); err != nil {
				switch {
				case errors.Is(err, pkgauth.ErrPermissionsMissing):
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
				default:
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, err.Error()))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func classifyAuthError(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, authMessage(err))
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, pkgauth.ErrNoKeyID), errors.Is(err, pkgauth.ErrKeyNotFound):
		return "unable to find the appropriate key"
	case errors.Is(err, pkgauth.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, pkgauth.ErrInvalidClaims):
		return "incorrect claims, please check the audience and issuer"
	default:
		return "unable to parse authentication token"
	}
}

func allPermissionClaims() *pkgauth.Claims {
	perms := make([]string, 0, len(enums.Permissions()))
	for _, p := range enums.Permissions() {
		perms = append(perms, p.String())
	}
	return pkgauth.NewClaims(perms...)
}
