package middleware

import (
	"context"
	"net/http"

	"github.com/minliz/udacimarket-backend/pkg/auth/session"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

// profileSource is the part of the session manager the login gate needs.
type profileSource interface {
	Profile(ctx context.Context, r *http.Request) (*session.Profile, error)
	Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// RequireLogin gates first-party page routes on an established session.
// A visitor without a stored profile is sent through the login flow; any
// stale cookie is cleared on the way out.
func RequireLogin(sessions profileSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if _, err := sessions.Profile(ctx, r); err != nil {
				if clearErr := sessions.Clear(ctx, w, r); clearErr != nil && logg != nil {
					logg.Warn(logg.WithField(ctx, "error", clearErr.Error()), "session.clear_failed")
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
