package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/internal/auth"
	"github.com/minliz/udacimarket-backend/pkg/auth/session"
	"github.com/minliz/udacimarket-backend/pkg/config"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

// Login starts the authorization-code flow: establish a session, stash a
// random state in it, and bounce the browser to the identity provider.
func Login(authn *auth.Authenticator, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := randomState()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating login state"))
			return
		}

		sessionID := sessions.Establish(w)
		if err := sessions.SetState(r.Context(), sessionID, state); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing login state"))
			return
		}

		responses.Redirect(w, r, authn.LoginURL(state))
	}
}

// Callback completes the flow: check the state echo, trade the code for
// tokens, and persist the login in the session.
func Callback(authn *auth.Authenticator, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stored, err := sessions.State(ctx, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "login session not found"))
			return
		}
		if state := r.URL.Query().Get("state"); state == "" || state != stored {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "state mismatch"))
			return
		}

		login, err := authn.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "token exchange failed"))
			return
		}

		sessionID, ok := sessions.SessionID(r)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login session not found"))
			return
		}
		if err := sessions.SetLogin(ctx, sessionID, *login); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting login"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, login.Profile.UserID), "auth.login")
		}

		responses.Redirect(w, r, productsPath)
	}
}

// Logout clears the local session and sends the browser to the provider's
// logout endpoint so the upstream session dies too.
func Logout(cfg *config.Config, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := sessions.Clear(ctx, w, r); err != nil && logg != nil {
			logg.Warn(logg.WithFields(ctx, map[string]any{"error": err.Error()}), "auth.logout.clear_failed")
		}

		returnTo := "http://" + r.Host + "/login"
		if r.TLS != nil {
			returnTo = "https://" + r.Host + "/login"
		}
		responses.Redirect(w, r, cfg.Auth.LogoutURL(returnTo))
	}
}

// Me returns the profile stored at login, for the navbar.
func Me(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sessions.Profile(r.Context(), r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "not logged in"))
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
