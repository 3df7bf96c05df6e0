package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/minliz/udacimarket-backend/pkg/auth/session"
	"github.com/minliz/udacimarket-backend/pkg/config"
)

// Authenticator drives the interactive login flow against the identity
// provider: authorization redirect, code exchange, and ID token
// verification.
type Authenticator struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
	audience string
}

// New discovers the provider endpoints and builds the OAuth2 config.
func New(ctx context.Context, cfg config.AuthConfig) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("discovering identity provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauth2Config := oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  cfg.CallbackURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile"},
	}

	return &Authenticator{
		provider: provider,
		verifier: verifier,
		oauth2:   oauth2Config,
		audience: cfg.Audience,
	}, nil
}

// LoginURL builds the authorization redirect. The audience parameter asks
// the provider for an API access token rather than an opaque one.
func (a *Authenticator) LoginURL(state string) string {
	return a.oauth2.AuthCodeURL(state, oauth2.SetAuthURLParam("audience", a.audience))
}

// Exchange trades an authorization code for tokens and verifies the ID
// token, returning everything the session needs to store.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*session.Login, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	token, err := a.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("token response missing id_token")
	}

	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verifying id token: %w", err)
	}

	var claims struct {
		Sub      string `json:"sub"`
		Name     string `json:"name"`
		Picture  string `json:"picture"`
		Nickname string `json:"nickname"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decoding id token claims: %w", err)
	}

	return &session.Login{
		Profile: session.Profile{
			UserID:   claims.Sub,
			Name:     claims.Name,
			Picture:  claims.Picture,
			Nickname: claims.Nickname,
		},
		IDToken:     rawIDToken,
		AccessToken: token.AccessToken,
	}, nil
}
