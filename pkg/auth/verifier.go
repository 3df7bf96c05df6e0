package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minliz/udacimarket-backend/pkg/config"
)

// ExtractToken pulls the bearer token out of the Authorization header. The
// header must be exactly two space-separated parts with a case-insensitive
// "bearer" prefix.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthorization
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMalformedHeader
	}

	return parts[1], nil
}

// Verifier checks bearer tokens against the provider's rotating key set.
type Verifier struct {
	keys     *KeySource
	audience string
	issuer   string
}

// NewVerifier builds a verifier for the configured tenant.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		keys:     NewKeySource(cfg.JWKSURL(), cfg.JWKSCacheTTL),
		audience: cfg.Audience,
		issuer:   cfg.IssuerURL(),
	}
}

// Verify decodes and validates the token, returning its claims. Failures are
// one of the package sentinel errors, never a bare library error.
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, ErrNoKeyID
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return nil, classifyVerifyError(err)
	}

	return claims, nil
}

func classifyVerifyError(err error) error {
	switch {
	case errors.Is(err, ErrNoKeyID):
		return ErrNoKeyID
	case errors.Is(err, ErrKeyNotFound):
		return ErrKeyNotFound
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
