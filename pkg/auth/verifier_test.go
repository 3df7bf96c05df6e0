package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minliz/udacimarket-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKid      = "test-key-1"
	testAudience = "udacimarket"
	testIssuer   = "https://tenant.auth.example.com/"
)

type tokenFixture struct {
	key    *rsa.PrivateKey
	server *httptest.Server
	hits   atomic.Int64
}

func newTokenFixture(t *testing.T) *tokenFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &tokenFixture{key: key}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		doc := jwksDocument{Keys: []jwk{{
			Kty: "RSA",
			Kid: testKid,
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}}
		require.NoError(t, json.NewEncoder(w).Encode(doc))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *tokenFixture) verifier() *Verifier {
	return &Verifier{
		keys:     NewKeySource(f.server.URL, time.Minute),
		audience: testAudience,
		issuer:   testIssuer,
	}
}

func (f *tokenFixture) mint(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func validClaims(permissions ...string) jwt.MapClaims {
	claims := jwt.MapClaims{
		"aud": testAudience,
		"iss": testIssuer,
		"sub": "auth0|user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if permissions != nil {
		claims["permissions"] = permissions
	}
	return claims
}

func TestVerifyValidToken(t *testing.T) {
	f := newTokenFixture(t)
	token := f.mint(t, testKid, validClaims("get:aisle", "post:aisle"))

	claims, err := f.verifier().Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, []string{"get:aisle", "post:aisle"}, claims.Permissions)
	assert.NoError(t, claims.HasAnyPermission(enums.PermissionGetAisle))
}

func TestVerifyMissingKid(t *testing.T) {
	f := newTokenFixture(t)
	token := f.mint(t, "", validClaims("get:aisle"))

	_, err := f.verifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoKeyID)
}

func TestVerifyUnknownKid(t *testing.T) {
	f := newTokenFixture(t)
	token := f.mint(t, "rotated-away", validClaims("get:aisle"))

	_, err := f.verifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestVerifyExpiredToken(t *testing.T) {
	f := newTokenFixture(t)
	claims := validClaims("get:aisle")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := f.mint(t, testKid, claims)

	_, err := f.verifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongAudience(t *testing.T) {
	f := newTokenFixture(t)
	claims := validClaims("get:aisle")
	claims["aud"] = "someone-else"
	token := f.mint(t, testKid, claims)

	_, err := f.verifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestVerifyWrongIssuer(t *testing.T) {
	f := newTokenFixture(t)
	claims := validClaims("get:aisle")
	claims["iss"] = "https://evil.example.com/"
	token := f.mint(t, testKid, claims)

	_, err := f.verifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestVerifyGarbageToken(t *testing.T) {
	f := newTokenFixture(t)

	_, err := f.verifier().Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeySetIsCachedBetweenVerifications(t *testing.T) {
	f := newTokenFixture(t)
	v := f.verifier()
	token := f.mint(t, testKid, validClaims("get:aisle"))

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), token)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), f.hits.Load())
}

func TestExtractToken(t *testing.T) {
	newRequest := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/aisles", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	token, err := ExtractToken(newRequest("Bearer abc.def.ghi"))
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractToken(newRequest("bearer abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = ExtractToken(newRequest(""))
	assert.ErrorIs(t, err, ErrMissingAuthorization)

	_, err = ExtractToken(newRequest("abc"))
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ExtractToken(newRequest("Token abc"))
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ExtractToken(newRequest("Bearer a b"))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}
