package auth

import "errors"

// Verification failures are sentinel errors so the middleware can map each
// one to its own response code.
var (
	// ErrMissingAuthorization means no Authorization header was present.
	ErrMissingAuthorization = errors.New("authorization expected in header")
	// ErrMalformedHeader means the header was not "bearer <token>".
	ErrMalformedHeader = errors.New("authorization requires a bearer token")
	// ErrNotLoggedIn means a session-bypass request had no stored access token.
	ErrNotLoggedIn = errors.New("user is not logged in")

	// ErrNoKeyID means the token header carries no kid.
	ErrNoKeyID = errors.New("token header missing key id")
	// ErrKeyNotFound means the key set has no key matching the token's kid.
	ErrKeyNotFound = errors.New("no matching signing key")
	// ErrTokenExpired means the signature was valid but the token expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidClaims means the audience or issuer did not match.
	ErrInvalidClaims = errors.New("incorrect audience or issuer claims")
	// ErrInvalidToken covers every other decode or signature failure.
	ErrInvalidToken = errors.New("unable to parse authentication token")

	// ErrPermissionsMissing means the claim set has no permissions field.
	ErrPermissionsMissing = errors.New("permissions not included in token")
	// ErrPermissionDenied means no required permission was granted.
	ErrPermissionDenied = errors.New("permission not found")
)
