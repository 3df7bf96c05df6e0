package auth

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minliz/udacimarket-backend/pkg/enums"
)

// Claims is the decoded payload of a verified bearer token.
type Claims struct {
	jwt.RegisteredClaims

	Permissions []string

	// hasPermissions distinguishes an absent permissions field from an
	// empty grant list; absence is a claims error, emptiness is a denial.
	hasPermissions bool
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	var raw struct {
		jwt.RegisteredClaims
		Permissions *[]string `json:"permissions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.RegisteredClaims = raw.RegisteredClaims
	if raw.Permissions != nil {
		c.hasPermissions = true
		c.Permissions = *raw.Permissions
	}
	return nil
}

func (c Claims) MarshalJSON() ([]byte, error) {
	type registered jwt.RegisteredClaims
	return json.Marshal(struct {
		registered
		Permissions []string `json:"permissions,omitempty"`
	}{registered(c.RegisteredClaims), c.Permissions})
}

// NewClaims builds a claim set carrying the given permissions. Used by the
// test-mode override and by tests.
func NewClaims(permissions ...string) *Claims {
	return &Claims{Permissions: permissions, hasPermissions: true}
}

// HasAnyPermission checks the claim set against the route's requirement.
// A single required permission needs exact membership; several required
// permissions need a non-empty intersection.
func (c *Claims) HasAnyPermission(required ...enums.Permission) error {
	if c == nil || !c.hasPermissions {
		return ErrPermissionsMissing
	}
	for _, req := range required {
		for _, granted := range c.Permissions {
			if granted == req.String() {
				return nil
			}
		}
	}
	return ErrPermissionDenied
}
