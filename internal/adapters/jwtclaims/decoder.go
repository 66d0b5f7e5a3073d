package jwtclaims

// Package jwtclaims decodes bearer token payloads without signature
// verification. The server is the only party that validates tokens; the
// client reads claims purely to derive a display identity and role set.

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
)

// Decoder extracts claims from the payload segment of a JWT. Any failure at
// any step (malformed structure, invalid base64url, invalid JSON) yields nil
// claims; a fault never crosses the component boundary.
type Decoder struct{}

// NewDecoder constructs a Decoder.
func NewDecoder() Decoder { return Decoder{} }

// Decode returns the claims of interest from token, or nil when the token is
// not decodable. Roles must be a sequence of strings, otherwise the role set
// is empty.
func (Decoder) Decode(token string) *domainauth.ClaimSet {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	cs := &domainauth.ClaimSet{}
	if sub, ok := claims["sub"].(string); ok {
		cs.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		cs.Email = email
	}
	cs.Roles = domainauth.StringRoles(claims["roles"])
	if exp, ok := claims["exp"].(float64); ok && exp > 0 {
		cs.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return cs
}
