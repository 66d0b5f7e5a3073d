package auth

// Package auth contains domain-level types for the client session lifecycle.
// It is pure and free of transport/adapter concerns.

import (
	"strings"
	"time"
)

// Role tags recognized by the role router. The server issues opaque
// "ROLE_"-prefixed tags; matching is case-insensitive.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleLibrarian = "ROLE_LIBRARIAN"
	RoleStudent   = "ROLE_STUDENT"
	RoleUser      = "ROLE_USER"
)

// Destination is the landing area a resolved identity is routed to.
type Destination string

const (
	DestinationAdmin     Destination = "/admin"
	DestinationLibrarian Destination = "/librarian"
	DestinationHome      Destination = "/home"
	DestinationAnonymous Destination = "/"
)

// Identity represents the authenticated user as resolved from the login
// response and/or token claims. Roles is always treated as a set; an empty
// set is a distinct, reportable state, never a default grant.
type Identity struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the identity carries the given role tag,
// compared case-insensitively.
func (i Identity) HasRole(tag string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(r, tag) {
			return true
		}
	}
	return false
}

// Session is the client-side record persisted across process restarts.
// Token present means authenticated; Identity is derived from the token
// and/or the most recent server response.
type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// IsAuthenticated reports whether a bearer token is held. The token itself,
// not its decoded claims, is the authentication fact.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// ClaimSet holds the claims of interest extracted from a bearer token
// payload. A zero ExpiresAt means the token carries no expiry claim.
type ClaimSet struct {
	Subject   string
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

// Expired reports whether the claim set carries an expiry in the past.
// Expiry detection stays advisory on the client; an unauthorized response
// from the server remains the authoritative signal.
func (c ClaimSet) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// StringRoles validates an arbitrary decoded JSON value as a sequence of
// strings. Anything else, including a sequence with non-string elements,
// yields nil so callers fall back to an empty role set.
func StringRoles(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		roles = append(roles, s)
	}
	return roles
}
