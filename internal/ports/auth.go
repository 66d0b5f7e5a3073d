package ports

// Package ports defines interfaces (hexagonal ports) for session-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
)

// SessionStore persists the session across process restarts. It is the single
// source of truth for "am I logged in"; the auth service is its only writer.
type SessionStore interface {
	// Load returns the persisted session, or a zero session when none is
	// stored. A present token with a corrupted identity record must be
	// recovered by decoding the token, never surfaced as an empty identity.
	Load(ctx context.Context) (domainauth.Session, error)

	// Save persists the session atomically (token and identity together).
	Save(ctx context.Context, sess domainauth.Session) error

	// Clear removes both stored records. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// ClaimDecoder extracts identity claims from a bearer token payload without
// contacting the server. A failed decode yields nil, never an error: the
// token itself, not its claims, is the authentication fact.
type ClaimDecoder interface {
	Decode(token string) *domainauth.ClaimSet
}

// TokenSource exposes the current bearer token to API-consuming services.
// Readers only; session mutation stays with the auth service.
type TokenSource interface {
	// Token returns the current bearer token, or "" when anonymous.
	Token() string
}
