package redisstore

// Package redisstore provides a Redis-backed session store for shared
// terminal (kiosk) deployments where the session must survive across hosts.
// It keeps the same two-record contract as the file store.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
	"github.com/ilibrary/ilibrary-go/internal/ports"
)

const defaultPrefix = "ilibrary:session:"

// Store is a Redis-based session store. When the stored token carries an
// expiry claim, both records get a matching TTL so stale sessions vanish on
// their own.
type Store struct {
	client redis.UniversalClient
	claims ports.ClaimDecoder
	prefix string
}

// New creates a Redis session store with the default key prefix.
func New(client redis.UniversalClient, claims ports.ClaimDecoder) (*Store, error) {
	return NewWithPrefix(client, claims, defaultPrefix)
}

// NewWithPrefix creates a Redis session store with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, claims ports.ClaimDecoder, prefix string) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if claims == nil {
		return nil, errors.New("claim decoder is required")
	}
	return &Store{client: client, claims: claims, prefix: prefix}, nil
}

func (s *Store) tokenKey() string    { return s.prefix + "token" }
func (s *Store) identityKey() string { return s.prefix + "identity" }

// Load returns the persisted session, recovering identity from the token
// when the identity record is missing or unparsable.
func (s *Store) Load(ctx context.Context) (domainauth.Session, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, nil
		}
		return domainauth.Session{}, fmt.Errorf("redis get token: %w", err)
	}
	if token == "" {
		return domainauth.Session{}, nil
	}

	sess := domainauth.Session{Token: token}
	data, err := s.client.Get(ctx, s.identityKey()).Result()
	if err == nil {
		var id domainauth.Identity
		if json.Unmarshal([]byte(data), &id) == nil {
			sess.Identity = id
			return sess, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return domainauth.Session{}, fmt.Errorf("redis get identity: %w", err)
	}

	if cs := s.claims.Decode(token); cs != nil {
		sess.Identity = domainauth.Identity{
			Username: cs.Subject,
			Email:    cs.Email,
			Roles:    cs.Roles,
		}
	}
	return sess, nil
}

// Save persists both records, applying the token's expiry claim as TTL when
// one is present and still in the future.
func (s *Store) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}

	data, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	var ttl time.Duration
	if cs := s.claims.Decode(sess.Token); cs != nil && !cs.ExpiresAt.IsZero() {
		if remaining := time.Until(cs.ExpiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	if err := s.client.Set(ctx, s.identityKey(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set identity: %w", err)
	}
	if err := s.client.Set(ctx, s.tokenKey(), sess.Token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Clear removes both records unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.identityKey()).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
