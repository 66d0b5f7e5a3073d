package filestore

// Package filestore persists the session in the user's state directory, one
// file per record: the raw token and the serialized identity. This mirrors
// the two-key browser storage contract of the hosted client.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
	"github.com/ilibrary/ilibrary-go/internal/ports"
)

const (
	tokenFile    = "token"
	identityFile = "identity.json"

	dirPerm  = 0o700
	filePerm = 0o600
)

// Store is a file-backed session store.
type Store struct {
	dir    string
	claims ports.ClaimDecoder
}

// New creates a file-backed session store rooted at dir, creating the
// directory if needed. The claim decoder recovers identity from the stored
// token when the identity record is corrupted or missing.
func New(dir string, claims ports.ClaimDecoder) (*Store, error) {
	if dir == "" {
		return nil, errors.New("session store directory is required")
	}
	if claims == nil {
		return nil, errors.New("claim decoder is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create session store directory: %w", err)
	}
	return &Store{dir: dir, claims: claims}, nil
}

// Load returns the persisted session. A missing token means anonymous. An
// unreadable or unparsable identity record is recovered by decoding the
// stored token rather than surfacing an error or an empty identity.
func (s *Store) Load(_ context.Context) (domainauth.Session, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainauth.Session{}, nil
		}
		return domainauth.Session{}, fmt.Errorf("read token record: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return domainauth.Session{}, nil
	}

	sess := domainauth.Session{Token: token}
	data, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err == nil {
		var id domainauth.Identity
		if json.Unmarshal(data, &id) == nil {
			sess.Identity = id
			return sess, nil
		}
	}

	// Identity record absent or corrupted: re-derive from the token.
	if cs := s.claims.Decode(token); cs != nil {
		sess.Identity = domainauth.Identity{
			Username: cs.Subject,
			Email:    cs.Email,
			Roles:    cs.Roles,
		}
	}
	return sess, nil
}

// Save writes both records. The token is written last so a partial write
// never leaves a token without a recoverable identity source.
func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}

	data, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, identityFile), data, filePerm); err != nil {
		return fmt.Errorf("write identity record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(sess.Token), filePerm); err != nil {
		return fmt.Errorf("write token record: %w", err)
	}
	return nil
}

// Clear removes both records. Clearing twice is a no-op, not an error.
func (s *Store) Clear(_ context.Context) error {
	for _, name := range []string{tokenFile, identityFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s record: %w", name, err)
		}
	}
	return nil
}
