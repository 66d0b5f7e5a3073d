package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
	"github.com/ilibrary/ilibrary-go/internal/ports"
)

// AuthAPI is the slice of the backend client the auth service consumes.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.Response, error)
	Signup(ctx context.Context, payload map[string]any) (*api.Response, error)
}

// AuthServiceOptions configures an AuthService.
type AuthServiceOptions struct {
	API      AuthAPI
	Sessions ports.SessionStore
	Claims   ports.ClaimDecoder
	Logger   *slog.Logger
}

// AuthService owns the session lifecycle. It is the only writer of the
// session store; everything else reads the current session through it.
// It implements ports.TokenSource for the API client.
type AuthService struct {
	api      AuthAPI
	sessions ports.SessionStore
	claims   ports.ClaimDecoder
	logger   *slog.Logger

	mu      sync.RWMutex
	current domainauth.Session
}

// NewAuthService builds an AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:      opts.API,
		sessions: opts.Sessions,
		claims:   opts.Claims,
		logger:   logger,
	}
}

// SetAPI installs the backend client after construction. The client needs the
// auth service as its token source, so the two are wired in two steps.
func (s *AuthService) SetAPI(api AuthAPI) {
	s.api = api
}

// Restore loads a previously persisted session into memory. A store with no
// session leaves the service anonymous and returns nil.
func (s *AuthService) Restore(ctx context.Context) error {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "restore session")
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	if sess.IsAuthenticated() {
		s.logger.Debug("session restored", slog.String("username", sess.Identity.Username))
	}
	return nil
}

// Signup registers a new account. It never touches session state; a fresh
// account still logs in explicitly.
func (s *AuthService) Signup(ctx context.Context, payload map[string]any) error {
	resp, err := s.api.Signup(ctx, payload)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return statusError(resp, "signup failed (%d)")
	}
	return nil
}

// Login authenticates with the backend and establishes the session. On any
// failure the previous session, if one exists, is left untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) (domainauth.Session, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return domainauth.Session{}, err
	}
	if !resp.OK() {
		return domainauth.Session{}, statusError(resp, "login failed (%d)")
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return domainauth.Session{}, apperrors.BadResponse("no token received from server")
	}
	token, _ := body["token"].(string)
	if token == "" {
		return domainauth.Session{}, apperrors.BadResponse("no token received from server")
	}

	sess := s.buildSession(token, body, username)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist session")
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.logger.Info("logged in",
		slog.String("username", sess.Identity.Username),
		slog.Int("roles", len(sess.Identity.Roles)),
	)
	return sess, nil
}

// buildSession derives the identity for a fresh login. Roles come from the
// login response when present, else from the token claims, else stay empty.
// The username prefers the token subject over the typed-in name.
func (s *AuthService) buildSession(token string, body map[string]any, typedUsername string) domainauth.Session {
	identity := domainauth.Identity{Username: typedUsername}

	var claims *domainauth.ClaimSet
	if s.claims != nil {
		claims = s.claims.Decode(token)
	}
	if claims != nil {
		if claims.Subject != "" {
			identity.Username = claims.Subject
		}
		identity.Email = claims.Email
		identity.Roles = claims.Roles
	}

	if roles := domainauth.StringRoles(body["roles"]); len(roles) > 0 {
		identity.Roles = roles
	}
	if identity.Roles == nil {
		identity.Roles = []string{}
	}

	return domainauth.Session{Token: token, Identity: identity}
}

// Logout clears the session from the store and from memory. Logging out while
// anonymous is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear session")
	}
	s.mu.Lock()
	s.current = domainauth.Session{}
	s.mu.Unlock()
	s.logger.Info("logged out")
	return nil
}

// Current returns the in-memory session.
func (s *AuthService) Current() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements ports.TokenSource.
func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}
