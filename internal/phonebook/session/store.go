// Package session owns the client's authentication state: the bearer
// token, the current user's profile and the per-session 2FA-verified
// flag. It is the single writer of that state; the navigation guard and
// the CLI screens only read it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/storage"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/idx"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/tokenx"
)

// API is the slice of the phonebook API the store needs.
type API interface {
	Login(ctx context.Context, email, password string) (*apiclient.TokenResponse, error)
	Register(ctx context.Context, email, password string) error
	Me(ctx context.Context) (*apiclient.Profile, error)
}

// Store is the source of truth for "who is logged in and with what
// credential". Safe for concurrent use.
type Store struct {
	api       API
	durable   storage.Durable
	ephemeral storage.Ephemeral
	logger    *slog.Logger

	// initOnce is the shared in-flight initialization: overlapping
	// callers block on one hydrate instead of racing on a flag that only
	// flips at the end.
	initOnce sync.Once

	mu          sync.RWMutex
	token       string
	user        *apiclient.Profile
	initialized bool
}

// New creates a Store. The store starts uninitialized; the first call to
// Initialize hydrates it from durable storage.
func New(api API, durable storage.Durable, ephemeral storage.Ephemeral, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		api:       api,
		durable:   durable,
		ephemeral: ephemeral,
		logger:    logger.With("sid", idx.New().String()),
	}
}

// Initialize hydrates the session from durable storage exactly once per
// process. Concurrent callers share the same in-flight attempt, so at
// most one profile fetch happens. A persisted token that is expired or
// malformed resets the session to logged out; that is not an error.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.hydrate(ctx) })
}

func (s *Store) hydrate(ctx context.Context) {
	defer func() {
		// Last step so concurrent waiters observe a settled session.
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
	}()

	token, err := s.durable.Get(storage.TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read persisted token", "error", err)
		}
		return
	}

	claims, err := tokenx.Decode(token)
	if err != nil || claims.ValidateExpiry(time.Now().UTC()) != nil {
		s.logger.Debug("persisted token unusable, resetting session")
		s.Logout()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.FetchUser(ctx)
}

// FetchUser refreshes the profile from the API. Failures are absorbed:
// a transient fetch problem must not tear the session down, so prior
// state is kept and the error is only logged.
func (s *Store) FetchUser(ctx context.Context) {
	profile, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch user", "error", err)
		return
	}

	s.mu.Lock()
	s.user = profile
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it and loads the
// profile. API rejections propagate verbatim so the caller can render
// them; session state is untouched on failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	tokenResp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = tokenResp.AccessToken
	s.user = nil
	s.mu.Unlock()

	// The verified flag belongs to the previous token, never carry it
	// across a credential change.
	s.ephemeral.Delete(storage.TwoFactorVerifiedKey)

	if err := s.durable.Set(storage.TokenKey, tokenResp.AccessToken); err != nil {
		// The in-memory session still works; only persistence across
		// restarts is lost.
		s.logger.Warn("failed to persist token", "error", err)
	}

	s.FetchUser(ctx)

	s.logger.Info("logged in", "email", email)
	return nil
}

// Register creates an account. It does not establish a session; the API
// requires a subsequent login. Errors propagate verbatim.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.api.Register(ctx, email, password)
}

// Logout clears the token and profile from memory and durable storage
// and drops the 2FA-verified flag. It has no failure mode.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.durable.Delete(storage.TokenKey); err != nil {
		s.logger.Warn("failed to clear persisted token", "error", err)
	}
	s.ephemeral.Delete(storage.TwoFactorVerifiedKey)

	s.logger.Info("logged out")
}

// IsAuthenticated reports whether a token is held. It is computed from
// the token itself, never cached.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile snapshot, or nil when none has been
// fetched.
func (s *Store) User() *apiclient.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Initialized reports whether Initialize has completed. It never reverts
// to false.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// TwoFactorVerified reports whether this session has passed a 2FA
// challenge. The flag is meaningless without a token.
func (s *Store) TwoFactorVerified() bool {
	if !s.IsAuthenticated() {
		return false
	}

	_, err := s.ephemeral.Get(storage.TwoFactorVerifiedKey)
	return err == nil
}

// MarkTwoFactorVerified records that the current session answered its
// 2FA challenge.
func (s *Store) MarkTwoFactorVerified() {
	s.ephemeral.Set(storage.TwoFactorVerifiedKey, "true")
}
