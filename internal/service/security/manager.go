package security

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tiretrack/internal/domain"
	"tiretrack/internal/metrics"
)

// State is the session manager's authentication state.
type State int

const (
	// StateInitializing is the startup state, before Restore has completed.
	// No protected-vs-public decision may be made while in it.
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Sentinel errors surfaced by the session manager.
var (
	// ErrLoginInFlight means a login attempt is already being resolved.
	// Overlapping attempts are rejected rather than raced.
	ErrLoginInFlight = errors.New("a login attempt is already in flight")
	// ErrAlreadyAuthenticated means Login was called while a session is
	// active. Logout first.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// Manager is the single source of truth for "who is logged in". It owns the
// current session exclusively; the store is a durable mirror written on login
// and logout and read once during Restore.
type Manager struct {
	validator CredentialValidator
	store     SessionStore
	logger    *slog.Logger
	recorder  metrics.Recorder
	ttl       time.Duration
	now       func() time.Time

	mu            sync.Mutex
	state         State
	current       *domain.Session
	loginInFlight bool
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithMetrics wires a metrics recorder into the manager.
func WithMetrics(rec metrics.Recorder) ManagerOption {
	return func(m *Manager) { m.recorder = rec }
}

// WithClock overrides the manager's time source.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager in the Initializing state. ttl bounds session
// lifetime; zero means sessions never expire. Restore must be called once
// before any route guard consults the manager.
func NewManager(validator CredentialValidator, store SessionStore, ttl time.Duration, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		validator: validator,
		store:     store,
		logger:    logger.With("component", "session_manager"),
		recorder:  metrics.Noop{},
		ttl:       ttl,
		now:       time.Now,
		state:     StateInitializing,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the persisted session, if any, and resolves the manager out
// of the Initializing state. A missing session resolves to Unauthenticated.
// A corrupt or expired one is cleared from the store and likewise resolves to
// Unauthenticated — never to Authenticated with an invalid identity. Restore
// itself never fails; store problems are logged and swallowed.
func (m *Manager) Restore(ctx context.Context) {
	session, err := m.store.Load(ctx)
	switch {
	case err == nil:
		if session.Expired(m.now()) {
			m.clearStore(ctx)
			m.recorder.RecordSessionRestore("expired")
			m.logger.Info("persisted session expired, starting logged out")
			m.resolve(StateUnauthenticated, nil)
			return
		}
		m.recorder.RecordSessionRestore("restored")
		m.logger.Info("session restored", "user_id", session.Identity.ID)
		m.resolve(StateAuthenticated, session)

	case errors.Is(err, domain.ErrNoSession):
		m.recorder.RecordSessionRestore("none")
		m.resolve(StateUnauthenticated, nil)

	case errors.Is(err, domain.ErrCorruptSession):
		m.clearStore(ctx)
		m.recorder.RecordSessionRestore("corrupt")
		m.logger.Warn("persisted session is corrupt, cleared", "error", err)
		m.resolve(StateUnauthenticated, nil)

	default:
		// Store unreachable. Start logged out rather than block startup.
		m.recorder.RecordSessionRestore("error")
		m.logger.Error("session store unreadable", "error", err)
		m.resolve(StateUnauthenticated, nil)
	}
}

// Login validates credentials and, on success, publishes and persists a new
// session. On failure no state changes and nothing is written. A second Login
// while one is in flight fails with ErrLoginInFlight; Login while already
// authenticated fails with ErrAlreadyAuthenticated.
func (m *Manager) Login(ctx context.Context, email, secret string) error {
	m.mu.Lock()
	if m.state == StateAuthenticated {
		m.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	if m.loginInFlight {
		m.mu.Unlock()
		return ErrLoginInFlight
	}
	m.loginInFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loginInFlight = false
		m.mu.Unlock()
	}()

	ident, bearer, err := m.validator.Validate(ctx, email, secret)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			m.recorder.RecordLoginFailure("invalid_credentials")
		case errors.Is(err, ErrValidatorUnreachable):
			m.recorder.RecordLoginFailure("unreachable")
		default:
			m.recorder.RecordLoginFailure("unknown")
		}
		m.logger.Info("login rejected", "email", email, "error", err)
		return err
	}

	now := m.now().UTC()
	session := &domain.Session{
		Identity:  *ident,
		Token:     bearer,
		CreatedAt: now,
	}
	if m.ttl > 0 {
		session.ExpiresAt = now.Add(m.ttl)
	}

	// Persist before publishing: a session the store never saw must not
	// become current.
	if err := m.store.Save(ctx, session); err != nil {
		m.recorder.RecordLoginFailure("store")
		m.logger.Error("session save failed", "error", err)
		return ErrValidatorUnreachable
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.current = session
	m.mu.Unlock()

	m.recorder.RecordLoginSuccess()
	m.logger.Info("login succeeded", "user_id", ident.ID, "role", ident.Role, "access_kind", ident.AccessKind)
	return nil
}

// Logout clears the current session and its persisted copy. It is
// unconditional and idempotent: calling it while logged out, or twice in a
// row, is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.state = StateUnauthenticated
	m.current = nil
	m.mu.Unlock()

	m.clearStore(ctx)
	if wasAuthenticated {
		m.logger.Info("logged out")
	}
}

// State returns the manager's current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentIdentity returns the logged-in identity, if any.
func (m *Manager) CurrentIdentity() (*domain.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, false
	}
	ident := m.current.Identity
	return &ident, true
}

// CurrentSession returns a copy of the active session, if any.
func (m *Manager) CurrentSession() (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, false
	}
	session := *m.current
	return &session, true
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// IsInitializing reports whether Restore has not yet completed. Route guards
// must not make redirect decisions while this is true.
func (m *Manager) IsInitializing() bool {
	return m.State() == StateInitializing
}

func (m *Manager) resolve(state State, session *domain.Session) {
	m.mu.Lock()
	m.state = state
	m.current = session
	m.mu.Unlock()
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("session store clear failed", "error", err)
	}
}
