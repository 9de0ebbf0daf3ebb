package session

import (
	"context"
	"sync"
	"time"

	"github.com/legalchicks/lcen-portal/internal/client/client"
	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/client/observable"
	"github.com/legalchicks/lcen-portal/internal/client/repositories/metadata"
	"github.com/legalchicks/lcen-portal/internal/logging"
)

const DefaultVerifyTimeout = 10 * time.Second

const (
	msgLoginError     = "An error occurred during login. Please try again."
	msgRegisterError  = "An error occurred during registration. Please try again."
	msgUpdateError    = "Failed to update profile"
	msgSaveError      = "Could not save the session locally. Please try again."
	msgSuperseded     = "The session changed while the request was in flight. Please try again."
	msgMissingSession = "The server did not return a session."
)

// Options tune a Manager.
type Options struct {
	// VerifyTimeout bounds the startup token check. Zero means DefaultVerifyTimeout.
	VerifyTimeout time.Duration
	// ClearPreferencesOnLogout also removes local settings and notifications.
	ClearPreferencesOnLogout bool
}

// Manager is the single writer of the client session. Readers use the
// observable holders or the IsAuthenticated/IsAdmin/CurrentUser accessors.
//
// Every commit that changes who is signed in bumps an epoch. An operation
// remembers the epoch it started in and drops its result when the epoch has
// moved on, so a late reply cannot bring back a session that was cleared.
//
// Subscribers are notified while the commit lock is held and must not call
// Login, Register, Logout, Bootstrap or UpdateProfile synchronously.
type Manager struct {
	api    client.Client
	store  metadata.Repository
	nav    Navigator
	logger logging.Logger
	opts   Options

	mu    sync.Mutex
	epoch uint64

	state *observable.Value[State]
	user  *observable.Value[*models.User]
}

func NewManager(api client.Client, store metadata.Repository, nav Navigator, logger logging.Logger, opts Options) *Manager {
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = DefaultVerifyTimeout
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Manager{
		api:    api,
		store:  store,
		nav:    nav,
		logger: logger.With("module", "session"),
		opts:   opts,
		state:  observable.NewValue(Unauthenticated),
		user:   observable.NewValue[*models.User](nil),
	}
}

// SetNavigator attaches the navigator when it is built after the Manager.
func (m *Manager) SetNavigator(nav Navigator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = nav
}

// StateValue exposes the observable state.
func (m *Manager) StateValue() *observable.Value[State] { return m.state }

// UserValue exposes the observable current user. Treat the pointee as read-only.
func (m *Manager) UserValue() *observable.Value[*models.User] { return m.user }

func (m *Manager) State() State { return m.state.Get() }

func (m *Manager) IsAuthenticated() bool {
	return m.state.Get() == Authenticated && m.user.Get() != nil
}

func (m *Manager) IsAdmin() bool {
	return m.IsAuthenticated() && m.user.Get().IsAdmin()
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	u := m.user.Get()
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// StoredToken reads the persisted token; it is the TokenSource for API calls.
func StoredToken(store metadata.Repository) client.TokenSource {
	return func(ctx context.Context) string {
		raw, err := store.Get(ctx, metadata.KeyAuthToken)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Bootstrap restores the persisted session. With a token and user snapshot
// present it verifies the token with the server, bounded by VerifyTimeout.
// Any failure clears the persisted session and leaves the client
// Unauthenticated.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, err := m.store.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		return err
	}
	snapshot, err := m.store.Get(ctx, metadata.KeyCurrentUser)
	if err != nil {
		return err
	}

	m.mu.Lock()
	epoch := m.epoch
	if len(token) == 0 || len(snapshot) == 0 {
		m.user.Set(nil)
		m.state.Set(Unauthenticated)
		m.mu.Unlock()
		return nil
	}
	m.state.Set(Verifying)
	m.mu.Unlock()

	vctx, cancel := context.WithTimeout(ctx, m.opts.VerifyTimeout)
	user, verr := m.api.Verify(vctx, string(token))
	cancel()

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.logger.Debug(ctx, "stale verification dropped")
		return nil
	}
	if verr == nil {
		if err := metadata.SetJSON(ctx, m.store, metadata.KeyCurrentUser, user); err != nil {
			verr = err
		}
	}
	if verr != nil {
		m.epoch++
		clearErr := m.clearLocked(ctx)
		nav := m.nav
		m.mu.Unlock()

		m.logger.Warn(ctx, "token verification failed", "error", verr)
		m.navigate(ctx, nav, PathLogin)
		return clearErr
	}

	m.epoch++
	m.user.Set(user)
	m.state.Set(Authenticated)
	m.mu.Unlock()

	m.logger.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Login signs in and on success navigates to the dashboard. Failures come
// back as the message to display; the state stays Unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	epoch := m.currentEpoch()
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return Result{Message: client.Message(err, msgLoginError)}
	}
	return m.establish(ctx, epoch, email, resp, PathDashboard)
}

// Register creates the account, signs in, and on success navigates to
// profile completion.
func (m *Manager) Register(ctx context.Context, name, email, password string) Result {
	epoch := m.currentEpoch()
	resp, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		m.logger.Warn(ctx, "registration failed", "email", email, "error", err)
		return Result{Message: client.Message(err, msgRegisterError)}
	}
	return m.establish(ctx, epoch, email, resp, PathProfile)
}

func (m *Manager) establish(ctx context.Context, epoch uint64, email string, resp *models.AuthResponse, target string) Result {
	if !resp.Success || resp.Token == "" || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = msgMissingSession
		}
		return Result{Message: msg}
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.logger.Info(ctx, "stale sign-in dropped", "email", email)
		return Result{Message: msgSuperseded}
	}
	if err := m.persistLocked(ctx, resp.Token, resp.User); err != nil {
		_ = m.clearLocked(ctx)
		m.mu.Unlock()
		m.logger.Error(ctx, "persist session", "error", err)
		return Result{Message: msgSaveError}
	}
	m.epoch++
	m.user.Set(resp.User)
	m.state.Set(Authenticated)
	nav := m.nav
	m.mu.Unlock()

	m.logger.Info(ctx, "signed in", "email", email, "user_id", resp.User.ID)
	m.navigate(ctx, nav, target)
	return Result{Success: true, Message: resp.Message}
}

// Logout clears the session and navigates to the login page.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	err := m.clearLocked(ctx)
	nav := m.nav
	m.mu.Unlock()

	m.navigate(ctx, nav, PathLogin)
	return err
}

// UpdateProfile changes a member's profile. When id is the signed-in user
// the session snapshot is refreshed. Errors match ErrUpdateFailed.
func (m *Manager) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	epoch := m.currentEpoch()
	updated, err := m.api.UpdateProfile(ctx, id, upd)
	if err != nil {
		return nil, &UpdateError{Message: client.Message(err, msgUpdateError), cause: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cur := m.user.Get(); m.epoch == epoch && cur != nil && cur.ID == id {
		if err := metadata.SetJSON(ctx, m.store, metadata.KeyCurrentUser, updated); err != nil {
			m.logger.Error(ctx, "persist user snapshot", "error", err)
		}
		m.user.Set(updated)
	}
	return updated, nil
}

func (m *Manager) currentEpoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// persistLocked must be called with mu held.
func (m *Manager) persistLocked(ctx context.Context, token string, user *models.User) error {
	if err := m.store.Set(ctx, metadata.KeyAuthToken, []byte(token)); err != nil {
		return err
	}
	return metadata.SetJSON(ctx, m.store, metadata.KeyCurrentUser, user)
}

// clearLocked must be called with mu held.
func (m *Manager) clearLocked(ctx context.Context) error {
	keys := []string{metadata.KeyAuthToken, metadata.KeyCurrentUser}
	if m.opts.ClearPreferencesOnLogout {
		keys = append(keys, metadata.KeySettings, metadata.KeyNotifications)
	}
	err := m.store.Delete(ctx, keys...)
	m.user.Set(nil)
	m.state.Set(Unauthenticated)
	return err
}

func (m *Manager) navigate(ctx context.Context, nav Navigator, path string) {
	if nav == nil {
		return
	}
	if err := nav.Navigate(path); err != nil {
		m.logger.Debug(ctx, "navigation", "path", path, "error", err)
	}
}
