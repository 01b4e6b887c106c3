// Package session owns the authenticated identity of the running client.
//
// Manager is the single writer of the identity. It logs in and out, keeps
// the credential store in step, and drops the identity whenever the API
// client reports a 401.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/drivequiz/internal/client/client"
	"github.com/dmitrijs2005/drivequiz/internal/client/credentials"
	"github.com/dmitrijs2005/drivequiz/internal/client/models"
	"github.com/dmitrijs2005/drivequiz/internal/common"
	"github.com/dmitrijs2005/drivequiz/internal/logging"
)

const (
	MsgCannotReachServer  = "cannot reach server"
	MsgLoginFailed        = "login failed"
	MsgRegisterFailed     = "registration failed"
	MsgAutoLoginFailed    = "registration succeeded but automatic login failed"
	MsgIdentityFailed     = "could not load user profile"
	MsgCredentialNotSaved = "could not store credentials"
)

// API is the part of the HTTP client the session needs.
type API interface {
	Login(ctx context.Context, identifier, secret string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	OnUnauthorized(fn func(client.UnauthorizedEvent))
}

type Manager struct {
	api   API
	store credentials.Store
	log   logging.Logger

	mu      sync.RWMutex
	user    *models.User
	loading int
}

func NewManager(api API, store credentials.Store, log logging.Logger) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		log:   log.With("component", "session"),
	}
	api.OnUnauthorized(m.handleUnauthorized)
	return m
}

// Login exchanges credentials for a token, stores it and fetches the
// identity. If the identity fetch fails the token stays stored and the user
// stays absent.
func (m *Manager) Login(ctx context.Context, identifier, secret string) error {
	m.beginLoading()
	defer m.endLoading()

	token, err := m.api.Login(ctx, identifier, secret)
	if err != nil {
		m.log.Warn(ctx, "login rejected", "identifier", identifier, "err", err)
		return failure(err, MsgLoginFailed)
	}

	if err := m.store.Save(ctx, token); err != nil {
		m.log.Error(ctx, "saving credential failed", "err", err)
		return common.NewFailure(nil, MsgCredentialNotSaved, err)
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.setUser(nil)
		m.log.Warn(ctx, "identity fetch after login failed", "err", err)
		return failure(err, MsgIdentityFailed)
	}

	m.setUser(user)
	m.log.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

// Register creates the account and then logs in with the same credentials.
// A failed automatic login is reported as a failure of the whole operation;
// the created account is left in place.
func (m *Manager) Register(ctx context.Context, email, username, secret string) (*models.User, error) {
	m.beginLoading()
	defer m.endLoading()

	created, err := m.api.Register(ctx, models.Registration{Email: email, Username: username, Password: secret})
	if err != nil {
		m.log.Warn(ctx, "registration rejected", "email", email, "err", err)
		return nil, failure(err, MsgRegisterFailed)
	}
	m.log.Info(ctx, "account created", "user_id", created.ID)

	if err := m.Login(ctx, email, secret); err != nil {
		return nil, common.NewFailure(kindOf(err), MsgAutoLoginFailed, err)
	}

	user, _ := m.CurrentUser()
	return &user, nil
}

// Logout forgets the identity and the stored token. It never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.setUser(nil)
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing credential on logout failed", "err", err)
		return
	}
	m.log.Info(ctx, "logged out")
}

// Restore picks up a token that survived a restart and fetches its
// identity. Without a stored token it does nothing.
func (m *Manager) Restore(ctx context.Context) error {
	_, ok, err := m.store.Read(ctx)
	if err != nil {
		return common.NewFailure(nil, MsgCredentialNotSaved, err)
	}
	if !ok {
		return nil
	}

	m.beginLoading()
	defer m.endLoading()

	user, err := m.api.Me(ctx)
	if err != nil {
		m.log.Warn(ctx, "restoring session failed", "err", err)
		return failure(err, MsgIdentityFailed)
	}
	m.setUser(user)
	m.log.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading is true only while a login, registration or restore is in
// flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading > 0
}

// HasCredential reports whether a token is stored, regardless of identity.
func (m *Manager) HasCredential(ctx context.Context) bool {
	_, ok, err := m.store.Read(ctx)
	return err == nil && ok
}

// Token returns the stored token, if any.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	tok, ok, err := m.store.Read(ctx)
	if err != nil {
		return "", false
	}
	return tok, ok
}

func (m *Manager) handleUnauthorized(ev client.UnauthorizedEvent) {
	m.mu.Lock()
	hadUser := m.user != nil
	m.user = nil
	m.mu.Unlock()

	if hadUser {
		m.log.Warn(context.Background(), "session ended by server", "method", ev.Method, "path", ev.Path)
	}
}

func (m *Manager) setUser(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
}

func (m *Manager) beginLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading++
}

func (m *Manager) endLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading--
}

// failure turns an API error into a user-facing Failure. Connectivity wins
// over everything, then the server detail, then fallback.
func failure(err error, fallback string) error {
	if errors.Is(err, client.ErrUnavailable) {
		return common.NewFailure(common.ErrConnectivity, MsgCannotReachServer, err)
	}
	msg := client.DetailOf(err)
	if msg == "" {
		msg = fallback
	}
	return common.NewFailure(client.Classify(err), msg, err)
}

func kindOf(err error) error {
	var f *common.Failure
	if errors.As(err, &f) && f.Kind != nil {
		return f.Kind
	}
	return client.Classify(err)
}
