package session

import (
	"context"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/api"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	logx "github.com/qkart/storefront/pkg/logger"
)

const (
	LoginSuccessMessage    = "Logged in successfully"
	LoginFailedMessage     = "Error occurred while login"
	RegisterSuccessMessage = "Registration successful!"
	UsernameTakenMessage   = "Username is already taken"
	RegisterFailedMessage  = "Error occurred while registering"
	LogoutMessage          = "Logged out"
)

// AuthService is the remote authentication API.
type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*api.LoginResponse, error)
	Register(ctx context.Context, creds model.Credentials) (*api.RegisterResponse, error)
}

// Manager owns the session lifecycle: Create on login, Destroy on logout. Everything
// else receives the session explicitly from Current.
type Manager struct {
	auth     AuthService
	repo     model.SessionRepository
	notifier notify.Notifier
}

func NewManager(auth AuthService, repo model.SessionRepository, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Manager{auth: auth, repo: repo, notifier: notifier}
}

// Current returns the persisted session; an inactive one when nobody is logged in.
func (m *Manager) Current(ctx context.Context) (*model.Session, error) {
	s, err := m.repo.Load(ctx)
	if err != nil {
		return &model.Session{}, err
	}
	return s, nil
}

// Create persists token, username and balance.
func (m *Manager) Create(ctx context.Context, s *model.Session) error {
	return m.repo.Save(ctx, s)
}

// Destroy clears every persisted session value.
func (m *Manager) Destroy(ctx context.Context) error {
	if err := m.repo.Clear(ctx); err != nil {
		logx.Error().Err(err).Msg("failed to clear session")
		return err
	}
	m.notifier.Notify(notify.Info, LogoutMessage)
	return nil
}

// Login validates creds, authenticates and creates the session.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	if err := ValidateLogin(creds); err != nil {
		m.notifier.Notify(notify.Error, errx.MessageOf(err, ""))
		return nil, err
	}

	resp, err := m.auth.Login(ctx, creds)
	if err != nil {
		if errx.IsKind(err, errx.KindRejected) {
			m.notifier.Notify(notify.Error, errx.MessageOf(err, LoginFailedMessage))
		} else {
			m.notifier.Notify(notify.Error, LoginFailedMessage)
		}
		return nil, err
	}

	s := &model.Session{Token: resp.Token, Username: resp.Username, Balance: resp.Balance}
	if err := m.Create(ctx, s); err != nil {
		m.notifier.Notify(notify.Error, LoginFailedMessage)
		return nil, err
	}
	logx.Info().Str("username", s.Username).Msg("session created")
	m.notifier.Notify(notify.Success, LoginSuccessMessage)
	return s, nil
}

// Register validates the form and creates the account. It does not log in.
func (m *Manager) Register(ctx context.Context, form model.Registration) error {
	if err := ValidateRegistration(form); err != nil {
		m.notifier.Notify(notify.Error, errx.MessageOf(err, ""))
		return err
	}

	resp, err := m.auth.Register(ctx, model.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		if errx.IsKind(err, errx.KindRejected) {
			m.notifier.Notify(notify.Error, errx.MessageOf(err, RegisterFailedMessage))
		} else {
			m.notifier.Notify(notify.Error, RegisterFailedMessage)
		}
		return err
	}
	if !resp.Success {
		m.notifier.Notify(notify.Error, UsernameTakenMessage)
		return errx.Conflict(UsernameTakenMessage)
	}

	m.notifier.Notify(notify.Success, RegisterSuccessMessage)
	return nil
}
