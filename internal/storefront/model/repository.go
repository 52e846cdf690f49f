package model

import "context"

type SessionRepository interface {
	// Load returns the persisted session, or an empty Session when none exists
	Load(ctx context.Context) (*Session, error)

	// Save persists token, username and balance
	Save(ctx context.Context, session *Session) error

	// Clear removes every persisted session value
	Clear(ctx context.Context) error
}
