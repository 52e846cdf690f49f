package repo

import (
	"context"
	"sync"

	"github.com/qkart/storefront/internal/storefront/model"
)

// MemorySessionRepository holds the session for the lifetime of the process.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	session model.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) Load(ctx context.Context) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.session
	return &s, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = *session
	return nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = model.Session{}
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
