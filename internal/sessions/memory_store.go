package sessions

import (
	"context"
	"sync"
	"time"

	apperrors "task-manager.com/task-manager/internal/errors"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store for single-node deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	resets  map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		resets:  make(map[string]entry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	m.revoked[tokenID] = m.now().Add(ttl)
	return nil
}

func (m *MemoryStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && m.now().Before(exp), nil
}

func (m *MemoryStore) PutResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	m.resets[token] = entry{value: userID, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.resets[token]
	if !ok {
		return "", apperrors.ErrInvalidResetToken
	}
	delete(m.resets, token)

	if !m.now().Before(e.expiresAt) {
		return "", apperrors.ErrInvalidResetToken
	}
	return e.value, nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryStore) sweep() {
	now := m.now()
	for id, exp := range m.revoked {
		if !now.Before(exp) {
			delete(m.revoked, id)
		}
	}
	for tok, e := range m.resets {
		if !now.Before(e.expiresAt) {
			delete(m.resets, tok)
		}
	}
}
