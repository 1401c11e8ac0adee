package cache

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
)

type counter struct {
	n       int
	resetAt time.Time
}

// Memory implementa os mesmos contratos do Redis num único processo.
// Usado quando REDIS_ADDR não está configurado e nos testes.
type Memory struct {
	mu       sync.Mutex
	now      func() time.Time
	filters  map[string]domain.Filters
	revoked  map[string]time.Time
	counters map[string]*counter
}

func NewMemory() *Memory {
	return &Memory{
		now:      time.Now,
		filters:  map[string]domain.Filters{},
		revoked:  map[string]time.Time{},
		counters: map[string]*counter{},
	}
}

func (m *Memory) LoadFilters(_ context.Context, userID string) (domain.Filters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters[userID], nil
}

func (m *Memory) SaveFilters(_ context.Context, userID string, f domain.Filters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters[userID] = f
	return nil
}

func (m *Memory) DeleteFilters(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.filters, userID)
	return nil
}

func (m *Memory) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = m.now().Add(ttl)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}

func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c, ok := m.counters[key]
	if !ok || !now.Before(c.resetAt) {
		c = &counter{resetAt: now.Add(window)}
		m.counters[key] = c
	}
	c.n++

	return c.n <= limit, nil
}

var _ domain.FilterStore = (*Memory)(nil)
