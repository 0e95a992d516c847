package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formclone/pkg/model"
)

// DefaultTTL bounds how long a pending model waits for its submission.
const DefaultTTL = time.Hour

// MemoryOption configures the in-memory store.
type MemoryOption func(*Memory)

// WithTTL overrides the pending-model lifetime. Zero disables expiry.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		m.ttl = ttl
	}
}

// withClock injects a time source; used by tests.
func withClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

type entry struct {
	form    model.FormModel
	expires time.Time
}

// Memory is a process-local Store. Expired entries are dropped lazily on
// Take and opportunistically on Save.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an in-memory store.
func NewMemory(options ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Save stores the model under a fresh random key.
func (m *Memory) Save(ctx context.Context, form model.FormModel) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	e := entry{form: form}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = e
	return key, nil
}

// Take retrieves and removes the model stored under key.
func (m *Memory) Take(ctx context.Context, key string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return model.FormModel{}, ErrNotFound
	}
	delete(m.entries, key)

	if !e.expires.IsZero() && m.now().After(e.expires) {
		return model.FormModel{}, ErrNotFound
	}
	return e.form, nil
}

func (m *Memory) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for key, e := range m.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(m.entries, key)
		}
	}
}
