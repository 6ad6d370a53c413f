// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/domain/model"
	"daily-chronicle-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memUserRepo is a small in-memory implementation used by unit tests.
type memUserRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.User // keyed by TgID
	ensureErr error                  // used by tests to simulate store failures
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) EnsureUser(ctx context.Context, u *model.User) (*model.User, error) {
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.store[u.TgID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *u
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.store[u.TgID] = &cp
	out := cp
	return &out, nil
}

func (m *memUserRepo) FindByTgID(ctx context.Context, tgID string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memEventRepo stores events in memory and filters by owner/time range.
type memEventRepo struct {
	mu        sync.RWMutex
	store     []model.Event
	createErr error
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{}
}

func (m *memEventRepo) Create(ctx context.Context, ev *model.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	ev.UpdatedAt = ev.CreatedAt
	m.store = append(m.store, *ev)
	return nil
}

func (m *memEventRepo) FindByOwnerBetween(ctx context.Context, tgID string, from, to time.Time) ([]model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Event
	for _, ev := range m.store {
		if ev.TgID != tgID {
			continue
		}
		if ev.CreatedAt.Before(from) || ev.CreatedAt.After(to) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memEventRepo) CountByOwner(ctx context.Context, tgID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cnt := 0
	for _, ev := range m.store {
		if ev.TgID == tgID {
			cnt++
		}
	}
	return cnt, nil
}

// fakeAI records the messages it was called with and returns a canned reply.
type fakeAI struct {
	mu      sync.Mutex
	calls   [][]adapter.Message
	reply   string
	usage   adapter.Usage
	chatErr error
}

func (f *fakeAI) ListModels(ctx context.Context) ([]string, error) {
	return []string{"fake-model"}, nil
}

func (f *fakeAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := f.ChatWithUsage(ctx, model, messages)
	return text, err
}

func (f *fakeAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)
	if f.chatErr != nil {
		return "", adapter.Usage{}, f.chatErr
	}
	return f.reply, f.usage, nil
}

func (f *fakeAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
