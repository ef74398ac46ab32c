package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

// FakeTransactionManager is a func-field implementation of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu      sync.Mutex
	Begun   int
	Commits int
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.Begun++
	m.mu.Unlock()
	return &FakeTransaction{onCommit: func() {
		m.mu.Lock()
		m.Commits++
		m.mu.Unlock()
	}}, nil
}

// FakeTransaction is a func-field implementation of Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	onCommit  func()
	committed bool
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.committed = true
	if m.onCommit != nil {
		m.onCommit()
	}
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// SequentialIDGenerator returns id-1, id-2, ...
type SequentialIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

func (m *SequentialIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// InMemoryOutbox is a CommandOutbox keyed by idempotency key.
type InMemoryOutbox struct {
	mu       sync.RWMutex
	commands []*domain.Command
	byKey    map[string]*domain.Command

	EnqueueFunc func(ctx context.Context, tx usecase.Transaction, cmd *domain.Command) (bool, error)
}

func NewInMemoryOutbox() *InMemoryOutbox {
	return &InMemoryOutbox{byKey: make(map[string]*domain.Command)}
}

func (m *InMemoryOutbox) Enqueue(ctx context.Context, tx usecase.Transaction, cmd *domain.Command) (bool, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, tx, cmd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[cmd.IdempotencyKey]; ok {
		return false, nil
	}
	m.byKey[cmd.IdempotencyKey] = cmd
	m.commands = append(m.commands, cmd)
	return true, nil
}

func (m *InMemoryOutbox) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Command, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cmd, ok := m.byKey[key]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("command %s not found", key)
}

func (m *InMemoryOutbox) GetUnpublished(ctx context.Context, limit int) ([]*domain.Command, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Command
	for _, cmd := range m.commands {
		if len(out) == limit {
			break
		}
		if !cmd.Published {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func (m *InMemoryOutbox) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cmd := range m.commands {
		if cmd.ID == id {
			cmd.Published = true
			at := publishedAt
			cmd.PublishedAt = &at
			return nil
		}
	}
	return fmt.Errorf("command %s not found", id)
}

func (m *InMemoryOutbox) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.commands[:0]
	for _, cmd := range m.commands {
		if cmd.Published && cmd.PublishedAt != nil && cmd.PublishedAt.Before(before) {
			delete(m.byKey, cmd.IdempotencyKey)
			continue
		}
		kept = append(kept, cmd)
	}
	m.commands = kept
	return nil
}

// Commands returns every stored command in insertion order.
func (m *InMemoryOutbox) Commands() []*domain.Command {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Command(nil), m.commands...)
}

// InMemoryPeriodRepository stores periods per ledger. LockLedger is a no-op;
// a single mutex guards all state.
type InMemoryPeriodRepository struct {
	mu      sync.RWMutex
	periods map[string]map[string]domain.PostingPeriod

	LockLedgerFunc func(ctx context.Context, tx usecase.Transaction, ledgerID, companyID string) error
}

func NewInMemoryPeriodRepository(periods ...domain.PostingPeriod) *InMemoryPeriodRepository {
	m := &InMemoryPeriodRepository{periods: make(map[string]map[string]domain.PostingPeriod)}
	for _, p := range periods {
		m.put(p)
	}
	return m
}

func (m *InMemoryPeriodRepository) put(p domain.PostingPeriod) {
	if m.periods[p.LedgerID] == nil {
		m.periods[p.LedgerID] = make(map[string]domain.PostingPeriod)
	}
	m.periods[p.LedgerID][p.PeriodKey] = p
}

func (m *InMemoryPeriodRepository) GetPeriod(ctx context.Context, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.periods[ledgerID][periodKey]
	if !ok {
		return nil, domain.ErrPeriodNotFound
	}
	return &p, nil
}

func (m *InMemoryPeriodRepository) LockLedger(ctx context.Context, tx usecase.Transaction, ledgerID, companyID string) error {
	if m.LockLedgerFunc != nil {
		return m.LockLedgerFunc(ctx, tx, ledgerID, companyID)
	}
	return nil
}

func (m *InMemoryPeriodRepository) ListPeriodsTx(ctx context.Context, tx usecase.Transaction, ledgerID, companyID string) ([]domain.PostingPeriod, error) {
	all, err := m.List(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *InMemoryPeriodRepository) GetPeriodForUpdate(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	return m.GetPeriod(ctx, ledgerID, periodKey)
}

func (m *InMemoryPeriodRepository) GetPeriodForShare(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	return m.GetPeriod(ctx, ledgerID, periodKey)
}

func (m *InMemoryPeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.PostingPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(*period)
	return nil
}

func (m *InMemoryPeriodRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string, status domain.PeriodStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[ledgerID][periodKey]
	if !ok {
		return domain.ErrPeriodNotFound
	}
	p.Status = status
	m.put(p)
	return nil
}

func (m *InMemoryPeriodRepository) List(ctx context.Context, ledgerID string) ([]domain.PostingPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.PostingPeriod, 0, len(m.periods[ledgerID]))
	for _, p := range m.periods[ledgerID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

// StaticLedgers is a LedgerReader over a fixed set of ledgers.
type StaticLedgers map[string]domain.Ledger

func (s StaticLedgers) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	l, ok := s[ledgerID]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	return &l, nil
}
