package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/storage"
)

// DefaultPersistTimeout bounds a single storage call.
const DefaultPersistTimeout = 2 * time.Second

// BudgetStore owns the budget snapshot and is its only mutator. Every
// successful mutation is written through to the key/value store before
// returning; write failures are logged and never undo the in-memory change.
type BudgetStore struct {
	mu             sync.Mutex
	kv             storage.KeyValueStore
	logger         *log.Logger
	persistTimeout time.Duration
	snapshot       core.Snapshot
}

// Option configures a BudgetStore.
type Option func(*BudgetStore)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *BudgetStore) {
		if logger != nil {
			s.logger = logger.WithComponent(log.ComponentBudget)
		}
	}
}

// WithPersistTimeout bounds each storage call; zero disables the bound.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *BudgetStore) {
		s.persistTimeout = d
	}
}

// NewBudgetStore loads the persisted budget from kv, falling back to the
// first-run defaults for each record that is missing or unreadable.
func NewBudgetStore(ctx context.Context, kv storage.KeyValueStore, opts ...Option) *BudgetStore {
	s := &BudgetStore{
		kv:             kv,
		logger:         log.Discard(),
		persistTimeout: DefaultPersistTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot = s.load(ctx)
	return s
}

func (s *BudgetStore) load(ctx context.Context) core.Snapshot {
	snap := core.NewSnapshot()

	if raw, ok := s.loadKey(ctx, storage.KeyIncome); ok && strings.TrimSpace(raw) != "" {
		income, err := decodeIncome(raw)
		if err != nil {
			s.logDecodeFailure(ctx, storage.KeyIncome, err)
		} else {
			snap.Income = income
		}
	}

	if raw, ok := s.loadKey(ctx, storage.KeyEntries); ok {
		entries, err := decodeEntries(raw)
		if err != nil {
			s.logDecodeFailure(ctx, storage.KeyEntries, err)
		} else {
			snap.Entries = entries
		}
	}

	s.logger.InfoContext(ctx, "Budget loaded",
		log.FieldIncome, snap.Income.String(),
		log.FieldEntryCount, len(snap.Entries))
	return snap
}

func (s *BudgetStore) loadKey(ctx context.Context, key string) (string, bool) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	raw, ok, err := s.kv.Load(ctx, key)
	if err != nil {
		s.logDecodeFailure(ctx, key, fmt.Errorf("%w: %v", core.ErrCorruptRecord, err))
		return "", false
	}
	return raw, ok
}

func (s *BudgetStore) logDecodeFailure(ctx context.Context, key string, err error) {
	s.logger.WarnContext(ctx, "Persisted record unreadable, using default",
		log.NewFields().WithKey(key).WithError(err).WithOperation(log.OpDecode).ToSlice()...)
}

// SetIncome replaces the total income. Any value is accepted.
func (s *BudgetStore) SetIncome(ctx context.Context, income decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Income = income
	s.save(ctx, storage.KeyIncome, encodeIncome(income))
}

// AddEntry appends an unassigned entry with blank amounts. An empty name or
// one already present (ignoring case and surrounding space) leaves the
// budget untouched and returns core.ErrDuplicateName.
func (s *BudgetStore) AddEntry(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || s.snapshot.IndexOfName(name) >= 0 {
		return fmt.Errorf("add entry %q: %w", name, core.ErrDuplicateName)
	}

	s.snapshot.Entries = append(s.snapshot.Entries, core.Entry{
		Name:  name,
		Group: core.Unassigned,
	})
	s.saveEntries(ctx)
	return nil
}

// SetEntryGroup changes the group of the entry at index.
func (s *BudgetStore) SetEntryGroup(ctx context.Context, index int, group core.Group) error {
	if !group.Valid() {
		return fmt.Errorf("set group %q: %w", group, core.ErrInvalidGroup)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.snapshot.Entries[index].Group = group
	s.saveEntries(ctx)
	return nil
}

// SetEntryAmount stores value verbatim in the selected field of the entry at index.
func (s *BudgetStore) SetEntryAmount(ctx context.Context, index int, field core.AmountField, value string) error {
	if field != core.Planned && field != core.Actual {
		return fmt.Errorf("set amount %q: %w", field, core.ErrInvalidField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return err
	}
	if field == core.Planned {
		s.snapshot.Entries[index].Planned = value
	} else {
		s.snapshot.Entries[index].Actual = value
	}
	s.saveEntries(ctx)
	return nil
}

// Reset restores the first-run budget and removes both persisted records,
// so the next load behaves exactly like a first run.
func (s *BudgetStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = core.NewSnapshot()
	s.remove(ctx, storage.KeyEntries)
	s.remove(ctx, storage.KeyIncome)

	s.logger.InfoContext(ctx, "Budget reset", log.FieldOperation, log.OpReset)
}

// Snapshot returns a copy of the current state.
func (s *BudgetStore) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// Summary returns every derived value computed from the current state.
func (s *BudgetStore) Summary() core.Summary {
	return core.Summarize(s.Snapshot())
}

func (s *BudgetStore) TotalPlanned() decimal.Decimal { return core.TotalPlanned(s.Snapshot()) }

func (s *BudgetStore) TotalActual() decimal.Decimal { return core.TotalActual(s.Snapshot()) }

func (s *BudgetStore) Remaining() decimal.Decimal { return core.Remaining(s.Snapshot()) }

func (s *BudgetStore) OverPlannedAlert() bool { return core.OverPlannedAlert(s.Snapshot()) }

func (s *BudgetStore) OverActualAlert() bool { return core.OverActualAlert(s.Snapshot()) }

func (s *BudgetStore) GroupBreakdown() []core.GroupTotal {
	return core.GroupBreakdown(s.Snapshot())
}

func (s *BudgetStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.snapshot.Entries) {
		return fmt.Errorf("entry %d of %d: %w", index, len(s.snapshot.Entries), core.ErrIndexOutOfRange)
	}
	return nil
}

func (s *BudgetStore) saveEntries(ctx context.Context) {
	raw, err := encodeEntries(s.snapshot.Entries)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode entries", log.FieldError, err.Error())
		return
	}
	s.save(ctx, storage.KeyEntries, raw)
}

func (s *BudgetStore) save(ctx context.Context, key, value string) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	if err := s.kv.Save(ctx, key, value); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist budget record",
			log.NewFields().WithKey(key).WithError(err).WithOperation(log.OpSave).ToSlice()...)
	}
}

func (s *BudgetStore) remove(ctx context.Context, key string) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	if err := s.kv.Remove(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "Failed to remove budget record",
			log.NewFields().WithKey(key).WithError(err).WithOperation(log.OpRemove).ToSlice()...)
	}
}

// storageContext ignores caller cancellation and applies the persist timeout.
func (s *BudgetStore) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.persistTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.persistTimeout)
}

// IsUserError reports whether err is a rejected edit rather than a fault.
func IsUserError(err error) bool {
	return errors.Is(err, core.ErrDuplicateName) ||
		errors.Is(err, core.ErrInvalidGroup) ||
		errors.Is(err, core.ErrInvalidField)
}
