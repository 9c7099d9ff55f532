package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"workworth/internal/core"
	applog "workworth/internal/log"
)

// Storage keys. Missing or corrupt values degrade to the documented default
// (zero decimal, empty collection, empty string, offset 0) and never
// propagate a decode failure.
const (
	keyMonthlySalary    = "monthly_salary"
	keyDaysWorked       = "days_worked"
	keySavedMonth       = "saved_month"
	keyTransactions     = "transactions"
	keyLabels           = "labels"
	keyMonthlySummaries = "monthly_summaries"
	keyDebugMonthOffset = "debug_month_offset"
)

// Repository is the typed persistence layer over a KV backend. Read-modify-
// write cycles are serialized per collection with an explicit lock; the
// combined label+transaction update takes both locks in a fixed order and
// writes both collections in one atomic PutAll.
type Repository struct {
	kv KV

	txnMu   sync.Mutex
	labelMu sync.Mutex
}

func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// Salary returns the active monthly salary, zero when unset.
func (r *Repository) Salary(ctx context.Context) (decimal.Decimal, error) {
	return r.readDecimal(ctx, keyMonthlySalary)
}

// DaysWorked returns the active days-worked setting, zero when unset.
func (r *Repository) DaysWorked(ctx context.Context) (decimal.Decimal, error) {
	return r.readDecimal(ctx, keyDaysWorked)
}

// SavedMonth returns the month key the active profile was saved for, empty
// when no profile exists yet.
func (r *Repository) SavedMonth(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, keySavedMonth)
	if err != nil {
		return "", fmt.Errorf("read saved month: %w", err)
	}
	return v, nil
}

// Profile assembles the active salary profile from its three keys.
func (r *Repository) Profile(ctx context.Context) (core.SalaryProfile, error) {
	salary, err := r.Salary(ctx)
	if err != nil {
		return core.SalaryProfile{}, err
	}
	days, err := r.DaysWorked(ctx)
	if err != nil {
		return core.SalaryProfile{}, err
	}
	month, err := r.SavedMonth(ctx)
	if err != nil {
		return core.SalaryProfile{}, err
	}
	return core.SalaryProfile{Salary: salary, DaysWorked: days, MonthYear: month}, nil
}

// DebugMonthOffset returns the persisted developer month shift, 0 when unset.
func (r *Repository) DebugMonthOffset(ctx context.Context) (int, error) {
	v, ok, err := r.kv.Get(ctx, keyDebugMonthOffset)
	if err != nil {
		return 0, fmt.Errorf("read debug month offset: %w", err)
	}
	if !ok {
		return 0, nil
	}
	offset, err := strconv.Atoi(v)
	if err != nil {
		warnCorrupt(ctx, "Corrupt debug month offset, using 0", "value", v, applog.FieldError, err)
		return 0, nil
	}
	return offset, nil
}

func (r *Repository) SetDebugMonthOffset(ctx context.Context, offset int) error {
	return r.kv.Put(ctx, keyDebugMonthOffset, strconv.Itoa(offset))
}

// Transactions returns the persisted transaction list, empty when unset or
// corrupt.
func (r *Repository) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return readJSON[[]core.Transaction](ctx, r, keyTransactions)
}

// Labels returns the persisted label list, empty when unset or corrupt.
func (r *Repository) Labels(ctx context.Context) ([]core.Label, error) {
	return readJSON[[]core.Label](ctx, r, keyLabels)
}

// MonthlySummaries returns the month-to-summary history map, empty when
// unset or corrupt.
func (r *Repository) MonthlySummaries(ctx context.Context) (map[string]core.MonthlySummary, error) {
	summaries, err := readJSON[map[string]core.MonthlySummary](ctx, r, keyMonthlySummaries)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = make(map[string]core.MonthlySummary)
	}
	return summaries, nil
}

// SaveSettings persists the salary profile and records the month's summary
// snapshot in the history map, all in one atomic write.
func (r *Repository) SaveSettings(ctx context.Context, salary, daysWorked decimal.Decimal, monthYear string) error {
	summaries, err := r.MonthlySummaries(ctx)
	if err != nil {
		return err
	}
	summaries[monthYear] = core.MonthlySummary{Salary: salary, DaysWorked: daysWorked}

	encoded, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("encode monthly summaries: %w", err)
	}

	return r.kv.PutAll(ctx, map[string]string{
		keyMonthlySalary:    salary.String(),
		keyDaysWorked:       daysWorked.String(),
		keySavedMonth:       monthYear,
		keyMonthlySummaries: string(encoded),
	})
}

// UpdateTransactions runs one read-modify-write cycle over the transaction
// list. The whole cycle holds the collection lock so concurrent writers
// cannot interleave.
func (r *Repository) UpdateTransactions(ctx context.Context, apply func([]core.Transaction) []core.Transaction) error {
	r.txnMu.Lock()
	defer r.txnMu.Unlock()

	current, err := r.Transactions(ctx)
	if err != nil {
		return err
	}
	return r.writeJSON(ctx, keyTransactions, emptyAsList(apply(current)))
}

// UpdateLabels runs one read-modify-write cycle over the label list.
func (r *Repository) UpdateLabels(ctx context.Context, apply func([]core.Label) []core.Label) error {
	r.labelMu.Lock()
	defer r.labelMu.Unlock()

	current, err := r.Labels(ctx)
	if err != nil {
		return err
	}
	return r.writeJSON(ctx, keyLabels, emptyAsList(apply(current)))
}

// UpdateLabelsAndTransactions applies one transformation across both
// collections and persists the pair atomically. Label rename and delete
// cascades go through here so the two lists can never be observed torn.
func (r *Repository) UpdateLabelsAndTransactions(ctx context.Context, apply func([]core.Label, []core.Transaction) ([]core.Label, []core.Transaction)) error {
	r.labelMu.Lock()
	defer r.labelMu.Unlock()
	r.txnMu.Lock()
	defer r.txnMu.Unlock()

	labels, err := r.Labels(ctx)
	if err != nil {
		return err
	}
	txns, err := r.Transactions(ctx)
	if err != nil {
		return err
	}

	labels, txns = apply(labels, txns)

	encodedLabels, err := json.Marshal(emptyAsList(labels))
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	encodedTxns, err := json.Marshal(emptyAsList(txns))
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	return r.kv.PutAll(ctx, map[string]string{
		keyLabels:       string(encodedLabels),
		keyTransactions: string(encodedTxns),
	})
}

// ClearAll wipes every persisted key.
func (r *Repository) ClearAll(ctx context.Context) error {
	return r.kv.Reset(ctx)
}

// ClearCurrentMonth removes the active profile keys while keeping history,
// transactions and labels.
func (r *Repository) ClearCurrentMonth(ctx context.Context) error {
	return r.kv.Delete(ctx, keyMonthlySalary, keyDaysWorked, keySavedMonth)
}

func (r *Repository) readDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	v, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		warnCorrupt(ctx, "Corrupt numeric setting, using 0", "key", key, "value", v, applog.FieldError, err)
		return decimal.Zero, nil
	}
	return d, nil
}

// warnCorrupt tags recoverable-read warnings with the storage component so
// they stay greppable alongside the request middleware's records.
func warnCorrupt(ctx context.Context, msg string, args ...any) {
	slog.WarnContext(ctx, msg, append([]any{applog.FieldComponent, applog.ComponentStorage}, args...)...)
}

// readJSON decodes the value stored at key, yielding the zero T when the key
// is missing or holds data that fails to decode. The result of a failed
// decode is discarded wholesale so a wrong-typed field cannot leak a
// partially populated collection.
func readJSON[T any](ctx context.Context, r *Repository, key string) (T, error) {
	var decoded T
	v, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return decoded, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return decoded, nil
	}
	if err := json.Unmarshal([]byte(v), &decoded); err != nil {
		warnCorrupt(ctx, "Corrupt persisted collection, using empty default", "key", key, applog.FieldError, err)
		var zero T
		return zero, nil
	}
	return decoded, nil
}

func (r *Repository) writeJSON(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.kv.Put(ctx, key, string(encoded))
}

// emptyAsList keeps nil slices serializing as [] rather than null.
func emptyAsList[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
