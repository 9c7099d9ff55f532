// Package services orchestrates domain operations across the repository: it
// validates input, stamps time costs from the profile active at write time,
// and routes the label cascades through atomic storage updates.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"workworth/internal/core"
	applog "workworth/internal/log"
	"workworth/internal/storage"
)

// logInfo tags service records with their component so they line up with the
// request middleware's output.
func logInfo(ctx context.Context, msg string, args ...any) {
	slog.InfoContext(ctx, msg, append([]any{applog.FieldComponent, applog.ComponentService}, args...)...)
}

// WorkworthService exposes every user-facing operation over the persisted
// state. All methods are safe for concurrent use; the repository serializes
// the underlying read-modify-write cycles.
type WorkworthService struct {
	repo *storage.Repository
	now  func() time.Time
}

func NewWorkworthService(repo *storage.Repository) *WorkworthService {
	return &WorkworthService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *WorkworthService) WithClock(now func() time.Time) *WorkworthService {
	s.now = now
	return s
}

// Now returns the service's current time. The clock is injected so month
// derivations stay deterministic under test.
func (s *WorkworthService) Now() time.Time {
	return s.now()
}

// Profile returns the active salary profile with the month it was saved for.
// The saved month is not subject to the debug offset; it records when the
// profile was actually written.
func (s *WorkworthService) Profile(ctx context.Context) (core.SalaryProfile, error) {
	return s.repo.Profile(ctx)
}

// CurrentMonthKey returns the effective month key, honoring the persisted
// debug offset.
func (s *WorkworthService) CurrentMonthKey(ctx context.Context) (string, error) {
	offset, err := s.repo.DebugMonthOffset(ctx)
	if err != nil {
		return "", err
	}
	return core.CurrentMonthKey(s.now(), offset), nil
}

// Snapshot loads everything the screens render into one immutable state.
func (s *WorkworthService) Snapshot(ctx context.Context) (core.State, error) {
	profile, err := s.repo.Profile(ctx)
	if err != nil {
		return core.State{}, err
	}
	txns, err := s.repo.Transactions(ctx)
	if err != nil {
		return core.State{}, err
	}
	labels, err := s.repo.Labels(ctx)
	if err != nil {
		return core.State{}, err
	}
	summaries, err := s.repo.MonthlySummaries(ctx)
	if err != nil {
		return core.State{}, err
	}
	month, err := s.CurrentMonthKey(ctx)
	if err != nil {
		return core.State{}, err
	}

	return core.State{
		Salary:           profile.Salary,
		DaysWorked:       profile.DaysWorked,
		Transactions:     txns,
		Labels:           labels,
		Summaries:        summaries,
		CurrentMonthYear: month,
		Sort:             core.SortNewestFirst,
	}, nil
}

// UpdateSettings stores a new salary profile for the effective month and
// snapshots it into the history map.
func (s *WorkworthService) UpdateSettings(ctx context.Context, salary, daysWorked decimal.Decimal) error {
	month, err := s.CurrentMonthKey(ctx)
	if err != nil {
		return err
	}

	profile := core.SalaryProfile{Salary: salary, DaysWorked: daysWorked, MonthYear: month}
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := s.repo.SaveSettings(ctx, salary, daysWorked, month); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	logInfo(ctx, "Settings updated",
		"salary", salary.String(),
		"days_worked", daysWorked.String(),
		applog.FieldMonth, month)
	return nil
}

// AddTransaction records a new expense. The time cost is computed once, here,
// from the profile active right now; it is never recomputed later.
func (s *WorkworthService) AddTransaction(ctx context.Context, name string, amount decimal.Decimal, labelIDs []string) (core.Transaction, error) {
	if strings.TrimSpace(name) == "" {
		return core.Transaction{}, core.ErrEmptyName
	}
	if !amount.IsPositive() {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	profile, err := s.repo.Profile(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	if profile.Validate() != nil {
		return core.Transaction{}, core.ErrNoProfile
	}

	month, err := s.CurrentMonthKey(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	timeCost := core.TimeCost(amount, profile.Salary, profile.DaysWorked)
	txn := core.NewTransaction(name, amount, timeCost, month, labelIDs, s.now())

	if err := s.repo.UpdateTransactions(ctx, func(txns []core.Transaction) []core.Transaction {
		return append(txns, txn)
	}); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	logInfo(ctx, "Transaction added",
		applog.FieldTxnID, txn.ID,
		"name", txn.Name,
		"amount", txn.Amount.String(),
		"time_cost", txn.TimeCost.String(),
		applog.FieldMonth, txn.MonthYear)
	return txn, nil
}

// UpdateTransaction replaces a transaction's editable fields. The time cost
// is restamped from the profile active now; the creation time and month
// bucket stay as they were.
func (s *WorkworthService) UpdateTransaction(ctx context.Context, id, name string, amount decimal.Decimal, labelIDs []string) (core.Transaction, error) {
	if strings.TrimSpace(name) == "" {
		return core.Transaction{}, core.ErrEmptyName
	}
	if !amount.IsPositive() {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	profile, err := s.repo.Profile(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	if profile.Validate() != nil {
		return core.Transaction{}, core.ErrNoProfile
	}

	var updated core.Transaction
	found := false
	err = s.repo.UpdateTransactions(ctx, func(txns []core.Transaction) []core.Transaction {
		for i, t := range txns {
			if t.ID != id {
				continue
			}
			found = true
			t.Name = strings.TrimSpace(name)
			t.Amount = amount
			t.TimeCost = core.TimeCost(amount, profile.Salary, profile.DaysWorked)
			ids := make([]string, len(labelIDs))
			copy(ids, labelIDs)
			t.LabelIDs = ids
			txns[i] = t
			updated = t
			break
		}
		return txns
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if !found {
		return core.Transaction{}, core.ErrNotFound
	}

	logInfo(ctx, "Transaction updated", applog.FieldTxnID, id)
	return updated, nil
}

// DeleteTransaction removes a transaction. Deleting an unknown id reports
// ErrNotFound.
func (s *WorkworthService) DeleteTransaction(ctx context.Context, id string) error {
	found := false
	err := s.repo.UpdateTransactions(ctx, func(txns []core.Transaction) []core.Transaction {
		out := txns[:0]
		for _, t := range txns {
			if t.ID == id {
				found = true
				continue
			}
			out = append(out, t)
		}
		return out
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if !found {
		return core.ErrNotFound
	}

	logInfo(ctx, "Transaction deleted", applog.FieldTxnID, id)
	return nil
}

// AddOrUpdateLabel creates a label, or renames the one stored under oldID
// when oldID is non-empty. A rename that changes the identifier migrates
// every referencing transaction in the same atomic write. Creating a label
// whose normalized name collides with an existing one is a no-op: the
// existing label wins.
func (s *WorkworthService) AddOrUpdateLabel(ctx context.Context, oldID, name string, color int32) (core.Label, error) {
	label := core.NewLabel(name, color)
	if err := label.Validate(); err != nil {
		return core.Label{}, err
	}

	if oldID == "" {
		if err := s.repo.UpdateLabels(ctx, func(labels []core.Label) []core.Label {
			return core.AddLabel(labels, label)
		}); err != nil {
			return core.Label{}, fmt.Errorf("save label: %w", err)
		}
		logInfo(ctx, "Label created", applog.FieldLabelID, label.ID)
		return label, nil
	}

	if err := s.repo.UpdateLabelsAndTransactions(ctx, func(labels []core.Label, txns []core.Transaction) ([]core.Label, []core.Transaction) {
		return core.RenameLabel(labels, txns, oldID, label)
	}); err != nil {
		return core.Label{}, fmt.Errorf("rename label: %w", err)
	}
	logInfo(ctx, "Label renamed", "old_id", oldID, applog.FieldLabelID, label.ID)
	return label, nil
}

// DeleteLabel removes a label and strips its id from every transaction, in
// one atomic write. Transactions are kept.
func (s *WorkworthService) DeleteLabel(ctx context.Context, id string) error {
	if err := s.repo.UpdateLabelsAndTransactions(ctx, func(labels []core.Label, txns []core.Transaction) ([]core.Label, []core.Transaction) {
		return core.DeleteLabel(labels, txns, id)
	}); err != nil {
		return fmt.Errorf("delete label: %w", err)
	}

	logInfo(ctx, "Label deleted", applog.FieldLabelID, id)
	return nil
}

// MonthOverview derives the headline figures for a month. The month's
// retained summary takes precedence; for the effective current month the
// live profile is the fallback so a freshly configured month works before
// any summary exists.
func (s *WorkworthService) MonthOverview(ctx context.Context, monthKey string) (core.MonthReport, error) {
	if monthKey == "" {
		var err error
		monthKey, err = s.CurrentMonthKey(ctx)
		if err != nil {
			return core.MonthReport{}, err
		}
	}

	txns, err := s.repo.Transactions(ctx)
	if err != nil {
		return core.MonthReport{}, err
	}

	salary, daysWorked := decimal.Zero, decimal.Zero
	summaries, err := s.repo.MonthlySummaries(ctx)
	if err != nil {
		return core.MonthReport{}, err
	}
	if summary, ok := summaries[monthKey]; ok {
		salary, daysWorked = summary.Salary, summary.DaysWorked
	} else {
		profile, err := s.repo.Profile(ctx)
		if err != nil {
			return core.MonthReport{}, err
		}
		if profile.MonthYear == monthKey {
			salary, daysWorked = profile.Salary, profile.DaysWorked
		}
	}

	return core.ReportForMonth(monthKey, salary, daysWorked, txns), nil
}

// Transactions returns the transaction list restricted to a month (empty
// monthKey means all months), filtered and sorted for display.
func (s *WorkworthService) Transactions(ctx context.Context, monthKey string, filter core.Filter, order core.SortOrder) ([]core.Transaction, error) {
	txns, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	if monthKey != "" {
		txns = core.TransactionsForMonth(txns, monthKey)
	}
	return core.SortTransactions(core.FilterTransactions(txns, filter), order), nil
}

// MonthGroup is one month of filtered history together with its figures.
type MonthGroup struct {
	Report       core.MonthReport   `json:"report"`
	Transactions []core.Transaction `json:"transactions"`
}

// History returns the filtered, sorted transactions grouped by month, newest
// month first, with per-month figures from the retained summaries.
func (s *WorkworthService) History(ctx context.Context, filter core.Filter, order core.SortOrder) ([]MonthGroup, error) {
	txns, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.repo.MonthlySummaries(ctx)
	if err != nil {
		return nil, err
	}

	visible := core.SortTransactions(core.FilterTransactions(txns, filter), order)
	keys, groups := core.GroupByMonth(visible, s.now())

	out := make([]MonthGroup, 0, len(keys))
	for _, key := range keys {
		summary := summaries[key]
		out = append(out, MonthGroup{
			Report:       core.ReportForMonth(key, summary.Salary, summary.DaysWorked, groups[key]),
			Transactions: groups[key],
		})
	}
	return out, nil
}

// SetDebugMonthOffset shifts the effective month by whole months, a
// developer aid for exercising month rollover.
func (s *WorkworthService) SetDebugMonthOffset(ctx context.Context, offset int) error {
	if err := s.repo.SetDebugMonthOffset(ctx, offset); err != nil {
		return fmt.Errorf("set debug month offset: %w", err)
	}
	return nil
}

// ResetAll wipes all persisted state.
func (s *WorkworthService) ResetAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("reset all: %w", err)
	}
	logInfo(ctx, "All data cleared")
	return nil
}
