package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workworth/internal/core"
	applog "workworth/internal/log"
	"workworth/internal/storage"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *WorkworthService {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryKV())
	return NewWorkworthService(repo).WithClock(func() time.Time { return testNow })
}

func configured(t *testing.T) *WorkworthService {
	t.Helper()
	svc := newTestService(t)
	require.NoError(t, svc.UpdateSettings(context.Background(), decimal.NewFromInt(4400), decimal.NewFromInt(22)))
	return svc
}

func TestUpdateSettingsValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	err := svc.UpdateSettings(ctx, decimal.Zero, decimal.NewFromInt(22))
	assert.ErrorIs(t, err, core.ErrInvalidSalary)

	err = svc.UpdateSettings(ctx, decimal.NewFromInt(4400), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, core.ErrInvalidDaysWorked)
}

func TestAddTransactionStampsTimeCost(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	txn, err := svc.AddTransaction(ctx, "Headphones", decimal.NewFromInt(100), nil)
	require.NoError(t, err)

	// 4400 / (22*8) = 25 per hour, so 100 costs 4 hours
	assert.True(t, txn.TimeCost.Equal(decimal.NewFromInt(4)), "time cost = %s", txn.TimeCost)
	assert.Equal(t, "January 2026", txn.MonthYear)
	assert.NotEmpty(t, txn.ID)

	stored, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, stored.Transactions, 1)
	assert.Equal(t, txn.ID, stored.Transactions[0].ID)
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	_, err := svc.AddTransaction(ctx, "   ", decimal.NewFromInt(10), nil)
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = svc.AddTransaction(ctx, "Free stuff", decimal.Zero, nil)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestAddTransactionRequiresProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddTransaction(ctx, "Coffee", decimal.NewFromInt(4), nil)
	assert.ErrorIs(t, err, core.ErrNoProfile)
}

// The time cost stored on a transaction is never recomputed when the profile
// changes afterwards.
func TestTimeCostNotRecomputedOnProfileChange(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	txn, err := svc.AddTransaction(ctx, "Headphones", decimal.NewFromInt(100), nil)
	require.NoError(t, err)
	require.True(t, txn.TimeCost.Equal(decimal.NewFromInt(4)))

	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(8800), decimal.NewFromInt(22)))

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, state.Transactions[0].TimeCost.Equal(decimal.NewFromInt(4)))
}

func TestUpdateTransactionRestampsTimeCost(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	txn, err := svc.AddTransaction(ctx, "Headphones", decimal.NewFromInt(100), nil)
	require.NoError(t, err)

	// double the salary, then edit: the new time cost uses the new profile
	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(8800), decimal.NewFromInt(22)))

	updated, err := svc.UpdateTransaction(ctx, txn.ID, "Headphones Pro", decimal.NewFromInt(100), []string{"tech"})
	require.NoError(t, err)
	assert.True(t, updated.TimeCost.Equal(decimal.NewFromInt(2)), "time cost = %s", updated.TimeCost)
	assert.Equal(t, "Headphones Pro", updated.Name)
	assert.Equal(t, []string{"tech"}, updated.LabelIDs)

	_, err = svc.UpdateTransaction(ctx, "missing", "x", decimal.NewFromInt(1), nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	txn, err := svc.AddTransaction(ctx, "Coffee", decimal.NewFromInt(4), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID))
	assert.ErrorIs(t, svc.DeleteTransaction(ctx, txn.ID), core.ErrNotFound)

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Transactions)
}

func TestAddOrUpdateLabelCreateAndCollision(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	created, err := svc.AddOrUpdateLabel(ctx, "", "Food", 1)
	require.NoError(t, err)
	assert.Equal(t, "food", created.ID)

	// same normalized name: no-op, existing label wins
	_, err = svc.AddOrUpdateLabel(ctx, "", "food", 2)
	require.NoError(t, err)

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, state.Labels, 1)
	assert.Equal(t, int32(1), state.Labels[0].Color)
	assert.Equal(t, "Food", state.Labels[0].Name)
}

func TestRenameLabelCascadesAtomically(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	_, err := svc.AddOrUpdateLabel(ctx, "", "Food", 1)
	require.NoError(t, err)
	txn, err := svc.AddTransaction(ctx, "Lunch", decimal.NewFromInt(12), []string{"food"})
	require.NoError(t, err)

	renamed, err := svc.AddOrUpdateLabel(ctx, "food", "Groceries", 1)
	require.NoError(t, err)
	assert.Equal(t, "groceries", renamed.ID)

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, state.Labels, 1)
	assert.Equal(t, "groceries", state.Labels[0].ID)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, txn.ID, state.Transactions[0].ID)
	assert.Equal(t, []string{"groceries"}, state.Transactions[0].LabelIDs)
}

func TestDeleteLabelStripsTransactions(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	_, err := svc.AddOrUpdateLabel(ctx, "", "Food", 1)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "Lunch", decimal.NewFromInt(12), []string{"food"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLabel(ctx, "food"))

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Labels)
	require.Len(t, state.Transactions, 1)
	assert.Empty(t, state.Transactions[0].LabelIDs)
}

func TestMonthOverviewUsesLiveProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(1000), decimal.NewFromInt(22)))

	_, err := svc.AddTransaction(ctx, "a", decimal.NewFromInt(100), nil)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "b", decimal.NewFromInt(50), nil)
	require.NoError(t, err)

	report, err := svc.MonthOverview(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "January 2026", report.MonthYear)
	assert.True(t, report.TotalSpent.Equal(decimal.NewFromInt(150)))
	assert.True(t, report.RemainingMoney.Equal(decimal.NewFromInt(850)))

	wantDays := decimal.NewFromInt(850).Div(decimal.NewFromInt(1000)).Mul(decimal.NewFromInt(22))
	assert.True(t, report.MoneyDaysLeft.Equal(wantDays))
}

func TestMonthOverviewPrefersRetainedSummary(t *testing.T) {
	ctx := context.Background()
	svc := configured(t) // 4400/22 for January

	// move to February with a different profile
	require.NoError(t, svc.SetDebugMonthOffset(ctx, 1))
	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(5000), decimal.NewFromInt(20)))

	janReport, err := svc.MonthOverview(ctx, "January 2026")
	require.NoError(t, err)
	assert.True(t, janReport.Salary.Equal(decimal.NewFromInt(4400)))

	febReport, err := svc.MonthOverview(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "February 2026", febReport.MonthYear)
	assert.True(t, febReport.Salary.Equal(decimal.NewFromInt(5000)))
}

func TestDebugMonthOffsetShiftsBuckets(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	require.NoError(t, svc.SetDebugMonthOffset(ctx, 1))
	month, err := svc.CurrentMonthKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "February 2026", month)

	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(4400), decimal.NewFromInt(22)))
	txn, err := svc.AddTransaction(ctx, "Rent", decimal.NewFromInt(900), nil)
	require.NoError(t, err)
	assert.Equal(t, "February 2026", txn.MonthYear)
}

func TestHistoryGroupsAndFilters(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	_, err := svc.AddTransaction(ctx, "January coffee", decimal.NewFromInt(5), nil)
	require.NoError(t, err)

	require.NoError(t, svc.SetDebugMonthOffset(ctx, 1))
	require.NoError(t, svc.UpdateSettings(ctx, decimal.NewFromInt(4400), decimal.NewFromInt(22)))
	_, err = svc.AddTransaction(ctx, "February coffee", decimal.NewFromInt(6), nil)
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, "February rent", decimal.NewFromInt(900), nil)
	require.NoError(t, err)

	groups, err := svc.History(ctx, core.Filter{}, core.SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "February 2026", groups[0].Report.MonthYear)
	assert.Equal(t, "January 2026", groups[1].Report.MonthYear)
	assert.Len(t, groups[0].Transactions, 2)
	assert.True(t, groups[0].Report.TotalSpent.Equal(decimal.NewFromInt(906)))

	filtered, err := svc.History(ctx, core.Filter{Query: "coffee"}, core.SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Len(t, filtered[0].Transactions, 1)
	assert.Equal(t, "February coffee", filtered[0].Transactions[0].Name)
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	_, err := svc.AddTransaction(ctx, "Coffee", decimal.NewFromInt(4), nil)
	require.NoError(t, err)

	require.NoError(t, svc.ResetAll(ctx))

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, state.Salary.IsZero())
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.Summaries)
}

func TestProfileKeepsSavedMonthUnderOffset(t *testing.T) {
	ctx := context.Background()
	svc := configured(t)

	require.NoError(t, svc.SetDebugMonthOffset(ctx, 2))

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "January 2026", profile.MonthYear)

	month, err := svc.CurrentMonthKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "March 2026", month)
}

func TestMutationLogsCarryComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	svc := configured(t)

	txn, err := svc.AddTransaction(ctx, "Coffee", decimal.NewFromInt(4), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, applog.FieldComponent+"="+applog.ComponentService)
	assert.Contains(t, out, applog.FieldTxnID+"="+txn.ID)
}
