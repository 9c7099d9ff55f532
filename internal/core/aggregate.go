package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortOrder selects how transaction lists are ordered for display.
type SortOrder string

const (
	SortNewestFirst    SortOrder = "newest"
	SortOldestFirst    SortOrder = "oldest"
	SortPriceHighToLow SortOrder = "price_desc"
	SortPriceLowToHigh SortOrder = "price_asc"
	SortNameAZ         SortOrder = "name"
)

// Filter describes the history search criteria. Zero values mean "no
// constraint": an empty query matches every name, an empty label set matches
// every transaction, nil price bounds are ignored.
type Filter struct {
	Query    string
	LabelIDs []string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// IsZero reports whether the filter has no active constraint.
func (f Filter) IsZero() bool {
	return f.Query == "" && len(f.LabelIDs) == 0 && f.MinPrice == nil && f.MaxPrice == nil
}

// Matches applies the filter predicates, AND-combined. Label matching is
// any-of within the selected set; price bounds are inclusive.
func (f Filter) Matches(t Transaction) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Query)) {
		return false
	}
	if len(f.LabelIDs) > 0 {
		any := false
		for _, id := range f.LabelIDs {
			if t.HasLabel(id) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if f.MinPrice != nil && t.Amount.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && t.Amount.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// TransactionsForMonth filters by exact month-key equality.
func TransactionsForMonth(all []Transaction, monthKey string) []Transaction {
	var out []Transaction
	for _, t := range all {
		if t.MonthYear == monthKey {
			out = append(out, t)
		}
	}
	return out
}

// TotalSpent sums the amounts of the given transactions, zero for none.
func TotalSpent(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// RemainingMoney is the month's salary minus everything spent in it.
func RemainingMoney(salary decimal.Decimal, transactions []Transaction) decimal.Decimal {
	return salary.Sub(TotalSpent(transactions))
}

// FilterTransactions returns the transactions matching the filter, preserving
// input order.
func FilterTransactions(all []Transaction, f Filter) []Transaction {
	var out []Transaction
	for _, t := range all {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTransactions returns a sorted copy; the input slice is not modified.
func SortTransactions(transactions []Transaction, order SortOrder) []Transaction {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	switch order {
	case SortOldestFirst:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })
	case SortPriceHighToLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount.GreaterThan(sorted[j].Amount) })
	case SortPriceLowToHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount.LessThan(sorted[j].Amount) })
	case SortNameAZ:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	default: // SortNewestFirst
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	}
	return sorted
}

// GroupByMonth buckets transactions by their stored month key and returns the
// keys ordered newest month first. Keys that fail to parse sort as if they
// were now.
func GroupByMonth(transactions []Transaction, now time.Time) ([]string, map[string][]Transaction) {
	groups := make(map[string][]Transaction)
	var keys []string
	for _, t := range transactions {
		if _, seen := groups[t.MonthYear]; !seen {
			keys = append(keys, t.MonthYear)
		}
		groups[t.MonthYear] = append(groups[t.MonthYear], t)
	}
	return SortMonthKeysDesc(keys, now), groups
}

// MonthReport carries the derived figures for one month.
type MonthReport struct {
	MonthYear      string          `json:"monthYear"`
	Salary         decimal.Decimal `json:"salary"`
	DaysWorked     decimal.Decimal `json:"daysWorked"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	RemainingMoney decimal.Decimal `json:"remainingMoney"`
	MoneyDaysLeft  decimal.Decimal `json:"moneyDaysLeft"`
}

// ReportForMonth derives the headline figures for a month from its salary
// snapshot and the full transaction list.
func ReportForMonth(monthKey string, salary, daysWorked decimal.Decimal, all []Transaction) MonthReport {
	monthTxns := TransactionsForMonth(all, monthKey)
	spent := TotalSpent(monthTxns)
	remaining := salary.Sub(spent)
	return MonthReport{
		MonthYear:      monthKey,
		Salary:         salary,
		DaysWorked:     daysWorked,
		TotalSpent:     spent,
		RemainingMoney: remaining,
		MoneyDaysLeft:  RemainingDays(remaining, salary, daysWorked),
	}
}
