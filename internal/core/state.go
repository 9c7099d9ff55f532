package core

import (
	"github.com/shopspring/decimal"
)

// EntityKind distinguishes what a pending delete points at.
type EntityKind string

const (
	KindTransaction EntityKind = "transaction"
	KindLabel       EntityKind = "label"
)

// PendingDelete marks an entity awaiting the second step of the delete
// confirmation flow.
type PendingDelete struct {
	Kind EntityKind
	ID   string
}

// State is an immutable snapshot of everything the screens render. New states
// are produced only by Reduce; the persistence layer is the single mutable
// boundary.
type State struct {
	Salary     decimal.Decimal
	DaysWorked decimal.Decimal

	Transactions []Transaction
	Labels       []Label
	Summaries    map[string]MonthlySummary

	CurrentMonthYear string

	Filter Filter
	Sort   SortOrder

	// Interaction state. At most one transaction or label may be under edit
	// at a time, and an in-flight add blocks entering an edit.
	Adding     bool
	EditingTxn *Transaction
	EditingLbl *Label
	Pending    *PendingDelete
}

// Event is a user action folded into the state by Reduce.
type Event interface{ isEvent() }

type (
	// StartAdd opens the add-expense sheet.
	StartAdd struct{}
	// CancelAdd closes the add-expense sheet without saving.
	CancelAdd struct{}
	// StartEditTransaction enters the edit flow for an existing transaction.
	StartEditTransaction struct{ Transaction Transaction }
	// StartEditLabel enters the edit flow for an existing label.
	StartEditLabel struct{ Label Label }
	// SaveEdit leaves the edit flow after the change was persisted.
	SaveEdit struct{}
	// CancelEdit leaves the edit flow discarding the change.
	CancelEdit struct{}
	// RequestDelete arms the two-step delete confirmation.
	RequestDelete struct {
		Kind EntityKind
		ID   string
	}
	// ConfirmDelete completes the confirmation; the removal itself happens
	// against the repository before the next snapshot is loaded.
	ConfirmDelete struct{}
	// DismissDelete abandons the confirmation.
	DismissDelete struct{}
	// SetFilter replaces the history search criteria.
	SetFilter struct{ Filter Filter }
	// SetSort replaces the history sort order.
	SetSort struct{ Order SortOrder }
)

func (StartAdd) isEvent()             {}
func (CancelAdd) isEvent()            {}
func (StartEditTransaction) isEvent() {}
func (StartEditLabel) isEvent()       {}
func (SaveEdit) isEvent()             {}
func (CancelEdit) isEvent()           {}
func (RequestDelete) isEvent()        {}
func (ConfirmDelete) isEvent()        {}
func (DismissDelete) isEvent()        {}
func (SetFilter) isEvent()            {}
func (SetSort) isEvent()              {}

// Reduce folds one event into the previous snapshot and returns the next one.
// Invalid transitions are silent no-ops: the previous state comes back
// unchanged rather than an error.
func Reduce(prev State, ev Event) State {
	next := prev
	switch e := ev.(type) {
	case StartAdd:
		if prev.editing() {
			return prev
		}
		next.Adding = true
	case CancelAdd:
		next.Adding = false
	case StartEditTransaction:
		if prev.Adding || prev.editing() {
			return prev
		}
		txn := e.Transaction
		next.EditingTxn = &txn
	case StartEditLabel:
		if prev.Adding || prev.editing() {
			return prev
		}
		lbl := e.Label
		next.EditingLbl = &lbl
	case SaveEdit, CancelEdit:
		next.EditingTxn = nil
		next.EditingLbl = nil
	case RequestDelete:
		if prev.Pending != nil {
			return prev
		}
		next.Pending = &PendingDelete{Kind: e.Kind, ID: e.ID}
	case ConfirmDelete, DismissDelete:
		next.Pending = nil
	case SetFilter:
		next.Filter = e.Filter
	case SetSort:
		next.Sort = e.Order
	}
	return next
}

func (s State) editing() bool {
	return s.EditingTxn != nil || s.EditingLbl != nil
}

// CurrentMonthTransactions returns the transactions in the snapshot's
// effective month.
func (s State) CurrentMonthTransactions() []Transaction {
	return TransactionsForMonth(s.Transactions, s.CurrentMonthYear)
}

// Report derives the headline figures for the snapshot's effective month.
func (s State) Report() MonthReport {
	return ReportForMonth(s.CurrentMonthYear, s.Salary, s.DaysWorked, s.Transactions)
}

// VisibleTransactions applies the snapshot's filter and sort order.
func (s State) VisibleTransactions() []Transaction {
	return SortTransactions(FilterTransactions(s.Transactions, s.Filter), s.Sort)
}
