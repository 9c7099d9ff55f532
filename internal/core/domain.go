package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// Transaction is a single expense with its time cost stamped at creation
	// time from the salary profile active at that moment. The time cost is
	// never recomputed when the profile later changes.
	Transaction struct {
		ID        string          `json:"id"`
		CreatedAt time.Time       `json:"createdAt"`
		Name      string          `json:"name"`
		Amount    decimal.Decimal `json:"amount"`
		TimeCost  decimal.Decimal `json:"timeCost"`
		MonthYear string          `json:"monthYear"`
		LabelIDs  []string        `json:"labelIds,omitempty"`
	}

	// Label is a user-defined tag. Its ID is the lowercase-trimmed name, so
	// label names are unique per identifier and renaming changes the ID.
	Label struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color int32  `json:"color"`
	}

	// SalaryProfile holds the salary settings for a month.
	SalaryProfile struct {
		Salary     decimal.Decimal `json:"salary"`
		DaysWorked decimal.Decimal `json:"daysWorked"`
		MonthYear  string          `json:"monthYear"`
	}

	// MonthlySummary is the salary snapshot retained per month for history views.
	MonthlySummary struct {
		Salary     decimal.Decimal `json:"salary"`
		DaysWorked decimal.Decimal `json:"daysWorked"`
	}
)

var (
	ErrInvalidSalary     = errors.New("invalid salary")
	ErrInvalidDaysWorked = errors.New("invalid days worked")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyName         = errors.New("empty name")
	ErrNoProfile         = errors.New("no salary profile configured")
	ErrNotFound          = errors.New("not found")
)

// NewTransaction builds a transaction with a fresh identifier. The time cost
// must already have been derived from the profile active right now.
func NewTransaction(name string, amount, timeCost decimal.Decimal, monthYear string, labelIDs []string, now time.Time) Transaction {
	ids := make([]string, len(labelIDs))
	copy(ids, labelIDs)
	return Transaction{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		TimeCost:  timeCost,
		MonthYear: monthYear,
		LabelIDs:  ids,
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.TimeCost.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// HasLabel reports whether the transaction references the given label ID.
func (t Transaction) HasLabel(id string) bool {
	for _, lid := range t.LabelIDs {
		if lid == id {
			return true
		}
	}
	return false
}

// NewLabel derives the label identifier from the normalized name. A blank
// name yields a zero Label, which callers must refuse to store.
func NewLabel(name string, color int32) Label {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Label{}
	}
	return Label{
		ID:    strings.ToLower(trimmed),
		Name:  trimmed,
		Color: color,
	}
}

func (l Label) Validate() error {
	if l.ID == "" || strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p SalaryProfile) Validate() error {
	if !p.Salary.IsPositive() {
		return ErrInvalidSalary
	}
	if !p.DaysWorked.IsPositive() {
		return ErrInvalidDaysWorked
	}
	return nil
}

// NewID returns a fresh unique identifier for a transaction.
func NewID() string {
	return uuid.NewString()
}
