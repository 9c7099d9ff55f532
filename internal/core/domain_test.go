package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewLabelNormalizesID(t *testing.T) {
	cases := []struct {
		in       string
		wantID   string
		wantName string
	}{
		{"Food", "food", "Food"},
		{"  Groceries  ", "groceries", "Groceries"},
		{"RENT", "rent", "RENT"},
		{"", "", ""},
		{"   ", "", ""},
	}
	for _, tc := range cases {
		l := NewLabel(tc.in, 0x008080)
		if l.ID != tc.wantID || l.Name != tc.wantName {
			t.Fatalf("NewLabel(%q) = {id:%q name:%q}, want {id:%q name:%q}", tc.in, l.ID, l.Name, tc.wantID, tc.wantName)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	now := time.Now()
	valid := NewTransaction("Coffee", dec("3.50"), dec("0.14"), "January 2026", nil, now)
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	blank := valid
	blank.Name = "   "
	if err := blank.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank name: got %v, want ErrEmptyName", err)
	}

	free := valid
	free.Amount = dec("0")
	if err := free.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v, want ErrInvalidAmount", err)
	}
}

func TestSalaryProfileValidate(t *testing.T) {
	cases := []struct {
		name    string
		salary  string
		days    string
		wantErr error
	}{
		{"ok", "4400", "22", nil},
		{"zero salary", "0", "22", ErrInvalidSalary},
		{"negative days", "4400", "-1", ErrInvalidDaysWorked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := SalaryProfile{Salary: dec(tc.salary), DaysWorked: dec(tc.days), MonthYear: "January 2026"}
			if err := p.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// Persisted collections must come back equal after a JSON round trip,
// including the empty list.
func TestTransactionJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	lists := [][]Transaction{
		nil,
		{
			NewTransaction("Coffee", dec("3.50"), dec("0.14"), "January 2026", []string{"food", "fun"}, now),
			NewTransaction("Rent", dec("900"), dec("36"), "January 2026", nil, now),
		},
	}
	for _, in := range lists {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out []Transaction
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(out) != len(in) {
			t.Fatalf("length changed: got %d, want %d", len(out), len(in))
		}
		for i := range in {
			if out[i].ID != in[i].ID || out[i].Name != in[i].Name ||
				!out[i].Amount.Equal(in[i].Amount) || !out[i].TimeCost.Equal(in[i].TimeCost) ||
				out[i].MonthYear != in[i].MonthYear || !out[i].CreatedAt.Equal(in[i].CreatedAt) {
				t.Fatalf("transaction %d changed: got %+v, want %+v", i, out[i], in[i])
			}
			if len(out[i].LabelIDs) != len(in[i].LabelIDs) {
				t.Fatalf("transaction %d label ids changed", i)
			}
		}
	}
}

func TestLabelJSONRoundTrip(t *testing.T) {
	in := []Label{NewLabel("Food", 42), NewLabel("Rent", -7)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out []Label
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != len(in) || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("labels changed: got %v, want %v", out, in)
	}
}
