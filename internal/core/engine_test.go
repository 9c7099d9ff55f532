package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestHourlyRate(t *testing.T) {
	cases := []struct {
		name       string
		salary     string
		daysWorked string
		want       string
	}{
		{"standard month", "4400", "22", "25"},
		{"fractional result", "1000", "20", "6.25"},
		{"zero salary", "0", "22", "0"},
		{"negative salary", "-100", "22", "0"},
		{"zero days", "4400", "0", "0"},
		{"negative days", "4400", "-1", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HourlyRate(dec(tc.salary), dec(tc.daysWorked))
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("HourlyRate(%s, %s) = %s, want %s", tc.salary, tc.daysWorked, got, tc.want)
			}
		})
	}
}

func TestTimeCost(t *testing.T) {
	cases := []struct {
		name       string
		amount     string
		salary     string
		daysWorked string
		want       string
	}{
		{"hundred at 25/hour", "100", "4400", "22", "4"},
		{"zero amount", "0", "4400", "22", "0"},
		{"half hour", "12.5", "4400", "22", "0.5"},
		{"zero salary guards division", "50", "0", "22", "0"},
		{"negative salary", "50", "-4400", "22", "0"},
		{"zero days worked", "50", "4400", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TimeCost(dec(tc.amount), dec(tc.salary), dec(tc.daysWorked))
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("TimeCost(%s, %s, %s) = %s, want %s", tc.amount, tc.salary, tc.daysWorked, got, tc.want)
			}
		})
	}
}

// TimeCost must agree with amount / (salary / (daysWorked * 8)) whenever the
// inputs are strictly positive.
func TestTimeCostMatchesDefinition(t *testing.T) {
	salaries := []string{"1000", "2500.50", "4400"}
	days := []string{"10", "20.5", "22"}
	amounts := []string{"0", "1", "99.99", "4400"}

	for _, s := range salaries {
		for _, d := range days {
			for _, a := range amounts {
				salary, daysWorked, amount := dec(s), dec(d), dec(a)
				rate := salary.Div(daysWorked.Mul(decimal.NewFromInt(8)))
				want := amount.Div(rate)
				got := TimeCost(amount, salary, daysWorked)
				if !got.Equal(want) {
					t.Fatalf("TimeCost(%s, %s, %s) = %s, want %s", a, s, d, got, want)
				}
			}
		}
	}
}

func TestRemainingDays(t *testing.T) {
	cases := []struct {
		name       string
		remaining  string
		salary     string
		daysWorked string
		want       string
	}{
		{"full balance", "1000", "1000", "22", "22"},
		{"nothing left", "0", "1000", "22", "0"},
		{"partial", "850", "1000", "22", "18.7"},
		{"overspent goes negative", "-100", "1000", "20", "-2"},
		{"zero salary", "500", "0", "22", "0"},
		{"negative salary", "500", "-1000", "22", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RemainingDays(dec(tc.remaining), dec(tc.salary), dec(tc.daysWorked))
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("RemainingDays(%s, %s, %s) = %s, want %s", tc.remaining, tc.salary, tc.daysWorked, got, tc.want)
			}
		})
	}
}

// RemainingDays is linear in the remaining balance.
func TestRemainingDaysLinearity(t *testing.T) {
	salary, days := dec("2000"), dec("20")
	a, b := dec("300"), dec("450")

	sum := RemainingDays(a.Add(b), salary, days)
	parts := RemainingDays(a, salary, days).Add(RemainingDays(b, salary, days))
	if !sum.Equal(parts) {
		t.Fatalf("linearity violated: f(a+b)=%s, f(a)+f(b)=%s", sum, parts)
	}
}
