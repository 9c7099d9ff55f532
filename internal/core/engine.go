// Package core holds the pure domain logic: the financial engine converting
// money into hours of work, aggregation over transactions and labels, and the
// view-state reducer. Nothing in this package touches storage or the clock
// except through explicit parameters.
package core

import "github.com/shopspring/decimal"

// hoursPerWorkday is the assumed length of a working day.
var hoursPerWorkday = decimal.NewFromInt(8)

// HourlyRate returns salary / (daysWorked * 8). It returns zero when either
// input is not strictly positive; it never divides by zero.
func HourlyRate(salary, daysWorked decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() || !daysWorked.IsPositive() {
		return decimal.Zero
	}
	return salary.Div(daysWorked.Mul(hoursPerWorkday))
}

// TimeCost converts a monetary amount into the hours of work it represents.
// A non-positive salary or daysWorked yields zero regardless of amount;
// amount itself is not validated here, that is an upstream concern.
func TimeCost(amount, salary, daysWorked decimal.Decimal) decimal.Decimal {
	rate := HourlyRate(salary, daysWorked)
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(rate)
}

// RemainingDays expresses a remaining balance in days of salary:
// (remainingMoney / salary) * daysWorked. Zero when salary is not positive.
// A negative balance produces a negative result; how to display that is a
// presentation decision.
func RemainingDays(remainingMoney, salary, daysWorked decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	return remainingMoney.Div(salary).Mul(daysWorked)
}
