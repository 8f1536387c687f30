package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// AmountMap holds benefit code → amount. It serializes to JSON with decimal
// string values, so amounts survive the round trip without binary-float loss.
type AmountMap map[string]decimal.Decimal

// Salary is a computed payroll record for one employee and one calendar
// month. The five BPJS columns are frozen at creation time; only the
// allowance/deduction maps may be edited, and only while the record is draft.
type Salary struct {
	ID         string
	EmployeeID string
	PayPeriod  time.Time // normalized to the first day of the month
	BaseSalary decimal.Decimal

	BPJSKesCompany      decimal.Decimal
	BPJSTkCompany       decimal.Decimal
	BPJSPensiunCompany  decimal.Decimal
	BPJSKesEmployee     decimal.Decimal
	BPJSPensiunEmployee decimal.Decimal

	Allowances AmountMap
	Deductions AmountMap

	TotalBPJSCompany  decimal.Decimal
	TotalBPJSEmployee decimal.Decimal
	TotalAllowance    decimal.Decimal
	TotalDeduction    decimal.Decimal
	NetSalary         decimal.Decimal

	Status     Status
	CreatedBy  string
	ApprovedBy *string
	ApprovedAt *time.Time
	PaidBy     *string
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	// Joined fields
	EmployeeName     *string
	EmployeeNIP      *string
	EmployeePosition *string
}

// PeriodOf normalizes a date to the first day of its month.
func PeriodOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
