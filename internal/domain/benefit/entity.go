package benefit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category enum
type Category string

const (
	CategoryBPJSCompany  Category = "BPJS_COMPANY"
	CategoryBPJSEmployee Category = "BPJS_EMPLOYEE"
	CategoryAllowance    Category = "ALLOWANCE"
	CategoryDeduction    Category = "DEDUCTION"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBPJSCompany, CategoryBPJSEmployee, CategoryAllowance, CategoryDeduction:
		return true
	}
	return false
}

// Statutory benefit codes. Amounts for these codes land in dedicated salary
// columns instead of the free-form allowance/deduction maps.
const (
	CodeBPJSKesCompany      = "BPJS_KES_COMPANY"
	CodeBPJSTkCompany       = "BPJS_TK_COMPANY"
	CodeBPJSPensiunCompany  = "BPJS_PENSIUN_COMPANY"
	CodeBPJSKesEmployee     = "BPJS_KES_EMPLOYEE"
	CodeBPJSPensiunEmployee = "BPJS_PENSIUN_EMPLOYEE"
)

// Benefit - a payroll rule, either a percentage of base salary or a fixed
// amount. At most one active benefit may exist per code; deactivated rows
// with the same code stay around for payroll history.
type Benefit struct {
	ID          string
	Name        string
	Code        string
	Category    Category
	Percentage  decimal.Decimal // of base salary, ignored when IsFixed
	IsFixed     bool
	FixedAmount decimal.Decimal // ignored unless IsFixed
	Description *string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
