package salary

import (
	"time"

	"github.com/okehris/hris-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	PayPeriod  string          `json:"pay_period"` // YYYY-MM
	BaseSalary decimal.Decimal `json:"base_salary"`

	BPJSKesCompany      decimal.Decimal `json:"bpjs_kes_company"`
	BPJSTkCompany       decimal.Decimal `json:"bpjs_tk_company"`
	BPJSPensiunCompany  decimal.Decimal `json:"bpjs_pensiun_company"`
	BPJSKesEmployee     decimal.Decimal `json:"bpjs_kes_employee"`
	BPJSPensiunEmployee decimal.Decimal `json:"bpjs_pensiun_employee"`

	Allowances AmountMap `json:"allowances"`
	Deductions AmountMap `json:"deductions"`

	TotalBPJSCompany  decimal.Decimal `json:"total_bpjs_company"`
	TotalBPJSEmployee decimal.Decimal `json:"total_bpjs_employee"`
	TotalAllowance    decimal.Decimal `json:"total_allowance"`
	TotalDeduction    decimal.Decimal `json:"total_deduction"`
	NetSalary         decimal.Decimal `json:"net_salary"`

	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	PaidAt     *string `json:"paid_at,omitempty"`

	EmployeeName     *string `json:"employee_name,omitempty"`
	EmployeeNIP      *string `json:"employee_nip,omitempty"`
	EmployeePosition *string `json:"employee_position,omitempty"`
}

type CreateSalaryRequest struct {
	EmployeeID string    `json:"employee_id"`
	PayPeriod  string    `json:"pay_period"` // YYYY-MM-DD, any day within the month
	Allowances AmountMap `json:"allowances,omitempty"`
	Deductions AmountMap `json:"deductions,omitempty"`
}

func (r *CreateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.PayPeriod); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_period", Message: "pay_period must be a YYYY-MM-DD date"})
	}
	errs = append(errs, validateAmounts("allowances", r.Allowances)...)
	errs = append(errs, validateAmounts("deductions", r.Deductions)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period parses the requested pay period and normalizes it to its month.
func (r *CreateSalaryRequest) Period() (time.Time, error) {
	t, ok := validator.IsValidDate(r.PayPeriod)
	if !ok {
		return time.Time{}, ErrInvalidPayPeriod
	}
	return PeriodOf(t), nil
}

type UpdateSalaryRequest struct {
	ID         string     `json:"-"`
	Allowances *AmountMap `json:"allowances,omitempty"`
	Deductions *AmountMap `json:"deductions,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Allowances != nil {
		errs = append(errs, validateAmounts("allowances", *r.Allowances)...)
	}
	if r.Deductions != nil {
		errs = append(errs, validateAmounts("deductions", *r.Deductions)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAmounts(field string, m AmountMap) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for code, amount := range m {
		if !validator.IsValidBenefitCode(code) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "invalid benefit code: " + code})
		}
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "amount for " + code + " must be non-negative"})
		}
	}
	return errs
}

type ListSalaryResponse struct {
	Data       []SalaryResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
