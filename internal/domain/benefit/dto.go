package benefit

import (
	"github.com/okehris/hris-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BenefitResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Category    string          `json:"category"`
	Percentage  decimal.Decimal `json:"percentage"`
	IsFixed     bool            `json:"is_fixed"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
}

type CreateBenefitRequest struct {
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	Category    string           `json:"category"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsFixed     bool             `json:"is_fixed"`
	FixedAmount *decimal.Decimal `json:"fixed_amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *CreateBenefitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidBenefitCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be upper snake case, e.g. BPJS_KES_COMPANY"})
	}
	if !Category(r.Category).Valid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must be one of BPJS_COMPANY, BPJS_EMPLOYEE, ALLOWANCE, DEDUCTION"})
	}
	if r.IsFixed {
		if r.FixedAmount == nil || r.FixedAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "fixed_amount", Message: "fixed_amount must be a non-negative amount"})
		}
	} else {
		if r.Percentage == nil {
			errs = append(errs, validator.ValidationError{Field: "percentage", Message: "percentage is required for non-fixed benefits"})
		} else if r.Percentage.IsNegative() || r.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: "percentage", Message: "percentage must be between 0 and 100"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBenefitRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty"`
	Code        *string          `json:"code,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsFixed     *bool            `json:"is_fixed,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixed_amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateBenefitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Code != nil && !validator.IsValidBenefitCode(*r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be upper snake case"})
	}
	if r.Category != nil && !Category(*r.Category).Valid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must be one of BPJS_COMPANY, BPJS_EMPLOYEE, ALLOWANCE, DEDUCTION"})
	}
	if r.Percentage != nil && (r.Percentage.IsNegative() || r.Percentage.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "percentage", Message: "percentage must be between 0 and 100"})
	}
	if r.FixedAmount != nil && r.FixedAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_amount", Message: "fixed_amount must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
