package payroll

import (
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Breakdown is the fully itemized result of running the active benefit rules
// plus manual entries against a base salary.
type Breakdown struct {
	BaseSalary decimal.Decimal

	BPJSKesCompany      decimal.Decimal
	BPJSTkCompany       decimal.Decimal
	BPJSPensiunCompany  decimal.Decimal
	BPJSKesEmployee     decimal.Decimal
	BPJSPensiunEmployee decimal.Decimal

	Allowances salary.AmountMap
	Deductions salary.AmountMap

	TotalBPJSCompany  decimal.Decimal
	TotalBPJSEmployee decimal.Decimal
	TotalAllowance    decimal.Decimal
	TotalDeduction    decimal.Decimal
	NetSalary         decimal.Decimal
}

// Calculate derives the salary breakdown. Every percentage rule is applied to
// the base salary, never to a running total, so rules cannot compound.
// Manual entries merge in afterwards; a manual entry sharing a code with a
// rule-derived one overwrites it, which is the override mechanism HR uses to
// correct a single month.
//
// Each rule amount is rounded half-up to 2 decimals when derived; the totals
// are plain sums and are not rounded again. An empty rule set is valid and
// yields zero statutory amounts.
func Calculate(baseSalary decimal.Decimal, rules []benefit.Benefit, manualAllowances, manualDeductions salary.AmountMap) Breakdown {
	b := Breakdown{
		BaseSalary: baseSalary,
		Allowances: salary.AmountMap{},
		Deductions: salary.AmountMap{},
	}

	for _, rule := range rules {
		amount := ruleAmount(baseSalary, rule)

		switch rule.Code {
		case benefit.CodeBPJSKesCompany:
			b.BPJSKesCompany = amount
		case benefit.CodeBPJSTkCompany:
			b.BPJSTkCompany = amount
		case benefit.CodeBPJSPensiunCompany:
			b.BPJSPensiunCompany = amount
		case benefit.CodeBPJSKesEmployee:
			b.BPJSKesEmployee = amount
		case benefit.CodeBPJSPensiunEmployee:
			b.BPJSPensiunEmployee = amount
		default:
			switch rule.Category {
			case benefit.CategoryAllowance:
				b.Allowances[rule.Code] = amount
			case benefit.CategoryDeduction:
				b.Deductions[rule.Code] = amount
			}
			// A BPJS-category rule with an unrecognized code has no slot and
			// is skipped, matching how the statutory columns are defined.
		}
	}

	for code, amount := range manualAllowances {
		b.Allowances[code] = amount
	}
	for code, amount := range manualDeductions {
		b.Deductions[code] = amount
	}

	b.TotalBPJSCompany = b.BPJSKesCompany.Add(b.BPJSTkCompany).Add(b.BPJSPensiunCompany)
	b.TotalBPJSEmployee = b.BPJSKesEmployee.Add(b.BPJSPensiunEmployee)
	b.TotalAllowance = SumAmounts(b.Allowances)
	b.TotalDeduction = SumAmounts(b.Deductions)
	b.NetSalary = baseSalary.
		Add(b.TotalAllowance).
		Sub(b.TotalDeduction).
		Sub(b.TotalBPJSEmployee)

	return b
}

func ruleAmount(baseSalary decimal.Decimal, rule benefit.Benefit) decimal.Decimal {
	if rule.IsFixed {
		return rule.FixedAmount.Round(2)
	}
	return baseSalary.Mul(rule.Percentage).Div(oneHundred).Round(2)
}

// SumAmounts totals an amount map.
func SumAmounts(m salary.AmountMap) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range m {
		total = total.Add(amount)
	}
	return total
}
