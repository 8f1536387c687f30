package payroll

import (
	"testing"

	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pctRule(code string, category benefit.Category, pct string) benefit.Benefit {
	return benefit.Benefit{
		Code:       code,
		Category:   category,
		Percentage: decimal.RequireFromString(pct),
		IsActive:   true,
	}
}

func fixedRule(code string, category benefit.Category, amount string) benefit.Benefit {
	return benefit.Benefit{
		Code:        code,
		Category:    category,
		IsFixed:     true,
		FixedAmount: decimal.RequireFromString(amount),
		IsActive:    true,
	}
}

func statutoryRules() []benefit.Benefit {
	return []benefit.Benefit{
		pctRule(benefit.CodeBPJSKesCompany, benefit.CategoryBPJSCompany, "4"),
		pctRule(benefit.CodeBPJSTkCompany, benefit.CategoryBPJSCompany, "5.7"),
		pctRule(benefit.CodeBPJSPensiunCompany, benefit.CategoryBPJSCompany, "2.85"),
		pctRule(benefit.CodeBPJSKesEmployee, benefit.CategoryBPJSEmployee, "1"),
		pctRule(benefit.CodeBPJSPensiunEmployee, benefit.CategoryBPJSEmployee, "1"),
	}
}

func TestCalculateStatutoryBreakdown(t *testing.T) {
	base := decimal.NewFromInt(5_000_000)

	b := Calculate(base, statutoryRules(), nil, nil)

	assert.True(t, b.BPJSKesCompany.Equal(decimal.NewFromInt(200_000)), "got %s", b.BPJSKesCompany)
	assert.True(t, b.BPJSTkCompany.Equal(decimal.NewFromInt(285_000)), "got %s", b.BPJSTkCompany)
	assert.True(t, b.BPJSPensiunCompany.Equal(decimal.NewFromInt(142_500)), "got %s", b.BPJSPensiunCompany)
	assert.True(t, b.BPJSKesEmployee.Equal(decimal.NewFromInt(50_000)), "got %s", b.BPJSKesEmployee)
	assert.True(t, b.BPJSPensiunEmployee.Equal(decimal.NewFromInt(50_000)), "got %s", b.BPJSPensiunEmployee)

	assert.True(t, b.TotalBPJSCompany.Equal(decimal.NewFromInt(627_500)), "got %s", b.TotalBPJSCompany)
	assert.True(t, b.TotalBPJSEmployee.Equal(decimal.NewFromInt(100_000)), "got %s", b.TotalBPJSEmployee)

	// Company contributions never reduce take-home pay.
	assert.True(t, b.NetSalary.Equal(decimal.NewFromInt(4_900_000)), "got %s", b.NetSalary)
}

func TestCalculatePercentagesApplyToBaseOnly(t *testing.T) {
	base := decimal.NewFromInt(1_000_000)
	rules := []benefit.Benefit{
		pctRule("MEAL", benefit.CategoryAllowance, "5"),
		pctRule("TRANSPORT", benefit.CategoryAllowance, "5"),
	}

	b := Calculate(base, rules, nil, nil)

	// Both rules see the same base; neither sees the other's output.
	assert.True(t, b.Allowances["MEAL"].Equal(decimal.NewFromInt(50_000)))
	assert.True(t, b.Allowances["TRANSPORT"].Equal(decimal.NewFromInt(50_000)))
	assert.True(t, b.TotalAllowance.Equal(decimal.NewFromInt(100_000)))
	assert.True(t, b.NetSalary.Equal(decimal.NewFromInt(1_100_000)))
}

func TestCalculateManualOverridesRuleAmount(t *testing.T) {
	base := decimal.NewFromInt(2_000_000)
	rules := []benefit.Benefit{
		fixedRule("MEAL", benefit.CategoryAllowance, "300000"),
	}
	manual := salary.AmountMap{
		"MEAL": decimal.NewFromInt(150_000),
	}

	b := Calculate(base, rules, manual, nil)

	require.Len(t, b.Allowances, 1)
	assert.True(t, b.Allowances["MEAL"].Equal(decimal.NewFromInt(150_000)))
	assert.True(t, b.NetSalary.Equal(decimal.NewFromInt(2_150_000)))
}

func TestCalculateEmptyRuleSet(t *testing.T) {
	base := decimal.NewFromInt(3_500_000)

	b := Calculate(base, nil, nil, nil)

	assert.True(t, b.TotalBPJSCompany.IsZero())
	assert.True(t, b.TotalBPJSEmployee.IsZero())
	assert.True(t, b.TotalAllowance.IsZero())
	assert.True(t, b.TotalDeduction.IsZero())
	assert.True(t, b.NetSalary.Equal(base))
	assert.NotNil(t, b.Allowances)
	assert.NotNil(t, b.Deductions)
}

func TestCalculateRoundsDerivedAmounts(t *testing.T) {
	// 3.33% of 1,000,001 = 33,300.0333, rounds to 33,300.03
	base := decimal.NewFromInt(1_000_001)
	rules := []benefit.Benefit{
		pctRule("UNION_FEE", benefit.CategoryDeduction, "3.33"),
	}

	b := Calculate(base, rules, nil, nil)

	assert.True(t, b.Deductions["UNION_FEE"].Equal(decimal.RequireFromString("33300.03")), "got %s", b.Deductions["UNION_FEE"])
}

func TestCalculateUnknownBPJSCodeSkipped(t *testing.T) {
	base := decimal.NewFromInt(1_000_000)
	rules := []benefit.Benefit{
		pctRule("BPJS_SOMETHING_ELSE", benefit.CategoryBPJSCompany, "10"),
	}

	b := Calculate(base, rules, nil, nil)

	assert.True(t, b.TotalBPJSCompany.IsZero())
	assert.Empty(t, b.Allowances)
	assert.Empty(t, b.Deductions)
	assert.True(t, b.NetSalary.Equal(base))
}

func TestCalculateNetFormula(t *testing.T) {
	base := decimal.NewFromInt(4_000_000)
	rules := append(statutoryRules(),
		fixedRule("MEAL", benefit.CategoryAllowance, "500000"),
		fixedRule("LOAN", benefit.CategoryDeduction, "250000"),
	)

	b := Calculate(base, rules, nil, nil)

	want := base.
		Add(b.TotalAllowance).
		Sub(b.TotalDeduction).
		Sub(b.TotalBPJSEmployee)
	assert.True(t, b.NetSalary.Equal(want), "net %s, want %s", b.NetSalary, want)
}
