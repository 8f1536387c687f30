package payroll

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// Payslip renders a salary record as a PDF document.
func (s *SalaryServiceImpl) Payslip(ctx context.Context, id string) ([]byte, error) {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (NIP %s)", emp.FullName, emp.NIP))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", emp.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", record.PayPeriod.Format("January 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(10)

	payslipLine(pdf, "Base salary", record.BaseSalary)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Allowances")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, code := range sortedCodes(record.Allowances) {
		payslipLine(pdf, code, record.Allowances[code])
	}
	payslipLine(pdf, "Total allowances", record.TotalAllowance)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, code := range sortedCodes(record.Deductions) {
		payslipLine(pdf, code, record.Deductions[code])
	}
	payslipLine(pdf, "BPJS Kesehatan (employee)", record.BPJSKesEmployee)
	payslipLine(pdf, "BPJS Pensiun (employee)", record.BPJSPensiunEmployee)
	payslipLine(pdf, "Total deductions", record.TotalDeduction.Add(record.TotalBPJSEmployee))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Company contributions (informational)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	payslipLine(pdf, "BPJS Kesehatan (company)", record.BPJSKesCompany)
	payslipLine(pdf, "BPJS Ketenagakerjaan (company)", record.BPJSTkCompany)
	payslipLine(pdf, "BPJS Pensiun (company)", record.BPJSPensiunCompany)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	payslipLine(pdf, "Net salary", record.NetSalary)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	return buf.Bytes(), nil
}

func payslipLine(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.Cell(120, 7, label)
	pdf.CellFormat(60, 7, "Rp "+amount.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.Ln(7)
}

func sortedCodes(m salary.AmountMap) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
