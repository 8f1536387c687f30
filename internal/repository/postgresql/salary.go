package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `
	s.id, s.employee_id, s.pay_period, s.base_salary,
	s.bpjs_kes_company, s.bpjs_tk_company, s.bpjs_pensiun_company,
	s.bpjs_kes_employee, s.bpjs_pensiun_employee,
	s.allowances, s.deductions,
	s.total_bpjs_company, s.total_bpjs_employee, s.total_allowance, s.total_deduction, s.net_salary,
	s.status, s.created_by, s.approved_by, s.approved_at, s.paid_by, s.paid_at,
	s.created_at, s.updated_at, s.deleted_at
`

func scanSalary(row pgx.Row, withEmployee bool) (salary.Salary, error) {
	var rec salary.Salary
	var allowancesBytes, deductionsBytes []byte

	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.PayPeriod, &rec.BaseSalary,
		&rec.BPJSKesCompany, &rec.BPJSTkCompany, &rec.BPJSPensiunCompany,
		&rec.BPJSKesEmployee, &rec.BPJSPensiunEmployee,
		&allowancesBytes, &deductionsBytes,
		&rec.TotalBPJSCompany, &rec.TotalBPJSEmployee, &rec.TotalAllowance, &rec.TotalDeduction, &rec.NetSalary,
		&rec.Status, &rec.CreatedBy, &rec.ApprovedBy, &rec.ApprovedAt, &rec.PaidBy, &rec.PaidAt,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeName, &rec.EmployeeNIP, &rec.EmployeePosition)
	}

	if err := row.Scan(dest...); err != nil {
		return salary.Salary{}, err
	}

	if err := json.Unmarshal(allowancesBytes, &rec.Allowances); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to decode allowances: %w", err)
	}
	if err := json.Unmarshal(deductionsBytes, &rec.Deductions); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to decode deductions: %w", err)
	}

	return rec, nil
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, err := json.Marshal(s.Allowances)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(s.Deductions)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		INSERT INTO salaries (
			id, employee_id, pay_period, base_salary,
			bpjs_kes_company, bpjs_tk_company, bpjs_pensiun_company,
			bpjs_kes_employee, bpjs_pensiun_employee,
			allowances, deductions,
			total_bpjs_company, total_bpjs_employee, total_allowance, total_deduction, net_salary,
			status, created_by, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING id, employee_id, pay_period, base_salary,
			bpjs_kes_company, bpjs_tk_company, bpjs_pensiun_company,
			bpjs_kes_employee, bpjs_pensiun_employee,
			allowances, deductions,
			total_bpjs_company, total_bpjs_employee, total_allowance, total_deduction, net_salary,
			status, created_by, approved_by, approved_at, paid_by, paid_at,
			created_at, updated_at, deleted_at
	`

	rec, err := scanSalary(q.QueryRow(ctx, query,
		s.EmployeeID, s.PayPeriod, s.BaseSalary,
		s.BPJSKesCompany, s.BPJSTkCompany, s.BPJSPensiunCompany,
		s.BPJSKesEmployee, s.BPJSPensiunEmployee,
		allowancesJSON, deductionsJSON,
		s.TotalBPJSCompany, s.TotalBPJSEmployee, s.TotalAllowance, s.TotalDeduction, s.NetSalary,
		s.Status, s.CreatedBy,
	), false)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_employee_period") {
			return salary.Salary{}, salary.ErrDuplicatePeriod
		}
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}

	return rec, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `,
			e.full_name AS employee_name, e.nip, e.position
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.id = $1 AND s.deleted_at IS NULL
	`

	rec, err := scanSalary(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}

	return rec, nil
}

// ExistsForPeriod implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, period time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM salaries
			WHERE employee_id = $1 AND pay_period = $2 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, period).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check salary period: %w", err)
	}

	return exists, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.ListFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE s.deleted_at IS NULL"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.nip ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND s.pay_period >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND s.pay_period <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM salaries s JOIN employees e ON s.employee_id = e.id` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + salaryColumns + `,
			e.full_name AS employee_name, e.nip, e.position
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
	` + where + fmt.Sprintf(" ORDER BY s.pay_period DESC, e.full_name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		rec, err := scanSalary(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return salaries, total, nil
}

// UpdateAmounts implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdateAmounts(ctx context.Context, s salary.Salary) error {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, err := json.Marshal(s.Allowances)
	if err != nil {
		return fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(s.Deductions)
	if err != nil {
		return fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		UPDATE salaries
		SET allowances = $2, deductions = $3,
			total_allowance = $4, total_deduction = $5, net_salary = $6,
			updated_at = NOW()
		WHERE id = $1 AND status = 'draft' AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		s.ID, allowancesJSON, deductionsJSON,
		s.TotalAllowance, s.TotalDeduction, s.NetSalary,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return salary.ErrInvalidState
	}

	return nil
}

// TransitionStatus implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to salary.Status, actor string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	var stampColumns string
	switch to {
	case salary.StatusApproved:
		stampColumns = ", approved_by = $4, approved_at = $5"
	case salary.StatusPaid:
		stampColumns = ", paid_by = $4, paid_at = $5"
	default:
		return fmt.Errorf("unsupported status transition target: %s", to)
	}

	query := fmt.Sprintf(`
		UPDATE salaries
		SET status = $2, updated_at = NOW()%s
		WHERE id = $1 AND status = $3 AND deleted_at IS NULL
	`, stampColumns)

	commandTag, err := q.Exec(ctx, query, id, to, from, actor, at)
	if err != nil {
		return fmt.Errorf("failed to transition salary status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return salary.ErrInvalidState
	}

	return nil
}

// SoftDelete implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'draft' AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return salary.ErrInvalidState
	}

	return nil
}
