package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/domain/employee"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type SalaryServiceImpl struct {
	db           database.TxRunner
	salaryRepo   salary.SalaryRepository
	benefitRepo  benefit.BenefitRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalaryService(
	db database.TxRunner,
	salaryRepo salary.SalaryRepository,
	benefitRepo benefit.BenefitRepository,
	employeeRepo employee.EmployeeRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		benefitRepo:  benefitRepo,
		employeeRepo: employeeRepo,
	}
}

// Helper to get user_id from JWT context
func actorFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func (s *SalaryServiceImpl) Create(ctx context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	period, err := req.Period()
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	// Statutory amounts are computed from the rules active right now and
	// frozen into the record; later benefit edits never touch it.
	rules, err := s.benefitRepo.List(ctx, nil, true)
	if err != nil {
		return salary.SalaryResponse{}, fmt.Errorf("failed to load active benefits: %w", err)
	}

	bd := Calculate(emp.BaseSalary, rules, req.Allowances, req.Deductions)

	record := salary.Salary{
		EmployeeID: emp.ID,
		PayPeriod:  period,
		BaseSalary: bd.BaseSalary,

		BPJSKesCompany:      bd.BPJSKesCompany,
		BPJSTkCompany:       bd.BPJSTkCompany,
		BPJSPensiunCompany:  bd.BPJSPensiunCompany,
		BPJSKesEmployee:     bd.BPJSKesEmployee,
		BPJSPensiunEmployee: bd.BPJSPensiunEmployee,

		Allowances: bd.Allowances,
		Deductions: bd.Deductions,

		TotalBPJSCompany:  bd.TotalBPJSCompany,
		TotalBPJSEmployee: bd.TotalBPJSEmployee,
		TotalAllowance:    bd.TotalAllowance,
		TotalDeduction:    bd.TotalDeduction,
		NetSalary:         bd.NetSalary,

		Status:    salary.StatusDraft,
		CreatedBy: actor,
	}

	// The pre-check gives a friendly conflict error; the partial unique index
	// on (employee_id, pay_period) closes the race between two creators.
	var created salary.Salary
	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		exists, err := s.salaryRepo.ExistsForPeriod(ctx, emp.ID, period)
		if err != nil {
			return fmt.Errorf("failed to check existing salary: %w", err)
		}
		if exists {
			return salary.ErrDuplicatePeriod
		}

		created, err = s.salaryRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return mapToSalaryResponse(created), nil
}

func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (salary.SalaryResponse, error) {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapToSalaryResponse(record), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.ListFilter) (salary.ListSalaryResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	records, totalCount, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, err
	}

	result := make([]salary.SalaryResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToSalaryResponse(r))
	}

	return salary.ListSalaryResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *SalaryServiceImpl) Update(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	if record.Status != salary.StatusDraft {
		return salary.SalaryResponse{}, salary.ErrInvalidState
	}

	if req.Allowances != nil {
		record.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}

	// Totals recombine the new manual maps with the BPJS amounts frozen at
	// creation; the rules are deliberately not re-read here.
	record.TotalAllowance = SumAmounts(record.Allowances)
	record.TotalDeduction = SumAmounts(record.Deductions)
	record.NetSalary = record.BaseSalary.
		Add(record.TotalAllowance).
		Sub(record.TotalDeduction).
		Sub(record.TotalBPJSEmployee)

	if err := s.salaryRepo.UpdateAmounts(ctx, record); err != nil {
		return salary.SalaryResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *SalaryServiceImpl) Approve(ctx context.Context, id string) (salary.SalaryResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	if err := s.salaryRepo.TransitionStatus(ctx, id, salary.StatusDraft, salary.StatusApproved, actor, time.Now().UTC()); err != nil {
		return salary.SalaryResponse{}, err
	}

	return s.Get(ctx, id)
}

func (s *SalaryServiceImpl) MarkPaid(ctx context.Context, id string) (salary.SalaryResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	if err := s.salaryRepo.TransitionStatus(ctx, id, salary.StatusApproved, salary.StatusPaid, actor, time.Now().UTC()); err != nil {
		return salary.SalaryResponse{}, err
	}

	return s.Get(ctx, id)
}

func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != salary.StatusDraft {
		return salary.ErrInvalidState
	}

	return s.salaryRepo.SoftDelete(ctx, id)
}

// ========== HELPERS ==========

func mapToSalaryResponse(r salary.Salary) salary.SalaryResponse {
	var approvedAtStr, paidAtStr *string
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	return salary.SalaryResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		PayPeriod:  r.PayPeriod.Format("2006-01"),
		BaseSalary: r.BaseSalary,

		BPJSKesCompany:      r.BPJSKesCompany,
		BPJSTkCompany:       r.BPJSTkCompany,
		BPJSPensiunCompany:  r.BPJSPensiunCompany,
		BPJSKesEmployee:     r.BPJSKesEmployee,
		BPJSPensiunEmployee: r.BPJSPensiunEmployee,

		Allowances: r.Allowances,
		Deductions: r.Deductions,

		TotalBPJSCompany:  r.TotalBPJSCompany,
		TotalBPJSEmployee: r.TotalBPJSEmployee,
		TotalAllowance:    r.TotalAllowance,
		TotalDeduction:    r.TotalDeduction,
		NetSalary:         r.NetSalary,

		Status:     string(r.Status),
		ApprovedAt: approvedAtStr,
		PaidAt:     paidAtStr,

		EmployeeName:     r.EmployeeName,
		EmployeeNIP:      r.EmployeeNIP,
		EmployeePosition: r.EmployeePosition,
	}
}
