package salary

import "context"

type SalaryService interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	Get(ctx context.Context, id string) (SalaryResponse, error)
	List(ctx context.Context, filter ListFilter) (ListSalaryResponse, error)
	Update(ctx context.Context, req UpdateSalaryRequest) (SalaryResponse, error)
	Approve(ctx context.Context, id string) (SalaryResponse, error)
	MarkPaid(ctx context.Context, id string) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
	Payslip(ctx context.Context, id string) ([]byte, error)
}
