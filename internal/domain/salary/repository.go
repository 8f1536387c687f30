package salary

import (
	"context"
	"time"
)

// SalaryRepository defines data access methods for salary records. The
// (employee_id, pay_period) pair is backed by a partial unique index, so
// Create surfaces ErrDuplicatePeriod even when two requests race past
// ExistsForPeriod.
type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	ExistsForPeriod(ctx context.Context, employeeID string, period time.Time) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Salary, int64, error)

	// UpdateAmounts rewrites the manual maps and recomputed totals of a draft
	// record. Fails with ErrInvalidState when the record is not draft.
	UpdateAmounts(ctx context.Context, s Salary) error

	// TransitionStatus performs a conditional one-way move (from → to) and
	// stamps the actor/timestamp columns for the target status. Fails with
	// ErrInvalidState when the record is not currently in `from`.
	TransitionStatus(ctx context.Context, id string, from, to Status, actor string, at time.Time) error

	// SoftDelete marks a draft record deleted. Fails with ErrInvalidState on
	// approved or paid records.
	SoftDelete(ctx context.Context, id string) error
}

type ListFilter struct {
	Page      int
	Limit     int
	Search    string // matches employee name or NIP
	StartDate *time.Time
	EndDate   *time.Time
}
