package benefit

import "context"

// BenefitRepository defines data access methods for benefit rules.
// Deactivate is the only deletion path; rows are never removed physically.
type BenefitRepository interface {
	Create(ctx context.Context, b Benefit) (Benefit, error)
	GetByID(ctx context.Context, id string) (Benefit, error)
	List(ctx context.Context, category *Category, activeOnly bool) ([]Benefit, error)

	// ExistsActiveCode reports whether an active benefit with the code exists,
	// optionally excluding one row (used when updating that row itself).
	ExistsActiveCode(ctx context.Context, code string, excludeID *string) (bool, error)

	Update(ctx context.Context, b Benefit) (Benefit, error)
	Deactivate(ctx context.Context, id string) error
}
