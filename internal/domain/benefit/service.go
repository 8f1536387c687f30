package benefit

import "context"

type BenefitService interface {
	Create(ctx context.Context, req CreateBenefitRequest) (BenefitResponse, error)
	Get(ctx context.Context, id string) (BenefitResponse, error)
	List(ctx context.Context, category *Category, activeOnly bool) ([]BenefitResponse, error)
	Update(ctx context.Context, req UpdateBenefitRequest) (BenefitResponse, error)
	Deactivate(ctx context.Context, id string) error
}
