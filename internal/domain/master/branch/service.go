package branch

import "context"

type BranchService interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	Get(ctx context.Context, id string) (BranchResponse, error)
	List(ctx context.Context) ([]BranchResponse, error)
}
