package master

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okehris/hris-backend-go/internal/config"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
)

const maxCodeAttempts = 10

type BranchServiceImpl struct {
	branchRepo branch.BranchRepository
	codePrefix string
	codeLength int
}

func NewBranchService(branchRepo branch.BranchRepository, cfg config.BranchCodeConfig) branch.BranchService {
	return &BranchServiceImpl{
		branchRepo: branchRepo,
		codePrefix: cfg.Prefix,
		codeLength: cfg.Length,
	}
}

// generateCode builds a candidate branch code: the configured prefix followed
// by zero-padded random digits up to the configured total length.
func (s *BranchServiceImpl) generateCode() (string, error) {
	digits := s.codeLength - len(s.codePrefix)
	if digits <= 0 {
		return "", fmt.Errorf("branch code length %d does not fit prefix %q", s.codeLength, s.codePrefix)
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate branch code: %w", err)
	}

	return fmt.Sprintf("%s%0*d", s.codePrefix, digits, n), nil
}

// uniqueCode tries a bounded number of candidates against the store instead
// of retrying forever on collisions.
func (s *BranchServiceImpl) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return "", err
		}

		exists, err := s.branchRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", branch.ErrCodeGenerationFailed
}

// Create implements branch.BranchService.
func (s *BranchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		Name:        req.Name,
		Code:        code,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    true,
	})
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return mapToBranchResponse(created), nil
}

// Get implements branch.BranchService.
func (s *BranchServiceImpl) Get(ctx context.Context, id string) (branch.BranchResponse, error) {
	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return mapToBranchResponse(b), nil
}

// List implements branch.BranchService.
func (s *BranchServiceImpl) List(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	result := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		result = append(result, mapToBranchResponse(b))
	}
	return result, nil
}

func mapToBranchResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Code:        b.Code,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		IsActive:    b.IsActive,
	}
}
