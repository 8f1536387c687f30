package benefit

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/shopspring/decimal"
)

type BenefitServiceImpl struct {
	benefitRepo benefit.BenefitRepository
}

func NewBenefitService(benefitRepo benefit.BenefitRepository) benefit.BenefitService {
	return &BenefitServiceImpl{benefitRepo: benefitRepo}
}

func creatorFromContext(ctx context.Context) (string, error) {
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

func (s *BenefitServiceImpl) Create(ctx context.Context, req benefit.CreateBenefitRequest) (benefit.BenefitResponse, error) {
	if err := req.Validate(); err != nil {
		return benefit.BenefitResponse{}, err
	}

	actor, err := creatorFromContext(ctx)
	if err != nil {
		return benefit.BenefitResponse{}, err
	}

	// Friendly pre-check; the partial unique index on (code) WHERE is_active
	// is the real guarantee under concurrency.
	exists, err := s.benefitRepo.ExistsActiveCode(ctx, req.Code, nil)
	if err != nil {
		return benefit.BenefitResponse{}, fmt.Errorf("failed to check benefit code: %w", err)
	}
	if exists {
		return benefit.BenefitResponse{}, benefit.ErrDuplicateActiveCode
	}

	b := benefit.Benefit{
		Name:      req.Name,
		Code:      req.Code,
		Category:  benefit.Category(req.Category),
		IsFixed:   req.IsFixed,
		IsActive:  true,
		CreatedBy: actor,
	}
	if req.Percentage != nil {
		b.Percentage = req.Percentage.Round(2)
	}
	if req.FixedAmount != nil {
		b.FixedAmount = req.FixedAmount.Round(2)
	}
	b.Description = req.Description

	created, err := s.benefitRepo.Create(ctx, b)
	if err != nil {
		return benefit.BenefitResponse{}, err
	}

	return mapToBenefitResponse(created), nil
}

func (s *BenefitServiceImpl) Get(ctx context.Context, id string) (benefit.BenefitResponse, error) {
	b, err := s.benefitRepo.GetByID(ctx, id)
	if err != nil {
		return benefit.BenefitResponse{}, err
	}
	return mapToBenefitResponse(b), nil
}

func (s *BenefitServiceImpl) List(ctx context.Context, category *benefit.Category, activeOnly bool) ([]benefit.BenefitResponse, error) {
	benefits, err := s.benefitRepo.List(ctx, category, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]benefit.BenefitResponse, 0, len(benefits))
	for _, b := range benefits {
		result = append(result, mapToBenefitResponse(b))
	}

	return result, nil
}

func (s *BenefitServiceImpl) Update(ctx context.Context, req benefit.UpdateBenefitRequest) (benefit.BenefitResponse, error) {
	if err := req.Validate(); err != nil {
		return benefit.BenefitResponse{}, err
	}

	current, err := s.benefitRepo.GetByID(ctx, req.ID)
	if err != nil {
		return benefit.BenefitResponse{}, err
	}

	if req.Code != nil && *req.Code != current.Code {
		exists, err := s.benefitRepo.ExistsActiveCode(ctx, *req.Code, &current.ID)
		if err != nil {
			return benefit.BenefitResponse{}, fmt.Errorf("failed to check benefit code: %w", err)
		}
		if exists {
			return benefit.BenefitResponse{}, benefit.ErrDuplicateActiveCode
		}
		current.Code = *req.Code
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Category != nil {
		current.Category = benefit.Category(*req.Category)
	}
	if req.Percentage != nil {
		current.Percentage = req.Percentage.Round(2)
	}
	if req.IsFixed != nil {
		current.IsFixed = *req.IsFixed
	}
	if req.FixedAmount != nil {
		current.FixedAmount = req.FixedAmount.Round(2)
	}
	if req.Description != nil {
		current.Description = req.Description
	}

	if current.IsFixed && current.FixedAmount.IsNegative() {
		current.FixedAmount = decimal.Zero
	}

	updated, err := s.benefitRepo.Update(ctx, current)
	if err != nil {
		return benefit.BenefitResponse{}, err
	}

	return mapToBenefitResponse(updated), nil
}

// Deactivate is the only deletion path. The row survives so existing salary
// records keep their audit trail.
func (s *BenefitServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.benefitRepo.Deactivate(ctx, id)
}

func mapToBenefitResponse(b benefit.Benefit) benefit.BenefitResponse {
	return benefit.BenefitResponse{
		ID:          b.ID,
		Name:        b.Name,
		Code:        b.Code,
		Category:    string(b.Category),
		Percentage:  b.Percentage,
		IsFixed:     b.IsFixed,
		FixedAmount: b.FixedAmount,
		Description: b.Description,
		IsActive:    b.IsActive,
	}
}
