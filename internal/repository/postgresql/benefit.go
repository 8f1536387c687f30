package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type benefitRepositoryImpl struct {
	db *database.DB
}

func NewBenefitRepository(db *database.DB) benefit.BenefitRepository {
	return &benefitRepositoryImpl{db: db}
}

// Create implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) Create(ctx context.Context, b benefit.Benefit) (benefit.Benefit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO benefits (id, name, code, category, percentage, is_fixed, fixed_amount, description, is_active, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, name, code, category, percentage, is_fixed, fixed_amount, description, is_active, created_by, created_at, updated_at
	`

	var result benefit.Benefit
	err := q.QueryRow(ctx, query,
		b.Name, b.Code, b.Category, b.Percentage, b.IsFixed, b.FixedAmount, b.Description, b.IsActive, b.CreatedBy,
	).Scan(
		&result.ID, &result.Name, &result.Code, &result.Category, &result.Percentage,
		&result.IsFixed, &result.FixedAmount, &result.Description, &result.IsActive,
		&result.CreatedBy, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_benefit_active_code") {
			return benefit.Benefit{}, benefit.ErrDuplicateActiveCode
		}
		return benefit.Benefit{}, fmt.Errorf("failed to create benefit: %w", err)
	}

	return result, nil
}

// GetByID implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) GetByID(ctx context.Context, id string) (benefit.Benefit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, category, percentage, is_fixed, fixed_amount, description, is_active, created_by, created_at, updated_at
		FROM benefits
		WHERE id = $1
	`

	var result benefit.Benefit
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.Code, &result.Category, &result.Percentage,
		&result.IsFixed, &result.FixedAmount, &result.Description, &result.IsActive,
		&result.CreatedBy, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return benefit.Benefit{}, benefit.ErrBenefitNotFound
		}
		return benefit.Benefit{}, fmt.Errorf("failed to get benefit: %w", err)
	}

	return result, nil
}

// List implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) List(ctx context.Context, category *benefit.Category, activeOnly bool) ([]benefit.Benefit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, category, percentage, is_fixed, fixed_amount, description, is_active, created_by, created_at, updated_at
		FROM benefits
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *category)
		argIdx++
	}
	if activeOnly {
		query += " AND is_active = true"
	}

	query += " ORDER BY category ASC, code ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	defer rows.Close()

	var benefits []benefit.Benefit
	for rows.Next() {
		var b benefit.Benefit
		err := rows.Scan(
			&b.ID, &b.Name, &b.Code, &b.Category, &b.Percentage,
			&b.IsFixed, &b.FixedAmount, &b.Description, &b.IsActive,
			&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		benefits = append(benefits, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return benefits, nil
}

// ExistsActiveCode implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) ExistsActiveCode(ctx context.Context, code string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM benefits WHERE code = $1 AND is_active = true`
	args := []interface{}{code}

	if excludeID != nil {
		query += " AND id != $2"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check benefit code: %w", err)
	}

	return exists, nil
}

// Update implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) Update(ctx context.Context, b benefit.Benefit) (benefit.Benefit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE benefits
		SET name = $2, code = $3, category = $4, percentage = $5, is_fixed = $6,
			fixed_amount = $7, description = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, code, category, percentage, is_fixed, fixed_amount, description, is_active, created_by, created_at, updated_at
	`

	var result benefit.Benefit
	err := q.QueryRow(ctx, query,
		b.ID, b.Name, b.Code, b.Category, b.Percentage, b.IsFixed, b.FixedAmount, b.Description,
	).Scan(
		&result.ID, &result.Name, &result.Code, &result.Category, &result.Percentage,
		&result.IsFixed, &result.FixedAmount, &result.Description, &result.IsActive,
		&result.CreatedBy, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return benefit.Benefit{}, benefit.ErrBenefitNotFound
		}
		if strings.Contains(err.Error(), "uk_benefit_active_code") {
			return benefit.Benefit{}, benefit.ErrDuplicateActiveCode
		}
		return benefit.Benefit{}, fmt.Errorf("failed to update benefit: %w", err)
	}

	return result, nil
}

// Deactivate implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE benefits SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate benefit: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return benefit.ErrBenefitNotFound
	}

	return nil
}
