package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

const branchColumns = `id, name, code, address, phone_number, email, latitude, longitude, is_active, created_at, updated_at`

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (id, name, code, address, phone_number, email, latitude, longitude, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + branchColumns + `
	`

	var result branch.Branch
	err := q.QueryRow(ctx, query,
		b.Name, b.Code, b.Address, b.PhoneNumber, b.Email, b.Latitude, b.Longitude, b.IsActive,
	).Scan(
		&result.ID, &result.Name, &result.Code, &result.Address, &result.PhoneNumber,
		&result.Email, &result.Latitude, &result.Longitude, &result.IsActive,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return result, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`

	var result branch.Branch
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.Code, &result.Address, &result.PhoneNumber,
		&result.Email, &result.Latitude, &result.Longitude, &result.IsActive,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		var b branch.Branch
		err := rows.Scan(
			&b.ID, &b.Name, &b.Code, &b.Address, &b.PhoneNumber,
			&b.Email, &b.Latitude, &b.Longitude, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return branches, nil
}

// ExistsByCode implements branch.BranchRepository.
func (r *branchRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM branches WHERE code = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check branch code: %w", err)
	}

	return exists, nil
}
