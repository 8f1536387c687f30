package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type qrTokenRepositoryImpl struct {
	db *database.DB
}

func NewQRTokenRepository(db *database.DB) attendance.QRTokenRepository {
	return &qrTokenRepositoryImpl{db: db}
}

// Create implements attendance.QRTokenRepository.
func (r *qrTokenRepositoryImpl) Create(ctx context.Context, t attendance.QRToken) (attendance.QRToken, error) {
	q := GetQuerier(ctx, r.db)

	t.ID = uuid.New().String()

	query := `
		INSERT INTO attendance_qr_tokens (id, token, branch_id, issued_at, expires_at, is_used)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, token, branch_id, issued_at, expires_at, is_used, used_by, used_at
	`

	var result attendance.QRToken
	err := q.QueryRow(ctx, query, t.ID, t.Token, t.BranchID, t.IssuedAt, t.ExpiresAt).Scan(
		&result.ID, &result.Token, &result.BranchID, &result.IssuedAt,
		&result.ExpiresAt, &result.IsUsed, &result.UsedBy, &result.UsedAt,
	)
	if err != nil {
		return attendance.QRToken{}, fmt.Errorf("failed to create qr token: %w", err)
	}

	return result, nil
}

// Get implements attendance.QRTokenRepository.
func (r *qrTokenRepositoryImpl) Get(ctx context.Context, token, branchID string) (attendance.QRToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, token, branch_id, issued_at, expires_at, is_used, used_by, used_at
		FROM attendance_qr_tokens
		WHERE token = $1 AND branch_id = $2
	`

	var result attendance.QRToken
	err := q.QueryRow(ctx, query, token, branchID).Scan(
		&result.ID, &result.Token, &result.BranchID, &result.IssuedAt,
		&result.ExpiresAt, &result.IsUsed, &result.UsedBy, &result.UsedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.QRToken{}, attendance.ErrTokenExpiredOrInvalid
		}
		return attendance.QRToken{}, fmt.Errorf("failed to get qr token: %w", err)
	}

	return result, nil
}

// Consume implements attendance.QRTokenRepository.
func (r *qrTokenRepositoryImpl) Consume(ctx context.Context, token, branchID, userID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_qr_tokens
		SET is_used = true, used_by = $3, used_at = $4
		WHERE token = $1 AND branch_id = $2 AND is_used = false AND expires_at > $4
	`

	commandTag, err := q.Exec(ctx, query, token, branchID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to consume qr token: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrTokenExpiredOrInvalid
	}

	return nil
}
