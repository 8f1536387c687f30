package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, user_id, branch_id, check_in_time,
			check_in_latitude, check_in_longitude,
			status, qr_token, device_info, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, user_id, branch_id, check_in_time, check_out_time,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			status, qr_token, device_info, created_at, updated_at
	`

	var result attendance.Attendance
	err := q.QueryRow(ctx, query,
		a.UserID, a.BranchID, a.CheckInTime,
		a.CheckInLatitude, a.CheckInLongitude,
		a.Status, a.QRToken, a.DeviceInfo,
	).Scan(
		&result.ID, &result.UserID, &result.BranchID, &result.CheckInTime, &result.CheckOutTime,
		&result.CheckInLatitude, &result.CheckInLongitude, &result.CheckOutLatitude, &result.CheckOutLongitude,
		&result.Status, &result.QRToken, &result.DeviceInfo, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendance_open_session") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return result, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenSession(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, branch_id, check_in_time, check_out_time,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			status, qr_token, device_info, created_at, updated_at
		FROM attendances
		WHERE user_id = $1
			AND check_out_time IS NULL
			AND check_in_time >= $2
			AND check_in_time < $3
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, userID, dayStart, dayEnd).Scan(
		&a.ID, &a.UserID, &a.BranchID, &a.CheckInTime, &a.CheckOutTime,
		&a.CheckInLatitude, &a.CheckInLongitude, &a.CheckOutLatitude, &a.CheckOutLongitude,
		&a.Status, &a.QRToken, &a.DeviceInfo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &a, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CloseSession(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2, check_out_latitude = $3, check_out_longitude = $4,
			device_info = COALESCE($5, device_info), updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		a.ID, a.CheckOutTime, a.CheckOutLatitude, a.CheckOutLongitude, a.DeviceInfo,
	)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListWithBranch implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListWithBranch(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.branch_id, a.check_in_time, a.check_out_time,
			a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
			a.status, a.qr_token, a.device_info, a.created_at, a.updated_at,
			b.name AS branch_name, b.code AS branch_code, b.address AS branch_address
		FROM attendances a
		LEFT JOIN branches b ON a.branch_id = b.id
		WHERE a.user_id = $1
			AND a.check_in_time >= $2
			AND a.check_in_time < $3
		ORDER BY a.check_in_time DESC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.UserID, &a.BranchID, &a.CheckInTime, &a.CheckOutTime,
			&a.CheckInLatitude, &a.CheckInLongitude, &a.CheckOutLatitude, &a.CheckOutLongitude,
			&a.Status, &a.QRToken, &a.DeviceInfo, &a.CreatedAt, &a.UpdatedAt,
			&a.BranchName, &a.BranchCode, &a.BranchAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
