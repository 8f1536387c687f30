package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetOpenSession returns the record for the user whose check-in falls in
	// [dayStart, dayEnd) and whose check-out is still null, or nil when the
	// user has no open session that day.
	GetOpenSession(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// CloseSession sets the check-out time and location of an open record.
	CloseSession(ctx context.Context, a Attendance) error

	// ListWithBranch returns records joined with their branch for a user and
	// check-in time range, newest first.
	ListWithBranch(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)
}

// QRTokenRepository defines data access methods for attendance QR tokens.
type QRTokenRepository interface {
	Create(ctx context.Context, t QRToken) (QRToken, error)
	Get(ctx context.Context, token, branchID string) (QRToken, error)

	// Consume marks the token used by userID. The update is conditional on
	// is_used = false, so at most one concurrent scan wins; the loser gets
	// ErrTokenExpiredOrInvalid.
	Consume(ctx context.Context, token, branchID, userID string, at time.Time) error
}
