package attendance

import "errors"

// Attendance domain errors
var (
	ErrMalformedToken        = errors.New("qr token payload is malformed")
	ErrTokenExpiredOrInvalid = errors.New("qr code is invalid or has expired")
	ErrTooFarFromBranch      = errors.New("you are too far from the branch location")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedIn      = errors.New("an open attendance session already exists for today")
)
