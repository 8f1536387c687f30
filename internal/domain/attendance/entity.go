package attendance

import (
	"time"
)

// Attendance status values. Status is derived from the record, never set
// directly by callers.
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusIncomplete = "incomplete"
)

type Attendance struct {
	ID                string
	UserID            string
	BranchID          string
	CheckInTime       time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Status            string
	QRToken           string
	DeviceInfo        *string // opaque JSON blob from the scanning device
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	BranchName    *string
	BranchCode    *string
	BranchAddress *string
}

// QRToken is a single-use attendance token bound to a branch. It is
// acceptable only while now < ExpiresAt and IsUsed is false; there is no way
// to extend or reissue a token in place.
type QRToken struct {
	ID        string
	Token     string
	BranchID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	IsUsed    bool
	UsedBy    *string
	UsedAt    *time.Time
}

// Usable reports whether the token can still be consumed at the given time.
func (t QRToken) Usable(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}

// DeriveStatus computes the read-time status of a record: incomplete until
// checkout, late when the local check-in falls after the cutoff, present
// otherwise. cutoffHour/cutoffMinute are in the given location's local time.
func DeriveStatus(checkIn time.Time, checkOut *time.Time, loc *time.Location, cutoffHour, cutoffMinute int) string {
	if checkOut == nil {
		return StatusIncomplete
	}
	local := checkIn.In(loc)
	if local.Hour() > cutoffHour || (local.Hour() == cutoffHour && local.Minute() > cutoffMinute) {
		return StatusLate
	}
	return StatusPresent
}
