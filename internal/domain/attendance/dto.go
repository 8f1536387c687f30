package attendance

import (
	"encoding/json"

	"github.com/okehris/hris-backend-go/internal/pkg/validator"
)

// TokenPayload is the JSON object encoded into the QR image. The same shape
// comes back in ScanRequest.Token when a device scans the code.
type TokenPayload struct {
	BranchID  string `json:"branch_id"`
	Token     string `json:"token"`
	Timestamp string `json:"timestamp"` // ISO8601 issue time, informational
}

// DecodeTokenPayload parses a scanned payload string.
func DecodeTokenPayload(raw string) (TokenPayload, error) {
	var p TokenPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return TokenPayload{}, ErrMalformedToken
	}
	if validator.IsEmpty(p.BranchID) || validator.IsEmpty(p.Token) {
		return TokenPayload{}, ErrMalformedToken
	}
	return p, nil
}

func (p TokenPayload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ScanRequest struct {
	Token      string          `json:"token"`
	Location   *Location       `json:"location,omitempty"`
	DeviceInfo json.RawMessage `json:"device_info,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "token is required"})
	}
	if r.Location != nil {
		if !validator.IsValidLatitude(r.Location.Latitude) {
			errs = append(errs, validator.ValidationError{Field: "location.latitude", Message: "latitude must be between -90 and 90"})
		}
		if !validator.IsValidLongitude(r.Location.Longitude) {
			errs = append(errs, validator.ValidationError{Field: "location.longitude", Message: "longitude must be between -180 and 180"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Scan outcomes
const (
	OutcomeCheckedIn  = "checked_in"
	OutcomeCheckedOut = "checked_out"
)

type AttendanceResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BranchID     string    `json:"branch_id"`
	CheckInTime  string    `json:"check_in_time"`
	CheckOutTime *string   `json:"check_out_time,omitempty"`
	CheckIn      *Location `json:"check_in_location,omitempty"`
	CheckOut     *Location `json:"check_out_location,omitempty"`
	Status       string    `json:"status"`
}

type ScanResponse struct {
	Outcome    string             `json:"outcome"`
	Attendance AttendanceResponse `json:"attendance"`
}

type IssueQRResponse struct {
	QRImage   string         `json:"qr_image"` // base64 PNG data URL
	Payload   string         `json:"payload"`
	ExpiresIn int            `json:"expires_in"` // seconds
	Branch    BranchSnapshot `json:"branch"`
}

type BranchSnapshot struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Address *string `json:"address,omitempty"`
}

type ReportFilter struct {
	StartDate *string // YYYY-MM-DD, defaults to start of current month
	EndDate   *string // YYYY-MM-DD, defaults to end of current month
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be a YYYY-MM-DD date"})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be a YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportRecord struct {
	ID            string       `json:"id"`
	Date          string       `json:"date"`
	CheckIn       string       `json:"check_in"`
	CheckOut      *string      `json:"check_out,omitempty"`
	Duration      *string      `json:"duration,omitempty"` // "7h 45m"
	DurationHours *string      `json:"duration_hours,omitempty"`
	Status        string       `json:"status"`
	Branch        ReportBranch `json:"branch"`
}

type ReportBranch struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Code    *string `json:"code,omitempty"`
	Address *string `json:"address,omitempty"`
}

type ReportSummary struct {
	TotalDays      int    `json:"total_days"`
	PresentDays    int    `json:"present_days"`
	LateDays       int    `json:"late_days"`
	IncompleteDays int    `json:"incomplete_days"`
	TotalHours     string `json:"total_hours"`
}

type ReportPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ReportResponse struct {
	Period  ReportPeriod   `json:"period"`
	Records []ReportRecord `json:"records"`
	Summary ReportSummary  `json:"summary"`
}
