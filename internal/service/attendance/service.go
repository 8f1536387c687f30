package attendance

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/okehris/hris-backend-go/internal/config"
	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
	"github.com/okehris/hris-backend-go/internal/pkg/database"
	"github.com/okehris/hris-backend-go/internal/pkg/qrcode"
	"github.com/okehris/hris-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	db             database.TxRunner
	attendanceRepo attendance.AttendanceRepository
	qrTokenRepo    attendance.QRTokenRepository
	branchRepo     branch.BranchRepository

	loc          *time.Location
	radiusMeters float64
	tokenTTL     time.Duration
	cutoffHour   int
	cutoffMinute int

	now func() time.Time
}

func NewAttendanceService(
	db database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	qrTokenRepo attendance.QRTokenRepository,
	branchRepo branch.BranchRepository,
	cfg config.AttendanceConfig,
) (attendance.AttendanceService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance timezone %q: %w", cfg.Timezone, err)
	}

	cutoff, err := time.Parse("15:04", cfg.LateCutoff)
	if err != nil {
		return nil, fmt.Errorf("invalid late cutoff %q: %w", cfg.LateCutoff, err)
	}

	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		qrTokenRepo:    qrTokenRepo,
		branchRepo:     branchRepo,
		loc:            loc,
		radiusMeters:   cfg.RadiusMeters,
		tokenTTL:       cfg.QRTokenTTL,
		cutoffHour:     cutoff.Hour(),
		cutoffMinute:   cutoff.Minute(),
		now:            time.Now,
	}, nil
}

func userFromContext(ctx context.Context) (string, error) {
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

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IssueQR implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) IssueQR(ctx context.Context, branchID string) (attendance.IssueQRResponse, error) {
	br, err := a.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return attendance.IssueQRResponse{}, err
	}
	if !br.IsActive {
		return attendance.IssueQRResponse{}, branch.ErrBranchInactive
	}

	token, err := generateToken()
	if err != nil {
		return attendance.IssueQRResponse{}, err
	}

	nowUTC := a.now().UTC()

	_, err = a.qrTokenRepo.Create(ctx, attendance.QRToken{
		Token:     token,
		BranchID:  br.ID,
		IssuedAt:  nowUTC,
		ExpiresAt: nowUTC.Add(a.tokenTTL),
	})
	if err != nil {
		return attendance.IssueQRResponse{}, fmt.Errorf("failed to store qr token: %w", err)
	}

	payload, err := attendance.TokenPayload{
		BranchID:  br.ID,
		Token:     token,
		Timestamp: nowUTC.Format(time.RFC3339),
	}.Encode()
	if err != nil {
		return attendance.IssueQRResponse{}, fmt.Errorf("failed to encode qr payload: %w", err)
	}

	qrImage, err := qrcode.DataURL(payload, 0)
	if err != nil {
		return attendance.IssueQRResponse{}, fmt.Errorf("failed to render qr image: %w", err)
	}

	return attendance.IssueQRResponse{
		QRImage:   qrImage,
		Payload:   payload,
		ExpiresIn: int(a.tokenTTL.Seconds()),
		Branch: attendance.BranchSnapshot{
			Name:    br.Name,
			Code:    br.Code,
			Address: br.Address,
		},
	}, nil
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	userID, err := userFromContext(ctx)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	payload, err := attendance.DecodeTokenPayload(req.Token)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	token, err := a.qrTokenRepo.Get(ctx, payload.Token, payload.BranchID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	now := a.now()
	if !token.Usable(now) {
		return attendance.ScanResponse{}, attendance.ErrTokenExpiredOrInvalid
	}

	br, err := a.branchRepo.GetByID(ctx, payload.BranchID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	if req.Location != nil {
		if !utils.WithinRadius(req.Location.Latitude, req.Location.Longitude, br.Latitude, br.Longitude, a.radiusMeters) {
			return attendance.ScanResponse{}, attendance.ErrTooFarFromBranch
		}
	}

	localNow := now.In(a.loc)
	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, a.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var deviceInfo *string
	if len(req.DeviceInfo) > 0 {
		str := string(req.DeviceInfo)
		deviceInfo = &str
	}

	// Token consumption and the attendance mutation commit or roll back as a
	// unit; a token is never burned on a failed mutation.
	var record attendance.Attendance
	var outcome string
	err = a.db.RunInTx(ctx, func(ctx context.Context) error {
		if err := a.qrTokenRepo.Consume(ctx, payload.Token, payload.BranchID, userID, now); err != nil {
			return err
		}

		open, err := a.attendanceRepo.GetOpenSession(ctx, userID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		if open != nil {
			// Check-out
			checkOut := now
			open.CheckOutTime = &checkOut
			if req.Location != nil {
				open.CheckOutLatitude = &req.Location.Latitude
				open.CheckOutLongitude = &req.Location.Longitude
			}
			if deviceInfo != nil {
				open.DeviceInfo = deviceInfo
			}
			if err := a.attendanceRepo.CloseSession(ctx, *open); err != nil {
				return err
			}
			record = *open
			outcome = attendance.OutcomeCheckedOut
			return nil
		}

		// Check-in
		data := attendance.Attendance{
			UserID:      userID,
			BranchID:    payload.BranchID,
			CheckInTime: now,
			Status:      attendance.StatusPresent,
			QRToken:     payload.Token,
			DeviceInfo:  deviceInfo,
		}
		if req.Location != nil {
			data.CheckInLatitude = &req.Location.Latitude
			data.CheckInLongitude = &req.Location.Longitude
		}

		created, err := a.attendanceRepo.Create(ctx, data)
		if err != nil {
			return err
		}
		record = created
		outcome = attendance.OutcomeCheckedIn
		return nil
	})
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	return attendance.ScanResponse{
		Outcome:    outcome,
		Attendance: a.mapToAttendanceResponse(record),
	}, nil
}

// GetReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetReport(ctx context.Context, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}

	userID, err := userFromContext(ctx)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	localNow := a.now().In(a.loc)

	// Default to the current month.
	start := time.Date(localNow.Year(), localNow.Month(), 1, 0, 0, 0, 0, a.loc)
	end := start.AddDate(0, 1, 0)

	if filter.StartDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *filter.StartDate, a.loc)
		start = t
	}
	if filter.EndDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *filter.EndDate, a.loc)
		end = t.AddDate(0, 0, 1)
	}

	records, err := a.attendanceRepo.ListWithBranch(ctx, userID, start, end)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	result := attendance.ReportResponse{
		Period: attendance.ReportPeriod{
			Start: start.Format("2006-01-02"),
			End:   end.AddDate(0, 0, -1).Format("2006-01-02"),
		},
		Records: make([]attendance.ReportRecord, 0, len(records)),
	}

	var totalHours float64
	for _, r := range records {
		checkInLocal := r.CheckInTime.In(a.loc)

		rec := attendance.ReportRecord{
			ID:      r.ID,
			Date:    checkInLocal.Format("2006-01-02"),
			CheckIn: checkInLocal.Format("15:04:05"),
			Status:  attendance.DeriveStatus(r.CheckInTime, r.CheckOutTime, a.loc, a.cutoffHour, a.cutoffMinute),
			Branch: attendance.ReportBranch{
				ID:      r.BranchID,
				Name:    r.BranchName,
				Code:    r.BranchCode,
				Address: r.BranchAddress,
			},
		}

		if r.CheckOutTime != nil {
			checkOutLocal := r.CheckOutTime.In(a.loc)
			out := checkOutLocal.Format("15:04:05")
			rec.CheckOut = &out

			d := r.CheckOutTime.Sub(r.CheckInTime)
			hours := int(d.Hours())
			minutes := int(d.Minutes()) % 60
			durationText := fmt.Sprintf("%dh %dm", hours, minutes)
			rec.Duration = &durationText

			durationHours := fmt.Sprintf("%.2f", d.Hours())
			rec.DurationHours = &durationHours
			totalHours += d.Hours()
		}

		switch rec.Status {
		case attendance.StatusPresent:
			result.Summary.PresentDays++
		case attendance.StatusLate:
			result.Summary.LateDays++
		case attendance.StatusIncomplete:
			result.Summary.IncompleteDays++
		}

		result.Records = append(result.Records, rec)
	}

	result.Summary.TotalDays = len(result.Records)
	result.Summary.TotalHours = fmt.Sprintf("%.2f", totalHours)

	return result, nil
}

func (a *AttendanceServiceImpl) mapToAttendanceResponse(r attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		BranchID:    r.BranchID,
		CheckInTime: r.CheckInTime.In(a.loc).Format(time.RFC3339),
		Status:      attendance.DeriveStatus(r.CheckInTime, r.CheckOutTime, a.loc, a.cutoffHour, a.cutoffMinute),
	}

	if r.CheckOutTime != nil {
		str := r.CheckOutTime.In(a.loc).Format(time.RFC3339)
		resp.CheckOutTime = &str
	}
	if r.CheckInLatitude != nil && r.CheckInLongitude != nil {
		resp.CheckIn = &attendance.Location{Latitude: *r.CheckInLatitude, Longitude: *r.CheckInLongitude}
	}
	if r.CheckOutLatitude != nil && r.CheckOutLongitude != nil {
		resp.CheckOut = &attendance.Location{Latitude: *r.CheckOutLatitude, Longitude: *r.CheckOutLongitude}
	}

	return resp
}
