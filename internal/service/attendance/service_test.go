package attendance

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/okehris/hris-backend-go/internal/config"
	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
	"github.com/okehris/hris-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-emp-1"

// Monas, central Jakarta.
const (
	branchLat = -6.175392
	branchLon = 106.827153
)

func authedContext(t *testing.T) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "1h")
	tokenString, _, err := jwtService.GenerateAccessToken(testUserID, nil, "employee")
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeBranchRepo struct {
	branches map[string]branch.Branch
}

func (r *fakeBranchRepo) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	r.branches[b.ID] = b
	return b, nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeBranchRepo) List(_ context.Context) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range r.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, b := range r.branches {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	seq     int

	// hideOpenSessions makes GetOpenSession come back empty, the way a
	// concurrent check-in looks before its transaction commits.
	hideOpenSessions bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, rec := range r.records {
		if rec.UserID == a.UserID && rec.CheckOutTime == nil &&
			rec.CheckInTime.Format("2006-01-02") == a.CheckInTime.Format("2006-01-02") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	r.seq++
	a.ID = fmt.Sprintf("att-%d", r.seq)
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetOpenSession(_ context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	if r.hideOpenSessions {
		return nil, nil
	}
	for _, a := range r.records {
		if a.UserID == userID && a.CheckOutTime == nil &&
			!a.CheckInTime.Before(dayStart) && a.CheckInTime.Before(dayEnd) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) CloseSession(_ context.Context, a attendance.Attendance) error {
	existing, ok := r.records[a.ID]
	if !ok || existing.CheckOutTime != nil {
		return attendance.ErrAttendanceNotFound
	}
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) ListWithBranch(_ context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.UserID == userID && !a.CheckInTime.Before(start) && a.CheckInTime.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeQRTokenRepo struct {
	tokens map[string]attendance.QRToken
}

func newFakeQRTokenRepo() *fakeQRTokenRepo {
	return &fakeQRTokenRepo{tokens: map[string]attendance.QRToken{}}
}

func (r *fakeQRTokenRepo) Create(_ context.Context, t attendance.QRToken) (attendance.QRToken, error) {
	t.ID = "qr-" + t.Token[:8]
	r.tokens[t.Token] = t
	return t, nil
}

func (r *fakeQRTokenRepo) Get(_ context.Context, token, branchID string) (attendance.QRToken, error) {
	t, ok := r.tokens[token]
	if !ok || t.BranchID != branchID {
		return attendance.QRToken{}, attendance.ErrTokenExpiredOrInvalid
	}
	return t, nil
}

func (r *fakeQRTokenRepo) Consume(_ context.Context, token, branchID, userID string, at time.Time) error {
	t, ok := r.tokens[token]
	if !ok || t.BranchID != branchID || t.IsUsed || !at.Before(t.ExpiresAt) {
		return attendance.ErrTokenExpiredOrInvalid
	}
	t.IsUsed = true
	t.UsedBy = &userID
	t.UsedAt = &at
	r.tokens[token] = t
	return nil
}

func testConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		Timezone:     "Asia/Jakarta",
		RadiusMeters: 1500,
		QRTokenTTL:   60 * time.Second,
		LateCutoff:   "09:00",
	}
}

type testEnv struct {
	svc        *AttendanceServiceImpl
	attendance *fakeAttendanceRepo
	tokens     *fakeQRTokenRepo
	loc        *time.Location
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	address := "Jl. Medan Merdeka"
	branches := &fakeBranchRepo{branches: map[string]branch.Branch{
		"branch-1": {
			ID:        "branch-1",
			Name:      "Jakarta HQ",
			Code:      "OKE001",
			Address:   &address,
			Latitude:  branchLat,
			Longitude: branchLon,
			IsActive:  true,
		},
		"branch-closed": {
			ID:       "branch-closed",
			Name:     "Closed Branch",
			Code:     "OKE002",
			IsActive: false,
		},
	}}

	attendanceRepo := newFakeAttendanceRepo()
	tokenRepo := newFakeQRTokenRepo()

	svc, err := NewAttendanceService(fakeTxRunner{}, attendanceRepo, tokenRepo, branches, testConfig())
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	return &testEnv{
		svc:        svc.(*AttendanceServiceImpl),
		attendance: attendanceRepo,
		tokens:     tokenRepo,
		loc:        loc,
	}
}

func (e *testEnv) setClock(t time.Time) {
	e.svc.now = func() time.Time { return t }
}

func TestIssueQR(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)
	env.setClock(time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc))

	resp, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.QRImage, "data:image/png;base64,"))
	assert.Equal(t, 60, resp.ExpiresIn)
	assert.Equal(t, "Jakarta HQ", resp.Branch.Name)
	assert.Equal(t, "OKE001", resp.Branch.Code)

	payload, err := attendance.DecodeTokenPayload(resp.Payload)
	require.NoError(t, err)
	assert.Equal(t, "branch-1", payload.BranchID)
	assert.NotEmpty(t, payload.Token)

	// Two calls never share a token.
	resp2, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	payload2, err := attendance.DecodeTokenPayload(resp2.Payload)
	require.NoError(t, err)
	assert.NotEqual(t, payload.Token, payload2.Token)
}

func TestIssueQRInactiveBranch(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)

	_, err := env.svc.IssueQR(ctx, "branch-closed")
	assert.ErrorIs(t, err, branch.ErrBranchInactive)

	_, err = env.svc.IssueQR(ctx, "branch-missing")
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestScanCheckInThenCheckOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)

	morning := time.Date(2026, 9, 1, 8, 30, 0, 0, env.loc)
	env.setClock(morning)

	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	nearBranch := &attendance.Location{Latitude: branchLat + 0.001, Longitude: branchLon}
	resp, err := env.svc.Scan(ctx, attendance.ScanRequest{
		Token:    issued.Payload,
		Location: nearBranch,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeCheckedIn, resp.Outcome)
	assert.Equal(t, attendance.StatusIncomplete, resp.Attendance.Status)

	// The morning token is spent; checking out needs a fresh one.
	evening := morning.Add(9 * time.Hour)
	env.setClock(evening)

	issued2, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	resp2, err := env.svc.Scan(ctx, attendance.ScanRequest{
		Token:    issued2.Payload,
		Location: nearBranch,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeCheckedOut, resp2.Outcome)
	assert.Equal(t, resp.Attendance.ID, resp2.Attendance.ID)
	assert.Equal(t, attendance.StatusPresent, resp2.Attendance.Status)
	require.NotNil(t, resp2.Attendance.CheckOutTime)
}

func TestScanExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)

	issuedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc)
	env.setClock(issuedAt)

	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	// 61 seconds later the 60-second window has closed.
	env.setClock(issuedAt.Add(61 * time.Second))

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	assert.ErrorIs(t, err, attendance.ErrTokenExpiredOrInvalid)
}

func TestScanReusedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)
	env.setClock(time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc))

	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	assert.ErrorIs(t, err, attendance.ErrTokenExpiredOrInvalid)
}

func TestScanConcurrentCheckInConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)
	env.setClock(time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc))

	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	// A second check-in that races past the open-session lookup must surface
	// the uniqueness conflict instead of inserting a duplicate row.
	env.attendance.hideOpenSessions = true

	issued2, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued2.Payload})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestScanMalformedPayload(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)
	env.setClock(time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc))

	_, err := env.svc.Scan(ctx, attendance.ScanRequest{Token: "not-json"})
	assert.ErrorIs(t, err, attendance.ErrMalformedToken)

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: `{"branch_id":"","token":""}`})
	assert.ErrorIs(t, err, attendance.ErrMalformedToken)
}

func TestScanTooFarFromBranch(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)
	env.setClock(time.Date(2026, 9, 1, 8, 0, 0, 0, env.loc))

	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)

	// Roughly 5.5 km north of the branch.
	farAway := &attendance.Location{Latitude: branchLat + 0.05, Longitude: branchLon}
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{
		Token:    issued.Payload,
		Location: farAway,
	})
	assert.ErrorIs(t, err, attendance.ErrTooFarFromBranch)

	// The geofence rejection must not burn the token.
	payload, err := attendance.DecodeTokenPayload(issued.Payload)
	require.NoError(t, err)
	assert.False(t, env.tokens.tokens[payload.Token].IsUsed)

	// The same token still works from a valid position.
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{
		Token:    issued.Payload,
		Location: &attendance.Location{Latitude: branchLat, Longitude: branchLon},
	})
	assert.NoError(t, err)
}

func TestGetReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t)

	// Day one: on time, full day.
	dayOne := time.Date(2026, 9, 1, 8, 30, 0, 0, env.loc)
	env.setClock(dayOne)
	issued, err := env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	env.setClock(dayOne.Add(8*time.Hour + 30*time.Minute))
	issued, err = env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	// Day two: late, full day.
	dayTwo := time.Date(2026, 9, 2, 9, 30, 0, 0, env.loc)
	env.setClock(dayTwo)
	issued, err = env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	env.setClock(dayTwo.Add(8 * time.Hour))
	issued, err = env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	// Day three: never checked out.
	dayThree := time.Date(2026, 9, 3, 8, 0, 0, 0, env.loc)
	env.setClock(dayThree)
	issued, err = env.svc.IssueQR(ctx, "branch-1")
	require.NoError(t, err)
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Token: issued.Payload})
	require.NoError(t, err)

	env.setClock(time.Date(2026, 9, 15, 12, 0, 0, 0, env.loc))
	start := "2026-09-01"
	end := "2026-09-14"
	report, err := env.svc.GetReport(ctx, attendance.ReportFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", report.Period.Start)
	assert.Equal(t, "2026-09-14", report.Period.End)
	require.Len(t, report.Records, 3)

	assert.Equal(t, 3, report.Summary.TotalDays)
	assert.Equal(t, 1, report.Summary.PresentDays)
	assert.Equal(t, 1, report.Summary.LateDays)
	assert.Equal(t, 1, report.Summary.IncompleteDays)
	assert.Equal(t, "16.50", report.Summary.TotalHours)

	byDate := map[string]attendance.ReportRecord{}
	for _, rec := range report.Records {
		byDate[rec.Date] = rec
	}

	onTime := byDate["2026-09-01"]
	assert.Equal(t, attendance.StatusPresent, onTime.Status)
	require.NotNil(t, onTime.Duration)
	assert.Equal(t, "8h 30m", *onTime.Duration)
	require.NotNil(t, onTime.DurationHours)
	assert.Equal(t, "8.50", *onTime.DurationHours)

	late := byDate["2026-09-02"]
	assert.Equal(t, attendance.StatusLate, late.Status)

	incomplete := byDate["2026-09-03"]
	assert.Equal(t, attendance.StatusIncomplete, incomplete.Status)
	assert.Nil(t, incomplete.CheckOut)
}

func TestDeriveStatusCutoffBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	out := time.Date(2026, 9, 1, 17, 0, 0, 0, loc)

	// Exactly 09:00 is on time; 09:01 is late.
	onTime := time.Date(2026, 9, 1, 9, 0, 0, 0, loc)
	assert.Equal(t, attendance.StatusPresent, attendance.DeriveStatus(onTime, &out, loc, 9, 0))

	late := time.Date(2026, 9, 1, 9, 1, 0, 0, loc)
	assert.Equal(t, attendance.StatusLate, attendance.DeriveStatus(late, &out, loc, 9, 0))
}
