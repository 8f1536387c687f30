package attendance

import "context"

type AttendanceService interface {
	// IssueQR mints a fresh single-use token for the branch and renders the
	// QR image. The only way to get a new validity window is to call it again.
	IssueQR(ctx context.Context, branchID string) (IssueQRResponse, error)

	// Scan resolves a scanned payload into a check-in or check-out for the
	// calling user. Token consumption and the attendance mutation happen in
	// one transaction.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	GetReport(ctx context.Context, filter ReportFilter) (ReportResponse, error)
}
