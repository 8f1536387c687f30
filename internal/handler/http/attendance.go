package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	IssueQR(w http.ResponseWriter, r *http.Request)
	Scan(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) IssueQR(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchId")

	result, err := h.attendanceService.IssueQR(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	var filter attendance.ReportFilter

	if start := r.URL.Query().Get("start"); start != "" {
		filter.StartDate = &start
	}
	if end := r.URL.Query().Get("end"); end != "" {
		filter.EndDate = &end
	}

	result, err := h.attendanceService.GetReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
