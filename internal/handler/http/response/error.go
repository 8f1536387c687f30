package response

import (
	"errors"
	"net/http"

	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/domain/employee"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/okehris/hris-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Benefit domain errors
	case errors.Is(err, benefit.ErrBenefitNotFound):
		NotFound(w, "Benefit not found")
	case errors.Is(err, benefit.ErrDuplicateActiveCode):
		Conflict(w, "An active benefit with this code already exists")
	case errors.Is(err, benefit.ErrBenefitInactive):
		Conflict(w, "Benefit is already inactive")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrDuplicatePeriod):
		Conflict(w, "Salary for this employee and month already exists")
	case errors.Is(err, salary.ErrInvalidState):
		Conflict(w, "Salary record is not in a state that allows this operation")
	case errors.Is(err, salary.ErrInvalidPayPeriod):
		BadRequest(w, "Invalid pay period", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMalformedToken):
		BadRequest(w, "QR token payload is malformed", nil)
	case errors.Is(err, attendance.ErrTokenExpiredOrInvalid):
		BadRequest(w, "QR code is invalid or has expired", nil)
	case errors.Is(err, attendance.ErrTooFarFromBranch):
		BadRequest(w, "You are too far from the branch location", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open attendance session already exists for today")

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchInactive):
		BadRequest(w, "Branch is not active", nil)
	case errors.Is(err, branch.ErrCodeGenerationFailed):
		InternalServerError(w, "Could not generate a unique branch code")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
