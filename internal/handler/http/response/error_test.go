package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okehris/hris-backend-go/internal/domain/attendance"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/domain/salary"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"benefit not found", benefit.ErrBenefitNotFound, http.StatusNotFound},
		{"duplicate active code", benefit.ErrDuplicateActiveCode, http.StatusConflict},
		{"duplicate salary period", salary.ErrDuplicatePeriod, http.StatusConflict},
		{"invalid salary state", salary.ErrInvalidState, http.StatusConflict},
		{"concurrent check-in", attendance.ErrAlreadyCheckedIn, http.StatusConflict},
		{"expired token", attendance.ErrTokenExpiredOrInvalid, http.StatusBadRequest},
		{"too far from branch", attendance.ErrTooFarFromBranch, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
