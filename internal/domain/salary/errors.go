package salary

import "errors"

var (
	ErrSalaryNotFound   = errors.New("salary record not found")
	ErrDuplicatePeriod  = errors.New("salary for this month already exists")
	ErrInvalidState     = errors.New("salary record is not in a state that allows this operation")
	ErrInvalidPayPeriod = errors.New("invalid pay period")
)
