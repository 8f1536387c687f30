package benefit

import "errors"

var (
	ErrBenefitNotFound     = errors.New("benefit not found")
	ErrDuplicateActiveCode = errors.New("an active benefit with this code already exists")
	ErrBenefitInactive     = errors.New("benefit is already inactive")
)
