package branch

import "errors"

var (
	ErrBranchNotFound       = errors.New("branch not found")
	ErrBranchInactive       = errors.New("branch is not active")
	ErrCodeGenerationFailed = errors.New("could not generate a unique branch code")
)
