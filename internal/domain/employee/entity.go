package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the directory entry payroll and attendance read. Each employee
// belongs to exactly one branch and is linked to exactly one user account.
type Employee struct {
	ID         string
	UserID     string
	BranchID   string
	FullName   string
	NIP        string
	Position   string
	BaseSalary decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
