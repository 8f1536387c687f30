package branch

import "time"

// Branch is a reference entity: attendance and payroll read its coordinates
// but never mutate it.
type Branch struct {
	ID          string
	Name        string
	Code        string
	Address     *string
	PhoneNumber *string
	Email       *string
	Latitude    float64
	Longitude   float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
