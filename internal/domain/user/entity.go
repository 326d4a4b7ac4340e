package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can manage payroll and tickets
	RoleEmployee Role = "employee" // Regular employee, read-only on own records
)

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManagePayroll checks if the role may create or mutate payroll records
func (r Role) CanManagePayroll() bool {
	return r == RoleOwner || r == RoleManager
}
