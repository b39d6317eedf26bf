package domain

import "time"

// UserRole is the stored role of a user.
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleHR       UserRole = "HR"
	UserRoleIT       UserRole = "IT"
	UserRoleEmployee UserRole = "EMPLOYEE"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleHR, UserRoleIT, UserRoleEmployee:
		return true
	}
	return false
}

// User is a member of the organization. Manager-hood is never stored on the
// record; it is derived from the number of users whose ManagerID points here.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
	ManagerID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user's stored role is one of roles.
func (u *User) HasRole(roles ...UserRole) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// ReportsTo reports whether managerID is the user's direct manager.
func (u *User) ReportsTo(managerID string) bool {
	return u != nil && u.ManagerID != nil && *u.ManagerID == managerID
}
