package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Shop manager - schedules, rates, payroll
	RoleEmployee Role = "employee" // Staff - own shifts and payroll
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Profile is the local record of an auth-provider user. ID equals the token subject.
type Profile struct {
	ID        string
	FullName  string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if the profile has the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
