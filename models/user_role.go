package models

type UserRole string

const (
	UserRoleEmployee   UserRole = "employee"
	UserRoleManager    UserRole = "manager"
	UserRoleSuperAdmin UserRole = "super_admin"
)

var roleHumanName = map[UserRole]string{
	UserRoleEmployee:   "Employee",
	UserRoleManager:    "Manager",
	UserRoleSuperAdmin: "System administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// CanReviewRequests reports whether the role is allowed to resolve
// signup and work mode requests.
func (r UserRole) CanReviewRequests() bool {
	return r == UserRoleManager || r == UserRoleSuperAdmin
}
