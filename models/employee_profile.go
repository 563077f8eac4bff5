package models

// EmployeeProfile is the staffing data attached to a directory account.
// A read-only table of these, keyed by username, is injected into the
// request engine to pre-fill profile fields known from onboarding lists.
type EmployeeProfile struct {
	Name       string   `json:"name" yaml:"name"`
	Email      string   `json:"email" yaml:"email"`
	Role       UserRole `json:"role" yaml:"role"`
	Department string   `json:"department" yaml:"department"`
	Position   string   `json:"position" yaml:"position"`
	WorkMode   WorkMode `json:"workMode" yaml:"work_mode"`
	HireDate   string   `json:"hireDate" yaml:"hire_date"`
}
