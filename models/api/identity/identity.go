package identityapimodels

import (
	"attendance-backend/models"
)

// Wire shapes of the identity directory gateway (/api/auth/...).
// Field names follow the directory's JSON contract.

type CreateUserRequest struct {
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	Department string          `json:"department,omitempty"`
	Position   string          `json:"position,omitempty"`
	WorkMode   models.WorkMode `json:"workMode,omitempty"`
	HireDate   string          `json:"hireDate,omitempty"`
}

type CreateUserResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

type CheckUsernameResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Error   string `json:"error"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    *UserDoc `json:"user"`
	Error   string   `json:"error"`
}

// UserDoc is the user document held by the directory.
type UserDoc struct {
	UID        string          `json:"uid"`
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	WorkMode   models.WorkMode `json:"workMode"`
	HireDate   string          `json:"hireDate"`
}

type ListUsersResponse struct {
	Success bool      `json:"success"`
	Users   []UserDoc `json:"users"`
	Error   string    `json:"error"`
}

type GetUserResponse struct {
	Success bool     `json:"success"`
	User    *UserDoc `json:"user"`
	Error   string   `json:"error"`
}

type UpdateUserResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

type ErrorData struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
