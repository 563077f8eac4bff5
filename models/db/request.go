package dbmodels

import (
	"time"

	"attendance-backend/models"
	identityapimodels "attendance-backend/models/api/identity"
)

// Request is the persisted record of a signup or work mode change request.
// Records are stored as a JSON array in the key-value store and in the file
// mirror; the json tags are the wire format of both layers.
type Request struct {
	ID              string               `json:"id"`
	SubjectUsername string               `json:"subjectUsername"`
	Kind            models.RequestKind   `json:"kind"`
	Payload         RequestPayload       `json:"payload"`
	Status          models.RequestStatus `json:"status"`
	RequestedAt     time.Time            `json:"requestedAt"`
	ResolvedAt      *time.Time           `json:"resolvedAt,omitempty"`
	ResolvedBy      string               `json:"resolvedBy,omitempty"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
}

// RequestPayload carries the kind-specific fields. Password is plaintext
// credential material and must be gone from the record the moment the
// request leaves pending, whatever the outcome.
type RequestPayload struct {
	// account_signup
	Password   string          `json:"password,omitempty"`
	Name       string          `json:"name,omitempty"`
	Email      string          `json:"email,omitempty"`
	Role       models.UserRole `json:"role,omitempty"`
	Department string          `json:"department,omitempty"`
	Position   string          `json:"position,omitempty"`
	WorkMode   models.WorkMode `json:"workMode,omitempty"`
	HireDate   string          `json:"hireDate,omitempty"`

	// work_mode_change
	CurrentMode   models.WorkMode `json:"currentMode,omitempty"`
	RequestedMode models.WorkMode `json:"requestedMode,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

func (r Request) IsPending() bool {
	return r.Status == models.RequestStatusPending
}

// ToCreateUserRequest maps a signup payload to the directory account shape.
func (p RequestPayload) ToCreateUserRequest(username string) identityapimodels.CreateUserRequest {
	return identityapimodels.CreateUserRequest{
		Username:   username,
		Password:   p.Password,
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		Department: p.Department,
		Position:   p.Position,
		WorkMode:   p.WorkMode,
		HireDate:   p.HireDate,
	}
}
