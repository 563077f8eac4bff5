package requestapimodels

import (
	"time"

	"attendance-backend/models"
	dbmodels "attendance-backend/models/db"

	"github.com/pkg/errors"
)

type SignupData struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"` // defaults to employee
}

func (r SignupData) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

type WorkModeChangeData struct {
	EmployeeID    string          `json:"employee_id"` // directory username of the employee
	RequestedMode models.WorkMode `json:"requested_mode"`
	Reason        string          `json:"reason"`
}

func (r WorkModeChangeData) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	if !r.RequestedMode.IsValid() {
		return errors.Errorf("unknown work mode: %v, expected one of %v", r.RequestedMode, models.AllWorkModes())
	}
	return nil
}

type ResolutionData struct {
	Reason string `json:"reason"`
}

func (r ResolutionData) Validate() error {
	return nil
}

type RequestFilter struct {
	Status models.RequestStatus `json:"status"` // empty = all
	Kind   models.RequestKind   `json:"kind"`   // empty = all
}

func (r RequestFilter) Validate() error {
	if r.Status != "" && !r.Status.IsValid() {
		return errors.Errorf("unknown status: %v", r.Status)
	}
	return nil
}

// RequestView is the reviewer-facing projection of a request.
// Credential material is never part of the view, whatever the status.
type RequestView struct {
	ID              string               `json:"id"`
	SubjectUsername string               `json:"subject_username"`
	Kind            models.RequestKind   `json:"kind"`
	KindName        string               `json:"kind_name"`
	Status          models.RequestStatus `json:"status"`
	StatusName      string               `json:"status_name"`
	Name            string               `json:"name,omitempty"`
	Email           string               `json:"email,omitempty"`
	Role            models.UserRole      `json:"role,omitempty"`
	Department      string               `json:"department,omitempty"`
	Position        string               `json:"position,omitempty"`
	CurrentMode     models.WorkMode      `json:"current_mode,omitempty"`
	RequestedMode   models.WorkMode      `json:"requested_mode,omitempty"`
	Reason          string               `json:"reason,omitempty"`
	RequestedAt     time.Time            `json:"requested_at"`
	ResolvedAt      *time.Time           `json:"resolved_at,omitempty"`
	ResolvedBy      string               `json:"resolved_by,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
}

func RequestConvert(rec dbmodels.Request) RequestView {
	return RequestView{
		ID:              rec.ID,
		SubjectUsername: rec.SubjectUsername,
		Kind:            rec.Kind,
		KindName:        rec.Kind.ToHuman(),
		Status:          rec.Status,
		StatusName:      rec.Status.ToHuman(),
		Name:            rec.Payload.Name,
		Email:           rec.Payload.Email,
		Role:            rec.Payload.Role,
		Department:      rec.Payload.Department,
		Position:        rec.Payload.Position,
		CurrentMode:     rec.Payload.CurrentMode,
		RequestedMode:   rec.Payload.RequestedMode,
		Reason:          rec.Payload.Reason,
		RequestedAt:     rec.RequestedAt,
		ResolvedAt:      rec.ResolvedAt,
		ResolvedBy:      rec.ResolvedBy,
		RejectionReason: rec.RejectionReason,
	}
}
