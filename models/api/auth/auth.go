package authapimodels

import (
	"attendance-backend/models"

	"github.com/pkg/errors"
)

type LoginData struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func (r LoginData) Validate() error {
	if r.UsernameOrEmail == "" {
		return errors.New("username or email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Role         models.UserRole `json:"role"`
}

type UsernameCheckView struct {
	Username string `json:"username"`
	Exists   bool   `json:"exists"`
}
