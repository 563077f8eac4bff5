package authhandler

import (
	"context"

	identityclient "attendance-backend/lib/identity/client"
	authutils "attendance-backend/lib/utils/auth-utils"
	"attendance-backend/models"
	authapimodels "attendance-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(ctx context.Context, data authapimodels.LoginData) (*authapimodels.LoginResponse, error)
	CheckUsername(ctx context.Context, username string) (available bool, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		identity: identityclient.Instance,
	}
}

type impl struct {
	identity identityclient.Provider
}

// Login verifies credentials against the identity directory and issues the
// service's own token pair. Passwords are never stored locally.
func (i impl) Login(ctx context.Context, data authapimodels.LoginData) (*authapimodels.LoginResponse, error) {
	logger := log.WithField("username_or_email", data.UsernameOrEmail)
	if err := data.Validate(); err != nil {
		return nil, models.InvalidInputError{Reason: err.Error()}
	}
	user, err := i.identity.Login(ctx, data.UsernameOrEmail, data.Password)
	if err != nil {
		logger.WithError(err).Warn("directory login failed")
		return nil, err
	}
	role := user.Role
	if role == "" {
		role = models.UserRoleEmployee
	}
	accessToken, err := authutils.GetToken(user.Username, user.Name, role)
	if err != nil {
		return nil, errors.Wrap(err, "access token signing failed")
	}
	refreshToken, err := authutils.GetRefreshToken(user.Username, user.Name)
	if err != nil {
		return nil, errors.Wrap(err, "refresh token signing failed")
	}
	logger.Info("user logged in")
	return &authapimodels.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Name:         user.Name,
		Role:         role,
	}, nil
}

func (i impl) CheckUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, models.NewInvalidInput("username is required")
	}
	exists, err := i.identity.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
