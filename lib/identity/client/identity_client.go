package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"attendance-backend/models"
	identityapimodels "attendance-backend/models/api/identity"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider talks to the hosted identity directory through its HTTP gateway.
// The directory is the authoritative account store; this client carries no
// business logic beyond error classification.
type Provider interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, req identityapimodels.CreateUserRequest) (uid string, err error)
	Login(ctx context.Context, usernameOrEmail, password string) (*identityapimodels.UserDoc, error)
	GetUser(ctx context.Context, username string) (*identityapimodels.UserDoc, error)
	ListUsers(ctx context.Context) ([]identityapimodels.UserDoc, error)
	UpdateUser(ctx context.Context, username string, updates map[string]interface{}) error
}

var Instance Provider

type impl struct {
	host string
}

func NewProvider(host string) {
	Instance = &impl{
		host: host,
	}
}

const (
	checkUsernamePath string = "/api/auth/check-username/%v"
	usersPath         string = "/api/auth/users"
	userPath          string = "/api/auth/users/%v"
	loginPath         string = "/api/auth/login"
)

func (i impl) UsernameExists(ctx context.Context, username string) (bool, error) {
	uri := i.host + fmt.Sprintf(checkUsernamePath, username)
	logger := log.
		WithField("external_request", uri)
	r, _ := http.NewRequestWithContext(ctx, "GET", uri, nil)
	r.Header.Add("Content-Type", "application/json")
	resp := identityapimodels.CheckUsernameResponse{}
	err := i.sendRequest(logger, r, &resp)
	if err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (i impl) CreateUser(ctx context.Context, req identityapimodels.CreateUserRequest) (uid string, err error) {
	uri := i.host + usersPath
	logger := log.
		WithField("username", req.Username).
		WithField("external_request", uri)
	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "request serialization failed")
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	resp := identityapimodels.CreateUserResponse{}

	err = i.sendRequest(logger, r, &resp)
	if err != nil {
		return "", err
	}
	return resp.UID, nil
}

func (i impl) Login(ctx context.Context, usernameOrEmail, password string) (*identityapimodels.UserDoc, error) {
	uri := i.host + loginPath
	logger := log.
		WithField("external_request", uri)
	body, err := json.Marshal(identityapimodels.LoginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "request serialization failed")
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	resp := identityapimodels.LoginResponse{}

	err = i.sendRequest(logger, r, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("directory returned no user document")
	}
	return resp.User, nil
}

func (i impl) GetUser(ctx context.Context, username string) (*identityapimodels.UserDoc, error) {
	uri := i.host + fmt.Sprintf(userPath, username)
	logger := log.
		WithField("external_request", uri)
	r, _ := http.NewRequestWithContext(ctx, "GET", uri, nil)
	r.Header.Add("Content-Type", "application/json")
	resp := identityapimodels.GetUserResponse{}
	err := i.sendRequest(logger, r, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (i impl) ListUsers(ctx context.Context) ([]identityapimodels.UserDoc, error) {
	uri := i.host + usersPath
	logger := log.
		WithField("external_request", uri)
	r, _ := http.NewRequestWithContext(ctx, "GET", uri, nil)
	r.Header.Add("Content-Type", "application/json")
	resp := identityapimodels.ListUsersResponse{}
	err := i.sendRequest(logger, r, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (i impl) UpdateUser(ctx context.Context, username string, updates map[string]interface{}) error {
	uri := i.host + fmt.Sprintf(userPath, username)
	logger := log.
		WithField("username", username).
		WithField("external_request", uri)
	body, err := json.Marshal(updates)
	if err != nil {
		return errors.Wrap(err, "request serialization failed")
	}

	r, _ := http.NewRequestWithContext(ctx, "PATCH", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	return i.sendRequest(logger, r, nil)
}

func (i impl) sendRequest(logger *log.Entry, r *http.Request, resp interface{}) error {
	r.Header.Add("User-Agent", "AttendanceBackend/1.0")
	client := &http.Client{}
	response, err := client.Do(r)
	if err != nil {
		logger.WithError(err).Error("identity directory request failed")
		return models.DirectoryError{Kind: models.DirectoryErrUnavailable}
	}
	defer response.Body.Close()
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil {
			responseBody, _ := io.ReadAll(response.Body)
			err = json.Unmarshal(responseBody, resp)
			if err != nil {
				return errors.Wrap(err, "response deserialization failed")
			}
		}
		return nil
	}

	errorResp := identityapimodels.ErrorData{}
	responseBody, _ := io.ReadAll(response.Body)
	logger = logger.WithField("response_body", string(responseBody))
	if err = json.Unmarshal(responseBody, &errorResp); err != nil {
		logger.WithError(err).Error("error response deserialization failed")
	}
	logger.WithField("status_code", response.StatusCode).Error("identity directory rejected the request")
	if response.StatusCode >= 500 {
		return models.DirectoryError{Kind: models.DirectoryErrUnavailable, Message: errorResp.Error}
	}
	switch models.DirectoryErrorKind(errorResp.Code) {
	case models.DirectoryErrEmailInUse, models.DirectoryErrWeakPassword, models.DirectoryErrInvalidEmail:
		return models.DirectoryError{Kind: models.DirectoryErrorKind(errorResp.Code), Message: errorResp.Error}
	}
	if errorResp.Error != "" {
		return errors.New(errorResp.Error)
	}
	return errors.Errorf("identity directory request failed with status %v", response.StatusCode)
}
