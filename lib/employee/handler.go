package employeehandler

import (
	"context"
	"time"

	identityclient "attendance-backend/lib/identity/client"
	"attendance-backend/models"
	identityapimodels "attendance-backend/models/api/identity"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider reads and updates employee records. Employees are user documents
// in the identity directory, so the implementation delegates to its client.
type Provider interface {
	GetByUsername(ctx context.Context, username string) (*identityapimodels.UserDoc, error)
	List(ctx context.Context) ([]identityapimodels.UserDoc, error)
	ApplyWorkModeChange(ctx context.Context, username string, newMode models.WorkMode, changedBy string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		client: identityclient.Instance,
	}
}

type impl struct {
	client identityclient.Provider
}

func (i impl) GetByUsername(ctx context.Context, username string) (*identityapimodels.UserDoc, error) {
	rec, err := i.client.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) List(ctx context.Context) ([]identityapimodels.UserDoc, error) {
	return i.client.ListUsers(ctx)
}

func (i impl) ApplyWorkModeChange(ctx context.Context, username string, newMode models.WorkMode, changedBy string) error {
	logger := log.
		WithField("username", username).
		WithField("new_mode", newMode)
	if !newMode.IsValid() {
		return errors.Errorf("unknown work mode: %v", newMode)
	}
	updates := map[string]interface{}{
		"workMode":          newMode,
		"workModeChangedBy": changedBy,
		"workModeChangedAt": time.Now().UTC().Format(time.RFC3339),
	}
	err := i.client.UpdateUser(ctx, username, updates)
	if err != nil {
		logger.WithError(err).Error("employee work mode update failed")
		return err
	}
	logger.Info("employee work mode updated")
	return nil
}
