package requesthandler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"attendance-backend/config"
	employeehandler "attendance-backend/lib/employee"
	identityclient "attendance-backend/lib/identity/client"
	mirrorstore "attendance-backend/lib/kvstore/mirror"
	kvredis "attendance-backend/lib/kvstore/redis"
	requeststore "attendance-backend/lib/request/store"
	"attendance-backend/lib/smtp"
	connectionhub "attendance-backend/lib/ws/hub/connection-hub"
	"attendance-backend/models"
	requestapimodels "attendance-backend/models/api/request"
	dbmodels "attendance-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SubmitSignup(ctx context.Context, data requestapimodels.SignupData) (id string, err error)
	SubmitWorkModeChange(ctx context.Context, data requestapimodels.WorkModeChangeData) (id string, err error)
	GetByID(ctx context.Context, id string) (item requestapimodels.RequestView, err error)
	List(ctx context.Context, filter requestapimodels.RequestFilter) (list []requestapimodels.RequestView, rowCount int64, err error)
	PendingCount(ctx context.Context) (count int, err error)
	Approve(ctx context.Context, id, actor string) error
	Reject(ctx context.Context, id, actor, reason string) error
}

var Instance Provider

// NewHandler wires the engine. The profile table is a read-only
// username->staffing-data map used to pre-fill signup payloads; it is
// injected here instead of living as a package global.
func NewHandler(profiles map[string]models.EmployeeProfile) {
	cache := kvredis.NewInstance(kvredis.Client)
	mirror := mirrorstore.NewInstance(config.Conf.Storage.MirrorPath)
	Instance = impl{
		store:    requeststore.NewInstance(cache, mirror, config.Conf.Storage.RequestsKey),
		identity: identityclient.Instance,
		employee: employeehandler.Instance,
		hub:      connectionhub.Instance,
		notifier: smtp.Instance,
		sender:   config.Conf.Smtp.EmailNotifySender,
		profiles: profiles,
	}
}

type impl struct {
	store    requeststore.Provider
	identity identityclient.Provider
	employee employeehandler.Provider
	hub      connectionhub.Provider
	notifier smtp.Provider
	sender   string
	profiles map[string]models.EmployeeProfile
}

func (i impl) SubmitSignup(ctx context.Context, data requestapimodels.SignupData) (id string, err error) {
	logger := log.WithField("username", data.Username)
	if err = data.Validate(); err != nil {
		return "", models.InvalidInputError{Reason: err.Error()}
	}
	role := data.Role
	if role == "" {
		role = models.UserRoleEmployee
	}

	// cheap local check first, remote directory second
	active, err := i.store.GetActiveBySubject(ctx, data.Username)
	if err != nil {
		return "", err
	}
	if active != nil {
		return "", models.ErrUsernameTaken
	}
	exists, err := i.identity.UsernameExists(ctx, data.Username)
	if err != nil {
		logger.WithError(err).Error("remote username check failed")
		return "", err
	}
	if exists {
		return "", models.ErrUsernameTaken
	}

	rec := dbmodels.Request{
		SubjectUsername: data.Username,
		Kind:            models.RequestKindAccountSignup,
		Payload: dbmodels.RequestPayload{
			Password: data.Password,
			Name:     data.Name,
			Email:    data.Email,
			Role:     role,
			WorkMode: models.WorkModeInOffice,
			HireDate: time.Now().UTC().Format("2006-01-02"),
		},
	}
	if profile, ok := i.profiles[data.Username]; ok {
		rec.Payload.Department = profile.Department
		rec.Payload.Position = profile.Position
		if profile.Role != "" {
			rec.Payload.Role = profile.Role
		}
		if profile.WorkMode.IsValid() {
			rec.Payload.WorkMode = profile.WorkMode
		}
		if profile.HireDate != "" {
			rec.Payload.HireDate = profile.HireDate
		}
	}

	id, err = i.store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateActiveRequest) {
			return "", models.ErrUsernameTaken
		}
		logger.WithError(err).Error("signup request creation failed")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("signup request created")
	i.notifyPendingCount(ctx)
	return id, nil
}

func (i impl) SubmitWorkModeChange(ctx context.Context, data requestapimodels.WorkModeChangeData) (id string, err error) {
	logger := log.WithField("employee_id", data.EmployeeID)
	if err = data.Validate(); err != nil {
		return "", models.InvalidInputError{Reason: err.Error()}
	}
	employee, err := i.employee.GetByUsername(ctx, data.EmployeeID)
	if err != nil {
		logger.WithError(err).Error("employee lookup failed")
		return "", err
	}
	if employee == nil {
		return "", models.NewInvalidInput("employee %v is not known to the directory", data.EmployeeID)
	}
	if employee.WorkMode == data.RequestedMode {
		return "", models.NewInvalidInput("employee already works %s", data.RequestedMode.ToHuman())
	}

	rec := dbmodels.Request{
		SubjectUsername: data.EmployeeID,
		Kind:            models.RequestKindWorkModeChange,
		Payload: dbmodels.RequestPayload{
			Name:          employee.Name,
			Email:         employee.Email,
			CurrentMode:   employee.WorkMode,
			RequestedMode: data.RequestedMode,
			Reason:        data.Reason,
		},
	}
	id, err = i.store.Create(ctx, rec)
	if err != nil {
		if !errors.Is(err, models.ErrDuplicateActiveRequest) {
			logger.WithError(err).Error("work mode request creation failed")
		}
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("requested_mode", data.RequestedMode).
		Info("work mode request created")
	i.notifyPendingCount(ctx)
	return id, nil
}

func (i impl) GetByID(ctx context.Context, id string) (requestapimodels.RequestView, error) {
	rec, err := i.getRec(ctx, id)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	return requestapimodels.RequestConvert(*rec), nil
}

func (i impl) List(ctx context.Context, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error) {
	recList, err := i.store.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("request listing failed")
		return nil, 0, err
	}
	result := make([]requestapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, int64(len(result)), nil
}

func (i impl) PendingCount(ctx context.Context) (int, error) {
	recList, err := i.store.List(ctx, requestapimodels.RequestFilter{Status: models.RequestStatusPending})
	if err != nil {
		return 0, err
	}
	return len(recList), nil
}

// Approve commits the terminal transition only after the directory side
// effect succeeds. A failed side effect leaves the request pending and is
// returned as-is so the reviewer can retry.
func (i impl) Approve(ctx context.Context, id, actor string) error {
	logger := log.
		WithField("rec_id", id).
		WithField("actor", actor)
	sideEffect := func(rec dbmodels.Request) error {
		switch rec.Kind {
		case models.RequestKindAccountSignup:
			return i.createAccount(ctx, rec)
		case models.RequestKindWorkModeChange:
			if err := i.employee.ApplyWorkModeChange(ctx, rec.SubjectUsername, rec.Payload.RequestedMode, actor); err != nil {
				return models.SideEffectError{Cause: err}
			}
			return nil
		}
		return errors.Errorf("unknown request kind: %v", rec.Kind)
	}
	rec, err := i.store.Resolve(ctx, id, models.RequestStatusApproved, actor, "", sideEffect)
	if err != nil {
		logger.WithError(err).Error("request approval failed")
		return err
	}
	logger.Info("request approved")
	i.notifyResolution(*rec)
	i.notifyPendingCount(ctx)
	return nil
}

func (i impl) Reject(ctx context.Context, id, actor, reason string) error {
	logger := log.
		WithField("rec_id", id).
		WithField("actor", actor)
	rec, err := i.store.Resolve(ctx, id, models.RequestStatusRejected, actor, reason, nil)
	if err != nil {
		logger.WithError(err).Error("request rejection failed")
		return err
	}
	logger.Info("request rejected")
	i.notifyResolution(*rec)
	i.notifyPendingCount(ctx)
	return nil
}

func (i impl) createAccount(ctx context.Context, rec dbmodels.Request) error {
	uid, err := i.identity.CreateUser(ctx, rec.Payload.ToCreateUserRequest(rec.SubjectUsername))
	if err != nil {
		return models.SideEffectError{Cause: err}
	}
	log.
		WithField("rec_id", rec.ID).
		WithField("uid", uid).
		Info("directory account created")
	return nil
}

func (i impl) getRec(ctx context.Context, id string) (*dbmodels.Request, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		log.
			WithField("rec_id", id).
			WithError(err).
			Error("request lookup failed")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrRequestNotFound
	}
	return rec, nil
}

// notifyResolution mails the requester about the outcome, best effort.
func (i impl) notifyResolution(rec dbmodels.Request) {
	if i.notifier == nil || rec.Payload.Email == "" {
		return
	}
	subject := fmt.Sprintf("%s %s", rec.Kind.ToHuman(), rec.Status)
	message := fmt.Sprintf("Your %s request was %s by %s.", rec.Kind.ToHuman(), rec.Status, rec.ResolvedBy)
	if rec.RejectionReason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, rec.RejectionReason)
	}
	if err := i.notifier.SendEMail(i.sender, rec.Payload.Email, message, subject); err != nil {
		log.
			WithField("rec_id", rec.ID).
			WithError(err).
			Error("resolution notification email failed")
	}
}

// notifyPendingCount pushes the reviewer badge counter, best effort.
func (i impl) notifyPendingCount(ctx context.Context) {
	if i.hub == nil {
		return
	}
	count, err := i.PendingCount(ctx)
	if err != nil {
		log.WithError(err).Error("pending count refresh failed")
		return
	}
	i.hub.Broadcast(connectionhub.PendingCountMessage(strconv.Itoa(count)))
}
