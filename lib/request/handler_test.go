package requesthandler

import (
	"context"
	"path/filepath"
	"testing"

	mirrorstore "attendance-backend/lib/kvstore/mirror"
	redisstore "attendance-backend/lib/kvstore/redis"
	requeststore "attendance-backend/lib/request/store"
	"attendance-backend/models"
	identityapimodels "attendance-backend/models/api/identity"
	requestapimodels "attendance-backend/models/api/request"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	exists    map[string]bool
	existsErr error
	createErr error
	created   []identityapimodels.CreateUserRequest
}

func (f *fakeIdentity) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.exists[username], nil
}

func (f *fakeIdentity) CreateUser(ctx context.Context, req identityapimodels.CreateUserRequest) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, req)
	return "uid-" + req.Username, nil
}

func (f *fakeIdentity) Login(ctx context.Context, usernameOrEmail, password string) (*identityapimodels.UserDoc, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeIdentity) GetUser(ctx context.Context, username string) (*identityapimodels.UserDoc, error) {
	return nil, nil
}

func (f *fakeIdentity) ListUsers(ctx context.Context) ([]identityapimodels.UserDoc, error) {
	return nil, nil
}

func (f *fakeIdentity) UpdateUser(ctx context.Context, username string, updates map[string]interface{}) error {
	return nil
}

type appliedChange struct {
	username  string
	mode      models.WorkMode
	changedBy string
}

type fakeEmployee struct {
	docs     map[string]*identityapimodels.UserDoc
	applyErr error
	applied  []appliedChange
}

func (f *fakeEmployee) GetByUsername(ctx context.Context, username string) (*identityapimodels.UserDoc, error) {
	return f.docs[username], nil
}

func (f *fakeEmployee) List(ctx context.Context) ([]identityapimodels.UserDoc, error) {
	return nil, nil
}

func (f *fakeEmployee) ApplyWorkModeChange(ctx context.Context, username string, newMode models.WorkMode, changedBy string) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, appliedChange{username: username, mode: newMode, changedBy: changedBy})
	return nil
}

func newTestEngine(t *testing.T, identity *fakeIdentity, employee *fakeEmployee) impl {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := requeststore.NewInstance(
		redisstore.NewInstance(client),
		mirrorstore.NewInstance(filepath.Join(t.TempDir(), "requests.json")),
		"test:requests",
	)
	return impl{
		store:    store,
		identity: identity,
		employee: employee,
		profiles: map[string]models.EmployeeProfile{
			"john.doe": {
				Name:       "John Doe",
				Email:      "john.doe@company.com",
				Role:       models.UserRoleEmployee,
				Department: "Engineering",
				Position:   "Senior AI Engineer",
				WorkMode:   models.WorkModeSemiRemote,
				HireDate:   "2022-06-10",
			},
		},
	}
}

func validSignup(username string) requestapimodels.SignupData {
	return requestapimodels.SignupData{
		Username: username,
		Password: "secret123",
		Name:     "Alice Cooper",
		Email:    username + "@company.com",
	}
}

func TestSubmitSignup(t *testing.T) {
	ctx := context.TODO()

	t.Run(`missing fields are rejected before any check`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{})
		_, err := engine.SubmitSignup(ctx, requestapimodels.SignupData{Username: "alice"})
		invalidErr := models.InvalidInputError{}
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run(`remote duplicate is reported as taken`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{exists: map[string]bool{"alice": true}}, &fakeEmployee{})
		_, err := engine.SubmitSignup(ctx, validSignup("alice"))
		require.ErrorIs(t, err, models.ErrUsernameTaken)
	})

	t.Run(`directory outage blocks the submission`, func(t *testing.T) {
		directoryErr := models.DirectoryError{Kind: models.DirectoryErrUnavailable}
		engine := newTestEngine(t, &fakeIdentity{existsErr: directoryErr}, &fakeEmployee{})
		_, err := engine.SubmitSignup(ctx, validSignup("alice"))
		require.ErrorAs(t, err, &models.DirectoryError{})
	})

	t.Run(`pending request blocks a second submission until rejection`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{})

		id, err := engine.SubmitSignup(ctx, validSignup("alice"))
		require.Nil(t, err)
		require.NotEmpty(t, id)

		_, err = engine.SubmitSignup(ctx, validSignup("alice"))
		require.ErrorIs(t, err, models.ErrUsernameTaken)

		err = engine.Reject(ctx, id, "hrmanager", "duplicate")
		require.Nil(t, err)

		_, err = engine.SubmitSignup(ctx, validSignup("alice"))
		require.Nil(t, err)
	})

	t.Run(`profile table pre-fills staffing fields`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{})

		id, err := engine.SubmitSignup(ctx, validSignup("john.doe"))
		require.Nil(t, err)

		view, err := engine.GetByID(ctx, id)
		require.Nil(t, err)
		require.Equal(t, "Engineering", view.Department)
		require.Equal(t, "Senior AI Engineer", view.Position)
	})
}

func TestApproveSignup(t *testing.T) {
	ctx := context.TODO()

	t.Run(`directory failure leaves the request pending and retryable`, func(t *testing.T) {
		identity := &fakeIdentity{createErr: models.DirectoryError{Kind: models.DirectoryErrUnavailable}}
		engine := newTestEngine(t, identity, &fakeEmployee{})

		id, err := engine.SubmitSignup(ctx, validSignup("alice"))
		require.Nil(t, err)

		err = engine.Approve(ctx, id, "hrmanager")
		sideEffectErr := models.SideEffectError{}
		require.ErrorAs(t, err, &sideEffectErr)

		view, err := engine.GetByID(ctx, id)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusPending, view.Status)

		// directory recovered, same resolution succeeds
		identity.createErr = nil
		err = engine.Approve(ctx, id, "hrmanager")
		require.Nil(t, err)
		require.Len(t, identity.created, 1)
		require.Equal(t, "alice", identity.created[0].Username)
		require.Equal(t, "secret123", identity.created[0].Password)
	})

	t.Run(`approval creates the account before committing`, func(t *testing.T) {
		identity := &fakeIdentity{}
		engine := newTestEngine(t, identity, &fakeEmployee{})

		id, err := engine.SubmitSignup(ctx, validSignup("alice"))
		require.Nil(t, err)

		err = engine.Approve(ctx, id, "hrmanager")
		require.Nil(t, err)
		require.Len(t, identity.created, 1)

		view, err := engine.GetByID(ctx, id)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusApproved, view.Status)
		require.Equal(t, "hrmanager", view.ResolvedBy)
	})
}

func TestWorkModeChange(t *testing.T) {
	ctx := context.TODO()
	johnDoc := &identityapimodels.UserDoc{
		Username: "john.doe",
		Name:     "John Doe",
		Email:    "john.doe@company.com",
		WorkMode: models.WorkModeInOffice,
	}

	t.Run(`unknown employee is rejected`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{docs: map[string]*identityapimodels.UserDoc{}})
		_, err := engine.SubmitWorkModeChange(ctx, requestapimodels.WorkModeChangeData{
			EmployeeID:    "ghost",
			RequestedMode: models.WorkModeFullyRemote,
		})
		invalidErr := models.InvalidInputError{}
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run(`current mode cannot be requested`, func(t *testing.T) {
		engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{docs: map[string]*identityapimodels.UserDoc{"john.doe": johnDoc}})
		_, err := engine.SubmitWorkModeChange(ctx, requestapimodels.WorkModeChangeData{
			EmployeeID:    "john.doe",
			RequestedMode: models.WorkModeInOffice,
		})
		invalidErr := models.InvalidInputError{}
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run(`approval applies the change, a repeat resolution is stale`, func(t *testing.T) {
		employee := &fakeEmployee{docs: map[string]*identityapimodels.UserDoc{"john.doe": johnDoc}}
		engine := newTestEngine(t, &fakeIdentity{}, employee)

		id, err := engine.SubmitWorkModeChange(ctx, requestapimodels.WorkModeChangeData{
			EmployeeID:    "john.doe",
			RequestedMode: models.WorkModeFullyRemote,
			Reason:        "moving away",
		})
		require.Nil(t, err)

		err = engine.Approve(ctx, id, "techmanager")
		require.Nil(t, err)
		require.Len(t, employee.applied, 1)
		require.Equal(t, "john.doe", employee.applied[0].username)
		require.Equal(t, models.WorkModeFullyRemote, employee.applied[0].mode)
		require.Equal(t, "techmanager", employee.applied[0].changedBy)

		err = engine.Approve(ctx, id, "hrmanager")
		resolvedErr := models.AlreadyResolvedError{}
		require.ErrorAs(t, err, &resolvedErr)
		require.Equal(t, models.RequestStatusApproved, resolvedErr.Status)
	})
}

func TestPendingCount(t *testing.T) {
	ctx := context.TODO()
	engine := newTestEngine(t, &fakeIdentity{}, &fakeEmployee{})

	count, err := engine.PendingCount(ctx)
	require.Nil(t, err)
	require.Equal(t, 0, count)

	_, err = engine.SubmitSignup(ctx, validSignup("alice"))
	require.Nil(t, err)
	_, err = engine.SubmitSignup(ctx, validSignup("bob"))
	require.Nil(t, err)

	count, err = engine.PendingCount(ctx)
	require.Nil(t, err)
	require.Equal(t, 2, count)
}
