package requeststore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attendance-backend/lib/kvstore"
	mirrorstore "attendance-backend/lib/kvstore/mirror"
	redisstore "attendance-backend/lib/kvstore/redis"
	"attendance-backend/models"
	requestapimodels "attendance-backend/models/api/request"
	dbmodels "attendance-backend/models/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testKey = "test:requests"

func newTestCache(t *testing.T) (kvstore.Provider, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redisstore.NewInstance(client), mr
}

func newTestStore(t *testing.T) (Provider, *miniredis.Miniredis, string) {
	cache, mr := newTestCache(t)
	mirrorPath := filepath.Join(t.TempDir(), "requests.json")
	store := NewInstance(cache, mirrorstore.NewInstance(mirrorPath), testKey)
	return store, mr, mirrorPath
}

func signupRec(username string, requestedAt time.Time) dbmodels.Request {
	return dbmodels.Request{
		SubjectUsername: username,
		Kind:            models.RequestKindAccountSignup,
		RequestedAt:     requestedAt,
		Payload: dbmodels.RequestPayload{
			Password: "secret123",
			Name:     "Test User",
			Email:    username + "@company.com",
			Role:     models.UserRoleEmployee,
		},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.TODO()

	t.Run(`assigns id and pending status`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)
		require.NotEmpty(t, id)

		rec, err := store.GetByID(ctx, id)
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, models.RequestStatusPending, rec.Status)
		require.False(t, rec.RequestedAt.IsZero())
	})

	t.Run(`second pending request for the same subject is rejected`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		_, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		_, err = store.Create(ctx, signupRec("alice", time.Time{}))
		require.ErrorIs(t, err, models.ErrDuplicateActiveRequest)
	})

	t.Run(`resolved request does not block a new one`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		_, err = store.Resolve(ctx, id, models.RequestStatusRejected, "hrmanager", "duplicate", nil)
		require.Nil(t, err)

		_, err = store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)
	})
}

func TestList(t *testing.T) {
	ctx := context.TODO()

	t.Run(`newest first`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		base := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)
		_, err := store.Create(ctx, signupRec("first", base))
		require.Nil(t, err)
		_, err = store.Create(ctx, signupRec("second", base.Add(time.Minute)))
		require.Nil(t, err)
		_, err = store.Create(ctx, signupRec("third", base.Add(2*time.Minute)))
		require.Nil(t, err)

		list, err := store.List(ctx, requestapimodels.RequestFilter{})
		require.Nil(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "third", list[0].SubjectUsername)
		require.Equal(t, "second", list[1].SubjectUsername)
		require.Equal(t, "first", list[2].SubjectUsername)
	})

	t.Run(`status and kind filters`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)
		_, err = store.Create(ctx, dbmodels.Request{
			SubjectUsername: "john.doe",
			Kind:            models.RequestKindWorkModeChange,
			Payload: dbmodels.RequestPayload{
				CurrentMode:   models.WorkModeInOffice,
				RequestedMode: models.WorkModeFullyRemote,
			},
		})
		require.Nil(t, err)
		_, err = store.Resolve(ctx, id, models.RequestStatusApproved, "hrmanager", "", nil)
		require.Nil(t, err)

		list, err := store.List(ctx, requestapimodels.RequestFilter{Status: models.RequestStatusPending})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "john.doe", list[0].SubjectUsername)

		list, err = store.List(ctx, requestapimodels.RequestFilter{Kind: models.RequestKindAccountSignup})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "alice", list[0].SubjectUsername)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.TODO()

	t.Run(`approve commits terminal state and strips the password`, func(t *testing.T) {
		store, _, mirrorPath := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		rec, err := store.Resolve(ctx, id, models.RequestStatusApproved, "hrmanager", "", nil)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusApproved, rec.Status)
		require.Equal(t, "hrmanager", rec.ResolvedBy)
		require.NotNil(t, rec.ResolvedAt)
		require.Empty(t, rec.Payload.Password)

		// no credential material on disk either
		data, err := os.ReadFile(mirrorPath)
		require.Nil(t, err)
		require.NotContains(t, string(data), "secret123")
	})

	t.Run(`reject keeps the reason and strips the password`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		rec, err := store.Resolve(ctx, id, models.RequestStatusRejected, "hrmanager", "duplicate", nil)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusRejected, rec.Status)
		require.Equal(t, "duplicate", rec.RejectionReason)
		require.Empty(t, rec.Payload.Password)
	})

	t.Run(`second resolution returns AlreadyResolved and changes nothing`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		first, err := store.Resolve(ctx, id, models.RequestStatusApproved, "hrmanager", "", nil)
		require.Nil(t, err)

		_, err = store.Resolve(ctx, id, models.RequestStatusRejected, "techmanager", "late", nil)
		resolvedErr := models.AlreadyResolvedError{}
		require.ErrorAs(t, err, &resolvedErr)
		require.Equal(t, models.RequestStatusApproved, resolvedErr.Status)

		rec, err := store.GetByID(ctx, id)
		require.Nil(t, err)
		require.Equal(t, first.Status, rec.Status)
		require.Equal(t, first.ResolvedBy, rec.ResolvedBy)
		require.Equal(t, first.ResolvedAt.Unix(), rec.ResolvedAt.Unix())
	})

	t.Run(`side effect failure leaves the request pending`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		sideEffectErr := errors.New("directory is down")
		_, err = store.Resolve(ctx, id, models.RequestStatusApproved, "hrmanager", "", func(rec dbmodels.Request) error {
			return sideEffectErr
		})
		require.ErrorIs(t, err, sideEffectErr)

		rec, err := store.GetByID(ctx, id)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusPending, rec.Status)
		require.Equal(t, "secret123", rec.Payload.Password)
	})

	t.Run(`unknown id`, func(t *testing.T) {
		store, _, _ := newTestStore(t)
		_, err := store.Resolve(ctx, "missing", models.RequestStatusApproved, "hrmanager", "", nil)
		require.ErrorIs(t, err, models.ErrRequestNotFound)
	})
}

func TestMirrorFallback(t *testing.T) {
	ctx := context.TODO()

	t.Run(`empty cache is repopulated from the mirror`, func(t *testing.T) {
		cache, mr := newTestCache(t)
		mirrorPath := filepath.Join(t.TempDir(), "requests.json")

		records := []dbmodels.Request{
			signupRec("alice", time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)),
			signupRec("bob", time.Date(2025, 5, 12, 11, 0, 0, 0, time.UTC)),
		}
		records[0].ID = "id-1"
		records[0].Status = models.RequestStatusPending
		records[1].ID = "id-2"
		records[1].Status = models.RequestStatusPending
		data, err := json.Marshal(records)
		require.Nil(t, err)
		require.Nil(t, os.WriteFile(mirrorPath, data, 0600))

		store := NewInstance(cache, mirrorstore.NewInstance(mirrorPath), testKey)
		list, err := store.List(ctx, requestapimodels.RequestFilter{})
		require.Nil(t, err)
		require.Len(t, list, 2)

		cached, err := mr.Get(testKey)
		require.Nil(t, err)
		require.NotEmpty(t, cached)
	})

	t.Run(`malformed mirror is ignored`, func(t *testing.T) {
		cache, _ := newTestCache(t)
		mirrorPath := filepath.Join(t.TempDir(), "requests.json")
		require.Nil(t, os.WriteFile(mirrorPath, []byte("{not json"), 0600))

		store := NewInstance(cache, mirrorstore.NewInstance(mirrorPath), testKey)
		list, err := store.List(ctx, requestapimodels.RequestFilter{})
		require.Nil(t, err)
		require.Empty(t, list)
	})
}

type brokenMirror struct{}

func (brokenMirror) Read() ([]byte, error) {
	return nil, nil
}

func (brokenMirror) Write(data []byte) error {
	return errors.New("disk full")
}

func TestMirrorWriteFailure(t *testing.T) {
	ctx := context.TODO()

	t.Run(`mirror write failure does not fail the operation`, func(t *testing.T) {
		cache, mr := newTestCache(t)
		store := NewInstance(cache, brokenMirror{}, testKey)

		id, err := store.Create(ctx, signupRec("alice", time.Time{}))
		require.Nil(t, err)

		rec, err := store.GetByID(ctx, id)
		require.Nil(t, err)
		require.NotNil(t, rec)

		cached, err := mr.Get(testKey)
		require.Nil(t, err)
		require.NotEmpty(t, cached)
	})
}
