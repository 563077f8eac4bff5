package identityclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendance-backend/models"
	identityapimodels "attendance-backend/models/api/identity"

	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (Provider, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &impl{host: server.URL}, server
}

func TestUsernameExists(t *testing.T) {
	ctx := context.TODO()

	t.Run(`existing username`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/check-username/alice", r.URL.Path)
			w.Write([]byte(`{"success":true,"exists":true}`))
		}))
		defer server.Close()

		exists, err := client.UsernameExists(ctx, "alice")
		require.Nil(t, err)
		require.True(t, exists)
	})

	t.Run(`unreachable directory`, func(t *testing.T) {
		server := httptest.NewServer(nil)
		server.Close()
		client := &impl{host: server.URL}

		_, err := client.UsernameExists(ctx, "alice")
		directoryErr := models.DirectoryError{}
		require.ErrorAs(t, err, &directoryErr)
		require.Equal(t, models.DirectoryErrUnavailable, directoryErr.Kind)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.TODO()
	req := identityapimodels.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
		Email:    "alice@company.com",
		Name:     "Alice Cooper",
		Role:     models.UserRoleEmployee,
	}

	t.Run(`created`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/users", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"success":true,"uid":"uid-1"}`))
		}))
		defer server.Close()

		uid, err := client.CreateUser(ctx, req)
		require.Nil(t, err)
		require.Equal(t, "uid-1", uid)
	})

	t.Run(`typed rejection codes`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"email is already in use","code":"email_in_use"}`))
		}))
		defer server.Close()

		_, err := client.CreateUser(ctx, req)
		directoryErr := models.DirectoryError{}
		require.ErrorAs(t, err, &directoryErr)
		require.Equal(t, models.DirectoryErrEmailInUse, directoryErr.Kind)
	})

	t.Run(`server failure maps to unavailable`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"error":"boom"}`))
		}))
		defer server.Close()

		_, err := client.CreateUser(ctx, req)
		directoryErr := models.DirectoryError{}
		require.ErrorAs(t, err, &directoryErr)
		require.Equal(t, models.DirectoryErrUnavailable, directoryErr.Kind)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.TODO()

	t.Run(`successful login returns the user document`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/login", r.URL.Path)
			w.Write([]byte(`{"success":true,"user":{"uid":"uid-1","username":"alice","name":"Alice Cooper","role":"employee","workMode":"in_office"}}`))
		}))
		defer server.Close()

		user, err := client.Login(ctx, "alice", "secret123")
		require.Nil(t, err)
		require.Equal(t, "alice", user.Username)
		require.Equal(t, models.UserRoleEmployee, user.Role)
		require.Equal(t, models.WorkModeInOffice, user.WorkMode)
	})

	t.Run(`bad credentials`, func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
		}))
		defer server.Close()

		_, err := client.Login(ctx, "alice", "wrong")
		require.NotNil(t, err)
		require.Equal(t, "invalid credentials", err.Error())
	})
}
