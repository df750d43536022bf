package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/rest"
)

// memoryPersistence is an in-memory Persistence for tests.
type memoryPersistence struct {
	mu   sync.Mutex
	cred *domain.Credential
}

func (m *memoryPersistence) SaveCredential(ctx context.Context, cred domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cred
	m.cred = &copied
	return nil
}

func (m *memoryPersistence) LoadCredential(ctx context.Context) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil, nil
	}
	copied := *m.cred
	return &copied, nil
}

func (m *memoryPersistence) ClearCredential(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	return nil
}

func (m *memoryPersistence) Close() error { return nil }

func authServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func okAuthHandler(t *testing.T, wantPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		fmt.Fprint(w, `{"token": "bearer-abc", "user": {"id": 42, "email": "alice@example.com", "name": "Alice"}}`)
	}
}

func TestStore_Login(t *testing.T) {
	t.Run("should install and persist the credential on success", func(t *testing.T) {
		server := authServer(t, okAuthHandler(t, "/login"))
		persistence := &memoryPersistence{}
		store := New(server.URL, 2*time.Second, persistence)

		user, err := store.Login(context.Background(), "alice@example.com", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "bearer-abc", store.Token())

		persisted, err := persistence.LoadCredential(context.Background())
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, "bearer-abc", persisted.Token)
	})

	t.Run("should send email and password as JSON", func(t *testing.T) {
		var received map[string]string
		server := authServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			fmt.Fprint(w, `{"token": "x", "user": {"id": 1, "email": "alice@example.com", "name": "Alice"}}`)
		})
		store := New(server.URL, 2*time.Second, &memoryPersistence{})

		_, err := store.Login(context.Background(), "alice@example.com", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", received["email"])
		assert.Equal(t, "hunter2", received["password"])
	})

	t.Run("should surface the server message and leave state untouched on failure", func(t *testing.T) {
		server := authServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": "Invalid email or password"}`)
		})
		persistence := &memoryPersistence{}
		store := New(server.URL, 2*time.Second, persistence)

		user, err := store.Login(context.Background(), "alice@example.com", "wrong")

		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAuthentication))
		assert.Equal(t, "Invalid email or password", errors.GetUserMessage(err))
		assert.False(t, store.IsAuthenticated())
		assert.Equal(t, "", store.Token())

		persisted, perr := persistence.LoadCredential(context.Background())
		require.NoError(t, perr)
		assert.Nil(t, persisted)
	})

	t.Run("should reject invalid input before any network call", func(t *testing.T) {
		called := false
		server := authServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })
		store := New(server.URL, 2*time.Second, &memoryPersistence{})

		_, err := store.Login(context.Background(), "not-an-email", "hunter2")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		assert.False(t, called)
	})
}

func TestStore_Register(t *testing.T) {
	t.Run("should install the credential on success", func(t *testing.T) {
		server := authServer(t, okAuthHandler(t, "/register"))
		store := New(server.URL, 2*time.Second, &memoryPersistence{})

		user, err := store.Register(context.Background(), "alice@example.com", "hunter2", "Alice")

		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("should require a name", func(t *testing.T) {
		server := authServer(t, okAuthHandler(t, "/register"))
		store := New(server.URL, 2*time.Second, &memoryPersistence{})

		_, err := store.Register(context.Background(), "alice@example.com", "hunter2", "")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestStore_Logout(t *testing.T) {
	server := authServer(t, okAuthHandler(t, "/login"))
	persistence := &memoryPersistence{}
	store := New(server.URL, 2*time.Second, persistence)

	_, err := store.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	require.True(t, store.IsAuthenticated())

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.CurrentUser())

	persisted, perr := persistence.LoadCredential(context.Background())
	require.NoError(t, perr)
	assert.Nil(t, persisted)

	// Logout of a logged-out session stays a no-op.
	store.Logout()
	assert.False(t, store.IsAuthenticated())
}

func TestStore_PersistedCredentialSurvivesRestart(t *testing.T) {
	persistence := &memoryPersistence{}
	require.NoError(t, persistence.SaveCredential(context.Background(), domain.Credential{
		Token: "persisted-token",
		User:  domain.User{ID: 7, Email: "bob@example.com", Name: "Bob"},
	}))

	// A fresh store over existing persistence is authenticated without
	// any network call.
	store := New("http://localhost:0", 2*time.Second, persistence)

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "persisted-token", store.Token())
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "Bob", store.CurrentUser().Name)
}

func TestStore_WorksWithoutPersistence(t *testing.T) {
	server := authServer(t, okAuthHandler(t, "/login"))
	store := New(server.URL, 2*time.Second, nil)

	_, err := store.Login(context.Background(), "alice@example.com", "hunter2")

	require.NoError(t, err)
	assert.True(t, store.IsAuthenticated())

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.NoError(t, store.Close())
}

func TestStore_UnauthorizedCallClearsCredential(t *testing.T) {
	// Wired the way cmd/tb does it: the repository client's 401 hook
	// points at Logout, so one rejected token ends the session.
	persistence := &memoryPersistence{}
	require.NoError(t, persistence.SaveCredential(context.Background(), domain.Credential{
		Token: "expired-token",
		User:  domain.User{ID: 7, Email: "bob@example.com", Name: "Bob"},
	}))

	taskServer := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := New(taskServer.URL, 2*time.Second, persistence)
	require.True(t, store.IsAuthenticated())

	repo := rest.New(taskServer.URL, 2*time.Second, store)
	repo.SetUnauthorizedHook(store.Logout)

	_, err := repo.List(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "", store.Token())
}
