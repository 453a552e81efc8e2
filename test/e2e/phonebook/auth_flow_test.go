package phonebook_test

import (
	"sync"
	"testing"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	api := startFakeAPI(t)
	dataDir := t.TempDir()
	application := newTestApp(t, api.baseURL(), dataDir)
	ctx := t.Context()

	// Fresh install: nothing persisted, nobody logged in.
	application.Session.Initialize(ctx)
	require.False(t, application.Session.IsAuthenticated())
	require.Nil(t, application.Session.User())

	require.NoError(t, application.Session.Register(ctx, testEmail, testPassword))
	require.NoError(t, application.Session.Login(ctx, testEmail, testPassword))

	require.True(t, application.Session.IsAuthenticated())
	user := application.Session.User()
	require.NotNil(t, user)
	require.Equal(t, testEmail, user.Email)
	require.False(t, user.Is2FAEnabled)
}

func TestDuplicateRegistration(t *testing.T) {
	api := startFakeAPI(t)
	application := newTestApp(t, api.baseURL(), t.TempDir())
	ctx := t.Context()

	require.NoError(t, application.Session.Register(ctx, testEmail, testPassword))

	err := application.Session.Register(ctx, testEmail, "AnotherPass1!")
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 422, apiErr.StatusCode)
	require.Contains(t, apiErr.Detail, "already registered")
}

func TestLoginWrongPassword(t *testing.T) {
	api := startFakeAPI(t)
	api.registerUser(t, testEmail, testPassword)
	application := newTestApp(t, api.baseURL(), t.TempDir())
	ctx := t.Context()

	err := application.Session.Login(ctx, testEmail, "wrong-password")
	require.Error(t, err)
	require.False(t, application.Session.IsAuthenticated())

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}

func TestSessionSurvivesRestart(t *testing.T) {
	api := startFakeAPI(t)
	api.registerUser(t, testEmail, testPassword)
	dataDir := t.TempDir()
	ctx := t.Context()

	first := newTestApp(t, api.baseURL(), dataDir)
	require.NoError(t, first.Session.Login(ctx, testEmail, testPassword))
	require.NoError(t, first.Close())

	// Same data directory, fresh process state: the durable token must
	// bring the session back without a second login.
	second := newTestApp(t, api.baseURL(), dataDir)
	before := api.meCalls.Load()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			second.Session.Initialize(ctx)
		}()
	}
	wg.Wait()

	require.True(t, second.Session.IsAuthenticated())
	require.NotNil(t, second.Session.User())
	require.Equal(t, testEmail, second.Session.User().Email)

	// Concurrent initialization shares one profile fetch.
	require.Equal(t, before+1, api.meCalls.Load())
}

func TestExpiredTokenClearedOnStartup(t *testing.T) {
	api := startFakeAPI(t)
	api.registerUser(t, testEmail, testPassword)
	dataDir := t.TempDir()
	ctx := t.Context()

	// Issue a token that is already stale by the time the next start
	// inspects it.
	api.tokenTTL = -time.Minute
	first := newTestApp(t, api.baseURL(), dataDir)
	require.NoError(t, first.Session.Login(ctx, testEmail, testPassword))
	require.NoError(t, first.Close())

	second := newTestApp(t, api.baseURL(), dataDir)
	second.Session.Initialize(ctx)

	require.False(t, second.Session.IsAuthenticated())
	require.Empty(t, second.Session.Token())

	// The stale token must be gone from disk too: a third start stays
	// logged out without re-inspecting anything.
	require.NoError(t, second.Close())
	third := newTestApp(t, api.baseURL(), dataDir)
	third.Session.Initialize(ctx)
	require.False(t, third.Session.IsAuthenticated())
}

func TestLogoutClearsPersistedState(t *testing.T) {
	api := startFakeAPI(t)
	api.registerUser(t, testEmail, testPassword)
	dataDir := t.TempDir()
	ctx := t.Context()

	first := newTestApp(t, api.baseURL(), dataDir)
	require.NoError(t, first.Session.Login(ctx, testEmail, testPassword))
	first.Session.Logout()
	require.False(t, first.Session.IsAuthenticated())
	require.NoError(t, first.Close())

	second := newTestApp(t, api.baseURL(), dataDir)
	second.Session.Initialize(ctx)
	require.False(t, second.Session.IsAuthenticated())
	require.Nil(t, second.Session.User())
}

func TestUnauthenticatedProfileFetchAbsorbed(t *testing.T) {
	api := startFakeAPI(t)
	application := newTestApp(t, api.baseURL(), t.TempDir())
	ctx := t.Context()

	// No token at all: the client sends no bearer header and the server
	// answers 401. The session absorbs it instead of surfacing an error.
	application.Session.FetchUser(ctx)
	require.Nil(t, application.Session.User())
	require.False(t, application.Session.IsAuthenticated())
}
