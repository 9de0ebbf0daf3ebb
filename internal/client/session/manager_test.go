package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/legalchicks/lcen-portal/internal/client/client"
	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/client/repositories/metadata"
	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin  = models.User{ID: "1", Name: "Admin User", Email: "admin@legalchicks.vip", Role: common.RoleAdmin, Visibility: common.VisibilityPublic}
	member = models.User{ID: "7", Name: "Test", Email: "t@x.com", Role: common.RoleMember, Visibility: common.VisibilityPublic}
)

type fixture struct {
	api   *fakeAPI
	store *metadata.MemoryRepository
	nav   *recordingNav
	m     *Manager
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{api: &fakeAPI{}, store: metadata.NewMemoryRepository(), nav: &recordingNav{}}
	f.m = NewManager(f.api, f.store, f.nav, nil, opts)
	return f
}

func (f *fixture) persist(t *testing.T, token string, u models.User) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, metadata.KeyAuthToken, []byte(token)))
	require.NoError(t, metadata.SetJSON(ctx, f.store, metadata.KeyCurrentUser, u))
}

func (f *fixture) storedUser(t *testing.T) (models.User, bool) {
	t.Helper()
	var u models.User
	ok, err := metadata.GetJSON(context.Background(), f.store, metadata.KeyCurrentUser, &u)
	require.NoError(t, err)
	return u, ok
}

func okLogin(u models.User, token string) func(context.Context, string, string) (*models.AuthResponse, error) {
	return func(context.Context, string, string) (*models.AuthResponse, error) {
		uu := u
		return &models.AuthResponse{Success: true, Message: "Login successful!", Token: token, User: &uu}, nil
	}
}

func TestBootstrap_NothingPersisted(t *testing.T) {
	f := newFixture(t, Options{})

	require.NoError(t, f.m.Bootstrap(context.Background()))
	assert.Equal(t, Unauthenticated, f.m.State())
	assert.Nil(t, f.m.CurrentUser())
	assert.Zero(t, f.api.verifyCalls)
}

func TestBootstrap_TokenWithoutSnapshotIsNotVerified(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.store.Set(context.Background(), metadata.KeyAuthToken, []byte("tok")))

	require.NoError(t, f.m.Bootstrap(context.Background()))
	assert.Equal(t, Unauthenticated, f.m.State())
	assert.Zero(t, f.api.verifyCalls)
}

func TestBootstrap_VerifiedUsesServerUser(t *testing.T) {
	f := newFixture(t, Options{})
	stale := admin
	stale.Name = "Old Name"
	f.persist(t, "tok", stale)

	var seen []State
	f.m.StateValue().Subscribe(func(s State) { seen = append(seen, s) })

	var gotToken string
	f.api.verify = func(_ context.Context, token string) (*models.User, error) {
		gotToken = token
		u := admin
		return &u, nil
	}

	require.NoError(t, f.m.Bootstrap(context.Background()))

	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, []State{Verifying, Authenticated}, seen)
	assert.True(t, f.m.IsAuthenticated())
	assert.True(t, f.m.IsAdmin())
	assert.Equal(t, admin, *f.m.CurrentUser())

	stored, ok := f.storedUser(t)
	require.True(t, ok)
	assert.Equal(t, "Admin User", stored.Name)
	assert.Empty(t, f.nav.Paths())
}

func TestBootstrap_RejectedFailsClosed(t *testing.T) {
	f := newFixture(t, Options{})
	f.persist(t, "expired", member)
	require.NoError(t, f.store.Set(context.Background(), metadata.KeySettings, []byte(`{}`)))
	f.api.verify = func(context.Context, string) (*models.User, error) {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid or expired token"}
	}

	require.NoError(t, f.m.Bootstrap(context.Background()))

	assert.Equal(t, Unauthenticated, f.m.State())
	assert.Nil(t, f.m.CurrentUser())
	assert.Equal(t, []string{metadata.KeySettings}, f.store.Keys())
	assert.Equal(t, []string{PathLogin}, f.nav.Paths())
}

func TestBootstrap_TimeoutFailsClosed(t *testing.T) {
	f := newFixture(t, Options{VerifyTimeout: 20 * time.Millisecond})
	f.persist(t, "tok", member)
	f.api.verify = func(ctx context.Context, _ string) (*models.User, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	start := time.Now()
	require.NoError(t, f.m.Bootstrap(context.Background()))

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, Unauthenticated, f.m.State())
	assert.Empty(t, f.store.Keys())
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.login = okLogin(admin, "tok-1")

	res := f.m.Login(context.Background(), admin.Email, "admin")

	assert.Equal(t, Result{Success: true, Message: "Login successful!"}, res)
	assert.True(t, f.m.IsAuthenticated())
	tok, err := f.store.Get(context.Background(), metadata.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(tok))
	stored, ok := f.storedUser(t)
	require.True(t, ok)
	assert.Equal(t, admin, stored)
	assert.Equal(t, []string{PathDashboard}, f.nav.Paths())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		resp *models.AuthResponse
		want string
	}{
		{
			name: "server message",
			err:  &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials. Please try again."},
			want: "Invalid credentials. Please try again.",
		},
		{
			name: "network",
			err:  client.ErrUnavailable,
			want: msgLoginError,
		},
		{
			name: "no token in response",
			resp: &models.AuthResponse{Success: true, Message: "Login successful!"},
			want: "Login successful!",
		},
		{
			name: "empty response",
			resp: &models.AuthResponse{},
			want: msgMissingSession,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.api.login = func(context.Context, string, string) (*models.AuthResponse, error) { return tt.resp, tt.err }

			res := f.m.Login(context.Background(), "x@y.z", "pw")

			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Message)
			assert.Equal(t, Unauthenticated, f.m.State())
			assert.Empty(t, f.store.Keys())
			assert.Empty(t, f.nav.Paths())
		})
	}
}

func TestRegister_NavigatesToProfile(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.register = func(_ context.Context, name, email, _ string) (*models.AuthResponse, error) {
		u := member
		u.Name, u.Email = name, email
		return &models.AuthResponse{Success: true, Message: "Registration successful!", Token: "t", User: &u}, nil
	}

	res := f.m.Register(context.Background(), "Test", "t@x.com", "longenough")

	assert.True(t, res.Success)
	assert.Equal(t, common.RoleMember, f.m.CurrentUser().Role)
	assert.Equal(t, []string{PathProfile}, f.nav.Paths())
}

func TestRegister_EmailExists(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.register = func(context.Context, string, string, string) (*models.AuthResponse, error) {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "An account with this email already exists."}
	}

	res := f.m.Register(context.Background(), "A", "admin@legalchicks.vip", "pw")
	assert.Equal(t, Result{Message: "An account with this email already exists."}, res)

	f.api.register = func(context.Context, string, string, string) (*models.AuthResponse, error) {
		return nil, errors.New("boom")
	}
	res = f.m.Register(context.Background(), "A", "a@b.c", "pw")
	assert.Equal(t, msgRegisterError, res.Message)
}

func TestLogout_KeepsPreferencesByDefault(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.login = okLogin(member, "t")
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, metadata.KeySettings, []byte(`{}`)))
	require.NoError(t, f.store.Set(ctx, metadata.KeyNotifications, []byte(`[]`)))
	f.m.Login(ctx, member.Email, "pw")

	require.NoError(t, f.m.Logout(ctx))

	assert.False(t, f.m.IsAuthenticated())
	assert.Nil(t, f.m.CurrentUser())
	assert.Equal(t, []string{metadata.KeyNotifications, metadata.KeySettings}, f.store.Keys())
	assert.Equal(t, []string{PathDashboard, PathLogin}, f.nav.Paths())
}

func TestLogout_ClearPreferences(t *testing.T) {
	f := newFixture(t, Options{ClearPreferencesOnLogout: true})
	ctx := context.Background()
	f.persist(t, "t", member)
	require.NoError(t, f.store.Set(ctx, metadata.KeySettings, []byte(`{}`)))
	require.NoError(t, f.store.Set(ctx, metadata.KeyNotifications, []byte(`[]`)))

	require.NoError(t, f.m.Logout(ctx))
	assert.Empty(t, f.store.Keys())
}

func TestStaleLoginDoesNotResurrectSession(t *testing.T) {
	f := newFixture(t, Options{})
	started, release := make(chan struct{}), make(chan struct{})
	f.api.login = func(context.Context, string, string) (*models.AuthResponse, error) {
		close(started)
		<-release
		u := member
		return &models.AuthResponse{Success: true, Token: "late", User: &u}, nil
	}

	done := make(chan Result)
	go func() { done <- f.m.Login(context.Background(), member.Email, "pw") }()

	<-started
	require.NoError(t, f.m.Logout(context.Background()))
	close(release)
	res := <-done

	assert.False(t, res.Success)
	assert.Equal(t, msgSuperseded, res.Message)
	assert.Equal(t, Unauthenticated, f.m.State())
	assert.Empty(t, f.store.Keys())
	assert.Equal(t, []string{PathLogin}, f.nav.Paths())
}

func TestStaleVerificationIsDropped(t *testing.T) {
	f := newFixture(t, Options{})
	f.persist(t, "old", member)
	started, release := make(chan struct{}), make(chan struct{})
	f.api.verify = func(context.Context, string) (*models.User, error) {
		close(started)
		<-release
		return nil, &client.APIError{Status: http.StatusUnauthorized}
	}
	f.api.login = okLogin(admin, "fresh")

	done := make(chan error)
	go func() { done <- f.m.Bootstrap(context.Background()) }()

	<-started
	require.True(t, f.m.Login(context.Background(), admin.Email, "admin").Success)
	close(release)
	require.NoError(t, <-done)

	assert.True(t, f.m.IsAdmin())
	tok, err := f.store.Get(context.Background(), metadata.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(tok))
}

func TestUpdateProfile_SelfRefreshesSnapshot(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.login = okLogin(member, "t")
	f.m.Login(context.Background(), member.Email, "pw")

	var notified *models.User
	f.m.UserValue().Subscribe(func(u *models.User) { notified = u })

	f.api.update = func(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
		u := member
		u.Visibility = upd.Visibility
		return &u, nil
	}

	u, err := f.m.UpdateProfile(context.Background(), member.ID, models.ProfileUpdate{Visibility: common.VisibilityPrivate})
	require.NoError(t, err)
	assert.Equal(t, common.VisibilityPrivate, u.Visibility)
	assert.Equal(t, common.VisibilityPrivate, f.m.CurrentUser().Visibility)
	require.NotNil(t, notified)

	stored, _ := f.storedUser(t)
	assert.Equal(t, common.VisibilityPrivate, stored.Visibility)
}

func TestUpdateProfile_OtherUserLeavesSession(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.login = okLogin(admin, "t")
	f.m.Login(context.Background(), admin.Email, "admin")
	f.api.update = func(_ context.Context, id string, _ models.ProfileUpdate) (*models.User, error) {
		u := member
		u.Name = "Renamed"
		return &u, nil
	}

	u, err := f.m.UpdateProfile(context.Background(), member.ID, models.ProfileUpdate{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
	assert.Equal(t, admin, *f.m.CurrentUser())
}

func TestUpdateProfile_Errors(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.update = func(context.Context, string, models.ProfileUpdate) (*models.User, error) {
		return nil, &client.APIError{Status: http.StatusForbidden, Message: "Not authorized to update this profile"}
	}

	_, err := f.m.UpdateProfile(context.Background(), "3", models.ProfileUpdate{Name: "x"})
	require.ErrorIs(t, err, ErrUpdateFailed)
	assert.EqualError(t, err, "Not authorized to update this profile")
	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)

	f.api.update = func(context.Context, string, models.ProfileUpdate) (*models.User, error) {
		return nil, client.ErrUnavailable
	}
	_, err = f.m.UpdateProfile(context.Background(), "3", models.ProfileUpdate{Name: "x"})
	require.ErrorIs(t, err, ErrUpdateFailed)
	assert.EqualError(t, err, msgUpdateError)
}

func TestStoredToken(t *testing.T) {
	store := metadata.NewMemoryRepository()
	src := StoredToken(store)
	assert.Empty(t, src(context.Background()))

	require.NoError(t, store.Set(context.Background(), metadata.KeyAuthToken, []byte("abc")))
	assert.Equal(t, "abc", src(context.Background()))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "verifying", Verifying.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unknown", State(9).String())
}
