package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalchicks/lcen-portal/internal/cryptox"
	"github.com/legalchicks/lcen-portal/internal/logging"
	"github.com/legalchicks/lcen-portal/internal/server/audit"
	"github.com/legalchicks/lcen-portal/internal/server/auth"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/business"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
	"github.com/legalchicks/lcen-portal/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "rest-test-secret"

type testEnv struct {
	handler http.Handler
	codec   *auth.TokenCodec
	repo    *users.MemoryRepository
	audit   *audit.Recorder
}

type fixedRand struct{}

func (fixedRand) IntN(n int) int   { return 0 }
func (fixedRand) Float64() float64 { return 0 }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hasher, err := cryptox.NewHasher(cryptox.Params{Time: 1, MemoryKiB: 64, Threads: 1, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec(testSecret, 0)
	require.NoError(t, err)

	repo := users.NewMemoryRepository()
	_, err = users.Seed(context.Background(), repo, hasher, users.DefaultSeed)
	require.NoError(t, err)

	rec := &audit.Recorder{}
	srv := NewServer(Options{CORSOrigins: []string{"http://localhost:4200"}}, Services{
		Auth:      services.NewAuthService(repo, codec, hasher, rec, logging.Nop{}),
		Profiles:  services.NewProfileService(repo),
		Business:  services.NewBusinessService(business.NewMemoryRepository()),
		Analytics: services.NewAnalyticsService(fixedRand{}),
		Codec:     codec,
	}, logging.Nop{})

	return &testEnv{handler: srv.Router(), codec: codec, repo: repo, audit: rec}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res.Token
}

func (e *testEnv) tokenAt(t *testing.T, issued time.Time, s auth.Subject) string {
	t.Helper()
	c, err := auth.NewTokenCodec(testSecret, 0)
	require.NoError(t, err)
	tok, err := c.WithClock(func() time.Time { return issued }).Issue(s)
	require.NoError(t, err)
	return tok
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func nopLogger() logging.Logger { return logging.Nop{} }

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
