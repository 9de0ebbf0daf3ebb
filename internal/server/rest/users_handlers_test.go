package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	env := newTestEnv(t)
	expired := env.tokenAt(t, time.Now().Add(-8*24*time.Hour), auth.Subject{UserID: "2", Email: "alice.j@example.com", Role: common.RoleMember})

	tests := []struct {
		name  string
		token string
		code  int
		msg   string
	}{
		{"missing", "", http.StatusUnauthorized, "No token provided"},
		{"malformed", "junk", http.StatusUnauthorized, "Invalid or expired token"},
		{"expired", expired, http.StatusUnauthorized, "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/api/users/members", tt.token, nil)
			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, tt.msg, decode[message](t, rr).Message)
		})
	}
}

func TestGate_DoesNotCheckUserExists(t *testing.T) {
	env := newTestEnv(t)
	orphan := env.tokenAt(t, time.Now(), auth.Subject{UserID: "gone", Email: "gone@x.com", Role: common.RoleMember})

	rr := env.do(t, http.MethodGet, "/api/business/invoices", orphan, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGate_NonBearerScheme(t *testing.T) {
	env := newTestEnv(t)

	tok := env.login(t, "alice.j@example.com", "password")

	req := httptest.NewRequest(http.MethodGet, "/api/users/members", nil)
	req.Header.Set("Authorization", "Token "+tok)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "No token provided", decode[message](t, rr).Message)
}

func TestMembers_NoPasswords(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "alice.j@example.com", "password")

	rr := env.do(t, http.MethodGet, "/api/users/members", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	members := decode[[]map[string]any](t, rr)
	require.Len(t, members, 6)
	for _, m := range members {
		_, ok := m["password"]
		assert.False(t, ok)
		_, ok = m["passwordHash"]
		assert.False(t, ok)
	}
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "alice.j@example.com", "password")

	rr := env.do(t, http.MethodGet, "/api/users/profile/3", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Brenda Smith", decode[map[string]any](t, rr)["name"])

	rr = env.do(t, http.MethodGet, "/api/users/profile/404", tok, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", decode[message](t, rr).Message)
}

func TestUpdateProfile_OtherMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "alice.j@example.com", "password")

	rr := env.do(t, http.MethodPut, "/api/users/profile/3", tok, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Not authorized to update this profile", decode[message](t, rr).Message)

	u, err := env.repo.FindByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Brenda Smith", u.Name)
}

func TestUpdateProfile_Self(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "alice.j@example.com", "password")

	rr := env.do(t, http.MethodPut, "/api/users/profile/2", tok, map[string]string{"visibility": "private"})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[struct {
		Success bool           `json:"success"`
		User    map[string]any `json:"user"`
	}](t, rr)
	assert.True(t, body.Success)
	assert.Equal(t, "private", body.User["visibility"])
	assert.Equal(t, "Alice Johnson", body.User["name"])
}

func TestUpdateProfile_AdminEditsOthers(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@legalchicks.vip", "admin")

	rr := env.do(t, http.MethodPut, "/api/users/profile/6", tok, map[string]string{"name": "Eva W."})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateProfile_Errors(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "alice.j@example.com", "password")

	rr := env.do(t, http.MethodPut, "/api/users/profile/99", tok, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodPut, "/api/users/profile/2", tok, map[string]string{"visibility": "secret"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPut, "/api/users/profile/2", tok, map[string]string{"email": "admin@legalchicks.vip"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "An account with this email already exists.", decode[message](t, rr).Message)
}
