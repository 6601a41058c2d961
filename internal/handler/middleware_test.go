package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardMiddlewareEnv(t *testing.T) (*auth.Guard, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager([]byte("middleware-test-secret-32-bytes!!"), time.Hour)
	require.NoError(t, err)
	return auth.NewGuard(tokens, discardLogger()), tokens
}

func TestRequireOperation_PrincipalInContext(t *testing.T) {
	guard, tokens := newGuardMiddlewareEnv(t)

	tok, err := tokens.Issue("alice", domain.RoleMember)
	require.NoError(t, err)

	var got *auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	h := RequireOperation(guard, auth.OpListTasks, discardLogger())(next)
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, domain.RoleMember, got.Role)
}

func TestRequireOperation_NoToken(t *testing.T) {
	guard, _ := newGuardMiddlewareEnv(t)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	h := RequireOperation(guard, auth.OpListTasks, discardLogger())(next)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.JSONEq(t, `{"message":"Error: Unauthorized!"}`, rec.Body.String())
}

func TestRequireOperation_InsufficientRole(t *testing.T) {
	guard, tokens := newGuardMiddlewareEnv(t)

	tok, err := tokens.Issue("alice", domain.RoleMember)
	require.NoError(t, err)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	h := RequireOperation(guard, auth.OpDeleteTask, discardLogger())(next)
	req := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
	assert.JSONEq(t, `{"message":"Error: Access is denied!"}`, rec.Body.String())
}
