package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepakMaj/Task-Manager-API/internal/auth"
	"github.com/deepakMaj/Task-Manager-API/internal/middleware"
	"github.com/deepakMaj/Task-Manager-API/internal/mocks"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) (*middleware.AuthMiddleware, *mocks.Users, *auth.TokenManager, *models.User, string) {
	t.Helper()
	users := mocks.NewUsers()
	tm := auth.NewTokenManager("test-secret")
	u := &models.User{Name: "John", Email: "johndoe@x.com", PasswordHash: "h"}
	require.NoError(t, users.Create(context.Background(), u))
	tok, err := tm.Issue(u.ID)
	require.NoError(t, err)
	require.NoError(t, users.AppendToken(context.Background(), u.ID, tok))
	return middleware.NewAuthMiddleware(tm, users), users, tm, u, tok
}

func do(am *middleware.AuthMiddleware, authz string, inner http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	am.Auth(inner).ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	am, _, _, _, _ := setupAuth(t)
	pass := func(w http.ResponseWriter, r *http.Request) { t.Fatal("handler must not run") }

	assert.Equal(t, http.StatusUnauthorized, do(am, "", pass).Code)
	assert.Equal(t, http.StatusUnauthorized, do(am, "Token abc", pass).Code)
	assert.Equal(t, http.StatusUnauthorized, do(am, "Bearer not.a.jwt", pass).Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	am, _, _, u, _ := setupAuth(t)
	forged, err := auth.NewTokenManager("other-secret").Issue(u.ID)
	require.NoError(t, err)

	rec := do(am, "Bearer "+forged, func(w http.ResponseWriter, r *http.Request) { t.Fatal("handler must not run") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RevokedToken(t *testing.T) {
	am, users, _, u, tok := setupAuth(t)
	require.NoError(t, users.RemoveToken(context.Background(), u.ID, tok))

	rec := do(am, "Bearer "+tok, func(w http.ResponseWriter, r *http.Request) { t.Fatal("handler must not run") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a valid JWT no longer in the token list is rejected")
}

func TestAuth_DeletedUser(t *testing.T) {
	am, users, _, u, tok := setupAuth(t)
	require.NoError(t, users.Delete(context.Background(), u.ID))

	rec := do(am, "Bearer "+tok, func(w http.ResponseWriter, r *http.Request) { t.Fatal("handler must not run") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AttachesUserAndToken(t *testing.T) {
	am, _, _, u, tok := setupAuth(t)

	var gotUser *models.User
	var gotToken string
	rec := do(am, "Bearer "+tok, func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = middleware.UserFrom(r.Context())
		gotToken, _ = middleware.TokenFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, u.ID, gotUser.ID)
	assert.Equal(t, tok, gotToken)
}
