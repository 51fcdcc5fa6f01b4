package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reviewmarket/api/internal/models"
)

func TestLoginCheck(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", models.RoleUser)

	access, refresh := env.login("alice@example.com")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)
}

func TestLoginCheckBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", models.RoleUser)

	rec := env.do(http.MethodPost, "/login_check", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", env.decodeStatus(rec).Errors)

	rec = env.do(http.MethodPost, "/login_check", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActiveUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice@example.com", models.RoleUser)
	access, _ := env.login("alice@example.com")

	rec := env.do(http.MethodGet, "/activeUser", nil, bearer(access))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, float64(user.ID), got["id"])
	require.Equal(t, "alice@example.com", got["email"])
	require.Equal(t, "USER", got["role"])
}

func TestActiveUserRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", models.RoleUser)
	_, refresh := env.login("alice@example.com")

	rec := env.do(http.MethodGet, "/activeUser", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/activeUser", nil, bearer("not-a-jwt"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// a refresh token is not an access token
	rec = env.do(http.MethodGet, "/activeUser", nil, bearer(refresh))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", models.RoleUser)
	_, refresh := env.login("alice@example.com")

	rec := env.do(http.MethodPost, "/token/refresh", map[string]string{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.NotEqual(t, refresh, resp.RefreshToken)

	// the new access token works against /activeUser
	rec = env.do(http.MethodGet, "/activeUser", nil, bearer(resp.Token))
	require.Equal(t, http.StatusOK, rec.Code)

	// the rotated-out token is revoked and cannot be replayed
	rec = env.do(http.MethodPost, "/token/refresh", map[string]string{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", env.decodeStatus(rec).Errors)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/token/refresh", map[string]string{
		"refresh_token": "garbage",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/token/refresh", map[string]string{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Api address not found", env.decodeStatus(rec).Errors)

	// non-numeric path ids fall through to the same routing answer
	rec = env.do(http.MethodGet, "/api/users/abc/products", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Api address not found", env.decodeStatus(rec).Errors)
}
