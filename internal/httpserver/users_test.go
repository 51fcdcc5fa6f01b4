package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reviewmarket/api/internal/models"
)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users", map[string]string{
		"email":    "alice@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := env.decodeStatus(rec)
	require.Equal(t, 201, body.Status)
	require.Equal(t, "Register successfully", body.Success)

	var user models.User
	require.NoError(t, env.DB.Where("email = ?", "alice@example.com").First(&user).Error)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEqual(t, "secret", user.PasswordHash)
}

func TestRegisterUserExplicitRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users", map[string]string{
		"email":    "root@example.com",
		"password": "secret",
		"role":     "ADMIN",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, env.DB.Where("email = ?", "root@example.com").First(&user).Error)
	require.True(t, user.Role.IsAdmin())
}

func TestRegisterUserValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]string{
		{"email": "bob@example.com"},
		{"password": "secret"},
		{"email": "", "password": "secret"},
		{"email": "bob@example.com", "password": "secret", "role": "SUPERUSER"},
	}
	for _, payload := range cases {
		rec := env.do(http.MethodPost, "/api/users", payload)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "Data no valid", env.decodeStatus(rec).Errors)
	}
	require.Zero(t, env.count(&models.User{}))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("dup@example.com", models.RoleUser)

	rec := env.do(http.MethodPost, "/api/users", map[string]string{
		"email":    "dup@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListUsersEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", env.decodeStatus(rec).Errors)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("a@example.com", models.RoleUser)
	env.seedUser("b@example.com", models.RoleAdmin)

	rec := env.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "a@example.com", items[0]["email"])
	require.NotContains(t, items[0], "password")
	require.NotContains(t, items[0], "password_hash")
}

func TestGetUserSelf(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("self@example.com", models.RoleUser)
	access, _ := env.login("self@example.com")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil, bearer(access))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "self@example.com", got["email"])
	require.Equal(t, "USER", got["role"])
}

func TestGetUserAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("target@example.com", models.RoleUser)
	env.seedUser("admin@example.com", models.RoleAdmin)
	access, _ := env.login("admin@example.com")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil, bearer(access))
	require.Equal(t, http.StatusOK, rec.Code)
}

// A foreign caller gets 403 whether or not the account exists; 404 is
// reserved for a genuinely missing user looked up by its owner or an admin.
func TestGetUserForbiddenVsNotFound(t *testing.T) {
	env := newTestEnv(t)
	target := env.seedUser("target@example.com", models.RoleUser)
	env.seedUser("other@example.com", models.RoleUser)
	access, _ := env.login("other@example.com")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", target.ID), nil, bearer(access))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, 403, env.decodeStatus(rec).Status)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", target.ID), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	env.seedUser("admin@example.com", models.RoleAdmin)
	adminAccess, _ := env.login("admin@example.com")
	rec = env.do(http.MethodGet, "/api/users/9999", nil, bearer(adminAccess))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", env.decodeStatus(rec).Errors)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("old@example.com", models.RoleUser)

	rec := env.do(http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"email": "new@example.com",
		"role":  "ADMIN",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "User updated successfully", env.decodeStatus(rec).Message)

	var updated models.User
	require.NoError(t, env.DB.First(&updated, user.ID).Error)
	require.Equal(t, "new@example.com", updated.Email)
	require.True(t, updated.Role.IsAdmin())
}

func TestUpdateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("keep@example.com", models.RoleUser)

	rec := env.do(http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(http.MethodPut, "/api/users/9999", map[string]string{"email": "x@example.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", env.decodeStatus(rec).Errors)
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("gone@example.com", models.RoleUser)
	product := env.seedProduct(user.ID, "Widget", "A widget", floatPtr(9.99))
	env.seedReview(product.ID, "Great", "Loved it")

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "User deleted successfully", env.decodeStatus(rec).Message)

	require.Zero(t, env.count(&models.User{}))
	require.Zero(t, env.count(&models.Product{}))
	require.Zero(t, env.count(&models.Review{}))

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
