package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridlock/models"
)

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "first@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var first models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &first))
	assert.Equal(t, models.RoleAdmin, first.Role)

	w = doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "second@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var second models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &second))
	assert.Equal(t, models.RoleUser, second.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "dup@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "DUP@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "short@example.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "user@example.com")

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "user@example.com")

	w := doJSON(t, router, http.MethodGet, "/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/projects", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMissingToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/projects", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
