package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subleasend/backend/internal/models"
)

// Accounts outside the institutional domain are rejected before any store
// write.
func TestSignUp_DomainRejected(t *testing.T) {
	r, s, _ := newTestServer(t)

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "x@gmail.com",
		"password": "correct-horse",
		"name":     "Outsider",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, s.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

// A too-short password fails validation before any store write occurs.
func TestSignUp_ShortPassword(t *testing.T) {
	r, s, _ := newTestServer(t)

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "x@nd.edu",
		"password": "short",
		"name":     "Hasty",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, s.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	r, _, _ := newTestServer(t)

	signUpUser(t, r, "dup@nd.edu")

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "dup@nd.edu",
		"password": "correct-horse",
		"name":     "Copy Cat",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignUpAndSignIn(t *testing.T) {
	r, _, tokens := newTestServer(t)

	user, token := signUpUser(t, r, "student@nd.edu")
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.UID)

	// The signup token resolves back to the new user.
	callerID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, callerID)

	rec := doJSON(r, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "student@nd.edu",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	callerID, err = tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, callerID)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	r, _, _ := newTestServer(t)

	signUpUser(t, r, "student@nd.edu")

	rec := doJSON(r, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "student@nd.edu",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(r, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "nobody@nd.edu",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Protected routes reject missing and malformed credentials uniformly.
func TestProtectedRoutes_RequireAuth(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(r, http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(r, http.MethodGet, "/api/favorites", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
