package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hairrent_back_end/internal/middleware"
)

func authRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/logout", Logout)
	return r
}

func setAdminCredentials(t *testing.T, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_USERNAME", username)
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoginMissingCredentials(t *testing.T) {
	setAdminCredentials(t, "admin", "correct-horse")
	r := authRouter()

	w := postJSON(t, r, http.MethodPost, "/api/auth/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username and password are required")

	w = postJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setAdminCredentials(t, "admin", "correct-horse")
	r := authRouter()

	w := postJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	// Mauvais username, bon mot de passe : même refus, même message
	w = postJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"root","password":"correct-horse"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	setAdminCredentials(t, "admin", "correct-horse")

	w := postJSON(t, authRouter(), http.MethodPost, "/api/auth/login", `{"username":"admin","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful")

	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session, "cookie de session absent")
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	assert.False(t, session.Secure) // COOKIE_SECURE non posé en test
	assert.Equal(t, 7*24*3600, session.MaxAge)
}

func TestLogoutClearsCookie(t *testing.T) {
	setAdminCredentials(t, "admin", "correct-horse")

	w := postJSON(t, authRouter(), http.MethodPost, "/api/auth/logout", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
	assert.Less(t, session.MaxAge, 0)
}
