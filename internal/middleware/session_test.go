package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairrent_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func apiRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/orders", RequireSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})
	return r
}

func TestRequireSessionNoCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	apiRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestRequireSessionBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	apiRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired session")
}

func TestRequireSessionValidCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := utils.CreateSessionToken("admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	apiRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func pagesRouter() *gin.Engine {
	r := gin.New()
	pages := r.Group("/admin", SessionGate())
	pages.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login page") })
	pages.GET("/orders", func(c *gin.Context) { c.String(http.StatusOK, "orders page") })
	return r
}

func TestSessionGateRedirectsAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	pagesRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestSessionGateLoginAlwaysReachable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	pagesRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login page", w.Body.String())
}

func TestSessionGateValidCookiePasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := utils.CreateSessionToken("admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	pagesRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders page", w.Body.String())
}

func TestSessionGateExpiredCookieRedirects(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := utils.CreateSessionToken("admin")
	require.NoError(t, err)

	// Le secret a tourné et l'ancien n'est plus accepté
	t.Setenv("JWT_SECRET", "secret-b")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	pagesRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}
