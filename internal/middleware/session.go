package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hairrent_back_end/internal/utils"
)

// SessionCookieName est le nom du cookie de session admin
const SessionCookieName = "session"

// RequireSession protège les endpoints API admin : cookie de session signé
// et non expiré obligatoire, sinon 401. Le username vérifié est mis dans le
// contexte Gin.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		username, err := utils.VerifySessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

// SessionGate protège les pages du back-office : toute page /admin sans
// session valide est redirigée vers la page de login. La page de login
// reste toujours accessible.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/admin/login" {
			c.Next()
			return
		}

		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if username, err := utils.VerifySessionToken(token); err == nil {
				c.Set("username", username)
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}
