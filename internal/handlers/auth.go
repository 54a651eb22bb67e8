package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"hairrent_back_end/internal/middleware"
	"hairrent_back_end/internal/utils"
)

// Authentification admin : identité unique configurée par environnement.
// Le mot de passe est comparé en bcrypt — jamais de credentials en dur
// ni de secret de signature par défaut dans le code.

// Login vérifie les credentials admin et pose le cookie de session
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	// Présence vérifiée au démarrage (cmd/server/main.go)
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")

	if input.Username != adminUsername ||
		bcrypt.CompareHashAndPassword([]byte(adminPasswordHash), []byte(input.Password)) != nil {
		utils.LogFailedAction(c, utils.ActionLoginFailed, utils.ResourceAuth, input.Username, "invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := utils.CreateSessionToken(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during login"})
		return
	}

	// Secure=false en dev, à activer derrière TLS
	secure := os.Getenv("COOKIE_SECURE") == "true"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(utils.SessionDuration.Seconds()), "/", "", secure, true)

	c.Set("username", input.Username)
	utils.LogAdminAction(c, utils.ActionLoginSuccess, utils.ResourceAuth, input.Username, nil, nil)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// Logout supprime le cookie de session
func Logout(c *gin.Context) {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)

	utils.LogAdminAction(c, utils.ActionLogout, utils.ResourceAuth, "", nil, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me retourne l'identité de la session courante
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString("username"),
	})
}
