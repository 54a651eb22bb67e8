package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"hairrent_back_end/internal/database"
)

// Actions d'audit prédéfinies
const (
	ActionOrderStatusUpdate   = "order.status_update"
	ActionOrderReply          = "order.reply"
	ActionRequestStatusUpdate = "request.status_update"
	ActionRequestReply        = "request.reply"
	ActionLoginSuccess        = "auth.login_success"
	ActionLoginFailed         = "auth.login_failed"
	ActionLogout              = "auth.logout"
)

// Resources d'audit
const (
	ResourceOrder   = "order"
	ResourceRequest = "request"
	ResourceAuth    = "auth"
)

// requestInfo capture ce qu'on lit du contexte Gin avant de lancer la
// goroutine d'audit : le contexte est recyclé dès que le handler rend la main
type requestInfo struct {
	username  string
	clientIP  string
	userAgent string
}

func captureRequest(c *gin.Context) requestInfo {
	return requestInfo{
		username:  c.GetString("username"),
		clientIP:  c.ClientIP(),
		userAgent: c.GetHeader("User-Agent"),
	}
}

// LogAdminAction enregistre une mutation admin dans les logs d'audit.
// Fire-and-forget : l'échec d'audit ne bloque jamais l'opération.
func LogAdminAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}) {
	info := captureRequest(c)
	go func() {
		if err := logActionAsync(info, action, resource, resourceID, oldValue, newValue, true, ""); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	info := captureRequest(c)
	go func() {
		if err := logActionAsync(info, action, resource, resourceID, nil, nil, false, errorMsg); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

func logActionAsync(info requestInfo, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) error {
	session, err := database.GetShopSession()
	if err != nil {
		return err
	}

	var oldValueStr, newValueStr string
	if oldValue != nil {
		if oldBytes, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(oldBytes)
		}
	}
	if newValue != nil {
		if newBytes, err := json.Marshal(newValue); err == nil {
			newValueStr = string(newBytes)
		}
	}

	query := `
		INSERT INTO admin_audit (
			id, username, action, resource, resource_id,
			old_value, new_value, ip_address, user_agent, success,
			error_msg, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return session.Query(query,
		gocql.TimeUUID(), info.username, action, resource, resourceID,
		oldValueStr, newValueStr, info.clientIP, info.userAgent, success,
		errorMsg, time.Now(),
	).Exec()
}
