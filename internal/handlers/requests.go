package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/models"
	"hairrent_back_end/internal/services"
	"hairrent_back_end/internal/utils"
)

// Demandes de disponibilité avant achat : cycle de vie parallèle aux
// commandes, en plus simple — pas de fichier, pas de paiement.

type createRequestInput struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Message       string `json:"message"`
	ProductID     int    `json:"productId"`
	ProductName   string `json:"productName"`
	ProductSlug   string `json:"productSlug"`
	ProductImage  string `json:"productImage"`
}

// CreateRequest enregistre une demande d'achat côté client
func CreateRequest(c *gin.Context) {
	var input createRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CustomerName == "" || input.CustomerEmail == "" || input.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	now := time.Now()
	request := models.Request{
		ID:            gocql.TimeUUID(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Message:       input.Message,
		ProductID:     input.ProductID,
		ProductName:   input.ProductName,
		ProductSlug:   input.ProductSlug,
		ProductImage:  input.ProductImage,
		Status:        models.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := session.Query(`
		INSERT INTO requests (request_id, customer_name, customer_email, customer_phone, message,
			product_id, product_name, product_slug, product_image, status, admin_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		request.ID, request.CustomerName, request.CustomerEmail, request.CustomerPhone, request.Message,
		request.ProductID, request.ProductName, request.ProductSlug, request.ProductImage,
		request.Status, "", request.CreatedAt, request.UpdatedAt,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	services.PublishAdminEvent("request_created", request.ID.String(), "", request.CustomerName)

	log.Printf("✅ Demande créée pour '%s' (%s)", request.ProductName, request.CustomerEmail)

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// ListRequests retourne toutes les demandes, de la plus récente à la plus ancienne
func ListRequests(c *gin.Context) {
	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(requestSelectColumns + ` FROM requests`).Iter()

	var requests []models.Request
	for {
		request, ok := scanRequest(iter)
		if !ok {
			break
		}
		requests = append(requests, request)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	if requests == nil {
		requests = []models.Request{}
	}
	c.JSON(http.StatusOK, requests)
}

// GetRequest retourne une demande par id, fil de messages inclus
func GetRequest(c *gin.Context) {
	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	request, err := fetchRequestByID(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	messages, err := loadMessages(session, "messages_by_request", "request_id", request.ID)
	if err != nil {
		log.Println("❌ Erreur lecture messages demande:", err)
	}
	request.Messages = messages

	c.JSON(http.StatusOK, request)
}

// UpdateRequestStatus applique une transition de statut de demande et
// prévient le client par email pour ACCEPTED / REJECTED / WAITLISTED
func UpdateRequestStatus(c *gin.Context) {
	var input struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	request, err := fetchRequestByID(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if !models.IsRequestStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status %q", input.Status)})
		return
	}

	statusChanged := input.Status != request.Status
	if statusChanged && !models.CanTransitionRequest(request.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition %s → %s", request.Status, input.Status),
		})
		return
	}

	previousStatus := request.Status
	if input.AdminNotes != "" {
		request.AdminNotes = input.AdminNotes
	}
	request.Status = input.Status
	request.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE requests SET status = ?, admin_notes = ?, updated_at = ? WHERE request_id = ?`,
		request.Status, request.AdminNotes, request.UpdatedAt, request.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// ARCHIVED est silencieux : pas d'email client
	emailSent := false
	var emailError interface{}
	if statusChanged && request.Status != models.RequestStatusArchived {
		subject, html := utils.RequestStatusEmail(*request, request.Status, input.AdminNotes)
		if sendErr := services.Notify("request_status_"+strings.ToLower(request.Status), request.CustomerEmail, subject, html); sendErr != nil {
			emailError = sendErr.Error()
		} else {
			emailSent = true
		}
	}

	utils.LogAdminAction(c, utils.ActionRequestStatusUpdate, utils.ResourceRequest, request.ID.String(),
		gin.H{"status": previousStatus}, gin.H{"status": request.Status, "adminNotes": request.AdminNotes})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"request":    request,
		"emailSent":  emailSent,
		"emailError": emailError,
	})
}

// ReplyRequest ajoute un message ADMIN au fil de la demande et envoie
// la réponse par email au client (best-effort)
func ReplyRequest(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	request, err := fetchRequestByID(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	message := models.Message{
		ID:        gocql.TimeUUID(),
		Sender:    models.SenderAdmin,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`
		INSERT INTO messages_by_request (request_id, message_id, sender, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		request.ID, message.ID, message.Sender, message.Content, message.CreatedAt,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	subject, html := utils.RequestReplyEmail(*request, input.Content)
	if input.Subject != "" {
		subject = input.Subject
	}
	if sendErr := services.Notify("request_reply", request.CustomerEmail, subject, html); sendErr != nil {
		log.Println("❌ Erreur envoi email de réponse:", sendErr)
	}

	utils.LogAdminAction(c, utils.ActionRequestReply, utils.ResourceRequest, request.ID.String(), nil,
		gin.H{"content": input.Content})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// =============================================
// HELPERS SCYLLA
// =============================================

const requestSelectColumns = `SELECT request_id, customer_name, customer_email, customer_phone, message,
	product_id, product_name, product_slug, product_image, status, admin_notes, created_at, updated_at`

func fetchRequestByID(session *gocql.Session, id string) (*models.Request, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var request models.Request
	if err := session.Query(requestSelectColumns+` FROM requests WHERE request_id = ?`, gocql.UUID(parsed)).Scan(
		&request.ID, &request.CustomerName, &request.CustomerEmail, &request.CustomerPhone, &request.Message,
		&request.ProductID, &request.ProductName, &request.ProductSlug, &request.ProductImage,
		&request.Status, &request.AdminNotes, &request.CreatedAt, &request.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &request, nil
}

func scanRequest(iter *gocql.Iter) (models.Request, bool) {
	var request models.Request
	if !iter.Scan(
		&request.ID, &request.CustomerName, &request.CustomerEmail, &request.CustomerPhone, &request.Message,
		&request.ProductID, &request.ProductName, &request.ProductSlug, &request.ProductImage,
		&request.Status, &request.AdminNotes, &request.CreatedAt, &request.UpdatedAt,
	) {
		return models.Request{}, false
	}
	return request, true
}
