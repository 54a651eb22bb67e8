package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
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

const (
	popMaxSize = 5 * 1024 * 1024 // 5MB
)

var popAllowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

var popAllowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// popFilename construit le nom du fichier stocké. L'extension cliente n'est
// gardée que si elle fait partie des types admis — sinon on prend celle
// dérivée du type MIME, pour ne jamais servir autre chose qu'une image ou
// un PDF depuis le montage statique /uploads.
func popFilename(orderNumber, clientName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(clientName))
	if !popAllowedExts[ext] {
		ext = popAllowedTypes[contentType]
	}
	return fmt.Sprintf("pop_%s_%d%s", orderNumber, time.Now().UnixMilli(), ext)
}

// =============================================
// CRÉATION DE COMMANDE (côté client)
// =============================================

type createOrderInput struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Notes           string             `json:"notes"`
	PaymentMethod   string             `json:"paymentMethod"`
	DeliveryMethod  string             `json:"deliveryMethod"`
	DeliveryCost    string             `json:"deliveryCost"`
	OrderType       string             `json:"orderType"`
	Items           []models.OrderItem `json:"items"`
	Total           string             `json:"total"`
}

// CreateOrder enregistre une commande soumise depuis le panier client
func CreateOrder(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CustomerName == "" || input.CustomerEmail == "" ||
		input.CustomerPhone == "" || input.CustomerAddress == "" || len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	order := models.Order{
		ID:              gocql.TimeUUID(),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		PaymentMethod:   input.PaymentMethod,
		DeliveryMethod:  input.DeliveryMethod,
		DeliveryCost:    input.DeliveryCost,
		OrderType:       input.OrderType,
		Items:           input.Items,
		Total:           input.Total,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "EFT"
	}
	if order.OrderType == "" {
		order.OrderType = "REGULAR"
	}
	if order.Total == "" {
		order.Total = "0"
	}

	// Réservation du numéro de commande en LWT : l'unicité est garantie
	// même pour deux créations dans la même milliseconde
	for attempt := 0; ; attempt++ {
		order.OrderNumber = utils.GenerateOrderNumber()
		applied, err := session.Query(
			`INSERT INTO orders_by_number (order_number, order_id) VALUES (?, ?) IF NOT EXISTS`,
			order.OrderNumber, order.ID,
		).MapScanCAS(map[string]interface{}{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
			return
		}
		if applied {
			break
		}
		if attempt >= 3 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": "could not allocate order number"})
			return
		}
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	if err := session.Query(`
		INSERT INTO orders (order_id, order_number, customer_name, customer_email, customer_phone,
			customer_address, notes, payment_method, delivery_method, delivery_cost, order_type,
			items, total, status, admin_notes, proof_of_payment, pop_uploaded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.CustomerAddress, order.Notes, order.PaymentMethod, order.DeliveryMethod, order.DeliveryCost,
		order.OrderType, string(itemsJSON), order.Total, order.Status, "", "", nil, order.CreatedAt,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	// Les emails de création (client + admin) sont volontairement désactivés :
	// les détails EFT ne partent qu'à l'approbation.
	// subject, html := utils.OrderReceivedEmail(order)
	// services.Notify("order_received", order.CustomerEmail, subject, html)
	// subject, html = utils.AdminOrderNotification(order)
	// services.Notify("admin_new_order", utils.AdminEmail(), subject, html)

	services.PublishAdminEvent("order_created", order.ID.String(), order.OrderNumber, order.CustomerName)

	log.Printf("✅ Commande créée: %s (%s)", order.OrderNumber, order.CustomerEmail)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderNumber": order.OrderNumber,
		"orderId":     order.ID.String(),
	})
}

// =============================================
// LECTURE
// =============================================

// GetOrder retourne une commande par id ou par numéro de commande,
// fil de messages inclus
func GetOrder(c *gin.Context) {
	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	order, err := resolveOrder(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	messages, err := loadMessages(session, "messages_by_order", "order_id", order.ID)
	if err != nil {
		log.Println("❌ Erreur lecture messages commande:", err)
	}
	order.Messages = messages

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders retourne les commandes, filtres status / orderNumber optionnels,
// de la plus récente à la plus ancienne
func ListOrders(c *gin.Context) {
	statusFilter := c.Query("status")
	numberFilter := c.Query("orderNumber")

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	// Scan complet puis filtre en mémoire : volume boutique, pas de souci
	iter := session.Query(orderSelectColumns + ` FROM orders`).Iter()

	var orders []models.Order
	for {
		order, ok := scanOrder(iter)
		if !ok {
			break
		}
		if statusFilter != "" && order.Status != statusFilter {
			continue
		}
		if numberFilter != "" && order.OrderNumber != numberFilter {
			continue
		}
		orders = append(orders, order)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// =============================================
// CHANGEMENT DE STATUT (admin)
// =============================================

// UpdateOrderStatus applique une transition de statut puis envoie la
// notification correspondante. L'échec d'email est consultatif : le
// changement de statut n'est jamais annulé.
func UpdateOrderStatus(c *gin.Context) {
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

	order, err := resolveOrder(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.IsOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status %q", input.Status)})
		return
	}

	// Statut identique = mise à jour des notes seulement, pas d'email
	statusChanged := input.Status != order.Status
	if statusChanged && !models.CanTransitionOrder(order.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition %s → %s", order.Status, input.Status),
		})
		return
	}

	previousStatus := order.Status
	if input.AdminNotes != "" {
		order.AdminNotes = input.AdminNotes
	}
	order.Status = input.Status

	if err := session.Query(`UPDATE orders SET status = ?, admin_notes = ? WHERE order_id = ?`,
		order.Status, order.AdminNotes, order.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}

	emailSent := false
	var emailError interface{}
	if statusChanged {
		if sendErr := notifyOrderStatus(*order); sendErr != nil {
			emailError = sendErr.Error()
		} else {
			emailSent = true
		}
	}

	utils.LogAdminAction(c, utils.ActionOrderStatusUpdate, utils.ResourceOrder, order.ID.String(),
		gin.H{"status": previousStatus}, gin.H{"status": order.Status, "adminNotes": order.AdminNotes})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"order":      order,
		"emailSent":  emailSent,
		"emailError": emailError,
	})
}

// notifyOrderStatus envoie exactement un des quatre emails de statut
func notifyOrderStatus(order models.Order) error {
	var subject, html string
	switch order.Status {
	case models.OrderStatusApproved:
		subject, html = utils.OrderApprovedEmail(order)
	case models.OrderStatusPaid:
		subject, html = utils.PaymentConfirmedEmail(order)
	case models.OrderStatusWaitlisted:
		subject, html = utils.OrderWaitlistedEmail(order)
	case models.OrderStatusRejected:
		subject, html = utils.OrderRejectedEmail(order)
	default:
		return nil
	}
	return services.Notify("order_status_"+strings.ToLower(order.Status), order.CustomerEmail, subject, html)
}

// =============================================
// PREUVE DE PAIEMENT
// =============================================

// UploadPOP reçoit le fichier de preuve de paiement d'une commande approuvée
func UploadPOP(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := popAllowedTypes[contentType]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, and PDF files are allowed."})
		return
	}

	if file.Size > popMaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 5MB limit"})
		return
	}

	session, err := database.GetShopSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	order, err := resolveOrder(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status != models.OrderStatusApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only upload proof of payment for approved orders"})
		return
	}

	filename := popFilename(order.OrderNumber, file.Filename, contentType)

	popPath, err := services.SavePOP(c.Request.Context(), file, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload proof of payment"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE orders SET proof_of_payment = ?, pop_uploaded_at = ? WHERE order_id = ?`,
		popPath, now, order.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload proof of payment"})
		return
	}
	order.ProofOfPayment = popPath
	order.PopUploadedAt = &now

	// Avis admin best-effort : l'échec d'email ne fait pas échouer l'upload
	subject, html := utils.POPUploadedNotification(*order, popPath)
	if sendErr := services.Notify("admin_pop_uploaded", utils.AdminEmail(), subject, html); sendErr != nil {
		log.Println("❌ Erreur envoi avis POP admin:", sendErr)
	}

	services.PublishAdminEvent("pop_uploaded", order.ID.String(), order.OrderNumber, order.CustomerName)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Proof of payment uploaded successfully",
		"order":   order,
	})
}

// =============================================
// RÉPONSES (fil de discussion)
// =============================================

// ReplyOrder ajoute un message ADMIN au fil de la commande et prévient
// le client par email (best-effort)
func ReplyOrder(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
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

	order, err := resolveOrder(session, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	message := models.Message{
		ID:        gocql.TimeUUID(),
		Sender:    models.SenderAdmin,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`
		INSERT INTO messages_by_order (order_id, message_id, sender, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, message.ID, message.Sender, message.Content, message.CreatedAt,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		return
	}

	subject, html := utils.OrderReplyEmail(*order, input.Content)
	if sendErr := services.Notify("order_reply", order.CustomerEmail, subject, html); sendErr != nil {
		log.Println("❌ Erreur envoi email de réponse:", sendErr)
	}

	utils.LogAdminAction(c, utils.ActionOrderReply, utils.ResourceOrder, order.ID.String(), nil,
		gin.H{"content": input.Content})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// =============================================
// HELPERS SCYLLA
// =============================================

const orderSelectColumns = `SELECT order_id, order_number, customer_name, customer_email, customer_phone,
	customer_address, notes, payment_method, delivery_method, delivery_cost, order_type,
	items, total, status, admin_notes, proof_of_payment, pop_uploaded_at, created_at`

// resolveOrder tente d'abord le lookup par id, puis par numéro de commande
func resolveOrder(session *gocql.Session, idOrNumber string) (*models.Order, error) {
	if parsed, err := uuid.Parse(idOrNumber); err == nil {
		if order, err := fetchOrderByID(session, gocql.UUID(parsed)); err == nil {
			return order, nil
		}
	}

	var orderID gocql.UUID
	if err := session.Query(`SELECT order_id FROM orders_by_number WHERE order_number = ?`, idOrNumber).
		Scan(&orderID); err != nil {
		return nil, err
	}
	return fetchOrderByID(session, orderID)
}

func fetchOrderByID(session *gocql.Session, id gocql.UUID) (*models.Order, error) {
	var (
		order         models.Order
		itemsJSON     string
		popUploadedAt time.Time
	)

	err := session.Query(orderSelectColumns+` FROM orders WHERE order_id = ?`, id).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.CustomerAddress, &order.Notes, &order.PaymentMethod, &order.DeliveryMethod, &order.DeliveryCost,
		&order.OrderType, &itemsJSON, &order.Total, &order.Status, &order.AdminNotes,
		&order.ProofOfPayment, &popUploadedAt, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !popUploadedAt.IsZero() {
		order.PopUploadedAt = &popUploadedAt
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			log.Printf("⚠️ Items illisibles pour la commande %s: %v", order.OrderNumber, err)
		}
	}

	return &order, nil
}

// scanOrder lit la ligne suivante d'un iterateur de commandes
func scanOrder(iter *gocql.Iter) (models.Order, bool) {
	var (
		order         models.Order
		itemsJSON     string
		popUploadedAt time.Time
	)

	if !iter.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.CustomerAddress, &order.Notes, &order.PaymentMethod, &order.DeliveryMethod, &order.DeliveryCost,
		&order.OrderType, &itemsJSON, &order.Total, &order.Status, &order.AdminNotes,
		&order.ProofOfPayment, &popUploadedAt, &order.CreatedAt,
	) {
		return models.Order{}, false
	}

	if !popUploadedAt.IsZero() {
		order.PopUploadedAt = &popUploadedAt
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			log.Printf("⚠️ Items illisibles pour la commande %s: %v", order.OrderNumber, err)
		}
	}

	return order, true
}

// loadMessages retourne le fil de messages d'une commande ou d'une demande,
// du plus ancien au plus récent (clustering timeuuid)
func loadMessages(session *gocql.Session, table, keyColumn string, id gocql.UUID) ([]models.Message, error) {
	query := fmt.Sprintf(`SELECT message_id, sender, content, created_at FROM %s WHERE %s = ?`, table, keyColumn)
	iter := session.Query(query, id).Iter()

	var messages []models.Message
	var m models.Message
	for iter.Scan(&m.ID, &m.Sender, &m.Content, &m.CreatedAt) {
		messages = append(messages, m)
		m = models.Message{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
