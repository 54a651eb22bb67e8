package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/models"
)

// Tests de bout en bout sur une vraie instance ScyllaDB (tables de
// scripts/scylla_init.cql). Ignorés quand SCYLLA_HOSTS n'est pas configuré.

func ensureScylla(t *testing.T) *gocql.Session {
	t.Helper()
	if os.Getenv("SCYLLA_HOSTS") == "" {
		t.Skip("SCYLLA_HOSTS non configuré — test ScyllaDB ignoré")
	}
	if database.Scylla == nil {
		require.NoError(t, database.InitScyllaDB())
	}
	session, err := database.GetShopSession()
	require.NoError(t, err)
	return session
}

// Force un échec d'envoi immédiat (connexion refusée) pour vérifier que
// l'échec d'email reste consultatif
func breakSMTP(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_USER", "shop")
	t.Setenv("SMTP_PASS", "x")
	t.Setenv("SMTP_HOST", "127.0.0.1")
	t.Setenv("SMTP_PORT", "1")
}

func fetchOrder(t *testing.T, r *gin.Engine, idOrNumber string) models.Order {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+idOrNumber, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payload struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Order
}

func outboxHasAttempt(t *testing.T, session *gocql.Session, recipient, kind string) bool {
	t.Helper()
	iter := session.Query(`SELECT recipient, kind, attempts FROM notification_outbox`).Iter()

	var (
		r        string
		k        string
		attempts int
	)
	found := false
	for iter.Scan(&r, &k, &attempts) {
		if r == recipient && k == kind && attempts > 0 {
			found = true
		}
	}
	require.NoError(t, iter.Close())
	return found
}

func TestOrderLifecycleScylla(t *testing.T) {
	session := ensureScylla(t)
	breakSMTP(t)
	r := ordersRouter()

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	body := fmt.Sprintf(`{
		"customerName": "Jane Doe",
		"customerEmail": "%s",
		"customerPhone": "0820000000",
		"customerAddress": "1 Main Rd, Cape Town",
		"items": [{"productId": 1, "productName": "22 inch Blonde Weft", "price": "1200", "quantity": 1}],
		"total": "1200"
	}`, email)

	w := postJSON(t, r, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		OrderNumber string `json:"orderNumber"`
		OrderID     string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.OrderNumber)

	// Lookup par id et par numéro de commande : même enregistrement
	byID := fetchOrder(t, r, created.OrderID)
	byNumber := fetchOrder(t, r, created.OrderNumber)
	assert.Equal(t, byID.ID, byNumber.ID)
	assert.Equal(t, created.OrderNumber, byNumber.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, byID.Status)

	// POP refusé tant que la commande n'est pas APPROVED, fichier valide ou pas
	w = popUploadTo(t, r, created.OrderNumber, "application/pdf", 100)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "approved orders")

	// Passage APPROVED : statut persisté, tentative de notification tracée,
	// échec d'email consultatif
	w = postJSON(t, r, http.MethodPatch, "/api/orders/"+created.OrderID, `{"status": "APPROVED"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var patched struct {
		EmailSent  bool        `json:"emailSent"`
		EmailError interface{} `json:"emailError"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.False(t, patched.EmailSent)
	assert.NotNil(t, patched.EmailError)

	assert.Equal(t, models.OrderStatusApproved, fetchOrder(t, r, created.OrderID).Status)
	assert.True(t, outboxHasAttempt(t, session, email, "order_status_approved"))

	// La réponse admin ajoute exactement un message ADMIN, même si l'email échoue
	w = postJSON(t, r, http.MethodPost, "/api/orders/"+created.OrderID+"/reply", `{"content": "We will ship on Monday."}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	messages := fetchOrder(t, r, created.OrderID).Messages
	require.Len(t, messages, 1)
	assert.Equal(t, models.SenderAdmin, messages[0].Sender)
	assert.Equal(t, "We will ship on Monday.", messages[0].Content)
}

func TestListOrdersTolerantOfCorruptItems(t *testing.T) {
	session := ensureScylla(t)

	// Une ligne dont la colonne items n'est pas du JSON valide ne doit pas
	// faire échouer le listing
	orderNumber := fmt.Sprintf("HRX%d", time.Now().UnixNano())
	require.NoError(t, session.Query(`
		INSERT INTO orders (order_id, order_number, customer_name, customer_email, items, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), orderNumber, "Jane Doe", "corrupt@example.com",
		"pas-du-json", "0", models.OrderStatusPending, time.Now(),
	).Exec())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?orderNumber="+orderNumber, nil)
	ordersRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), orderNumber)
}
