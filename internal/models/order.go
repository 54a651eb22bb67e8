package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande
const (
	OrderStatusPending    = "PENDING"
	OrderStatusApproved   = "APPROVED"
	OrderStatusWaitlisted = "WAITLISTED"
	OrderStatusRejected   = "REJECTED"
	OrderStatusPaid       = "PAID"
)

// orderTransitions définit les transitions de statut autorisées.
// REJECTED et PAID sont terminaux.
var orderTransitions = map[string]map[string]bool{
	OrderStatusPending: {
		OrderStatusApproved:   true,
		OrderStatusWaitlisted: true,
		OrderStatusRejected:   true,
	},
	OrderStatusApproved: {
		OrderStatusPaid:       true,
		OrderStatusWaitlisted: true,
		OrderStatusRejected:   true,
	},
	OrderStatusWaitlisted: {
		OrderStatusApproved: true,
		OrderStatusRejected: true,
	},
	OrderStatusRejected: {},
	OrderStatusPaid:     {},
}

// CanTransitionOrder vérifie qu'un changement de statut est autorisé
func CanTransitionOrder(from, to string) bool {
	return orderTransitions[from][to]
}

// IsOrderStatus vérifie qu'une chaîne est un statut de commande connu
func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

type Order struct {
	ID              gocql.UUID  `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	Notes           string      `json:"notes"`
	PaymentMethod   string      `json:"paymentMethod"`
	DeliveryMethod  string      `json:"deliveryMethod"`
	DeliveryCost    string      `json:"deliveryCost"`
	OrderType       string      `json:"orderType"`
	Items           []OrderItem `json:"items"`
	Total           string      `json:"total"`
	Status          string      `json:"status"`
	AdminNotes      string      `json:"adminNotes"`
	ProofOfPayment  string      `json:"proofOfPayment,omitempty"`
	PopUploadedAt   *time.Time  `json:"popUploadedAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	Messages        []Message   `json:"messages,omitempty"`
}

// OrderItem est une ligne de commande telle que soumise par le panier
// côté client. Les prix arrivent en texte (montants WooCommerce).
type OrderItem struct {
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}
