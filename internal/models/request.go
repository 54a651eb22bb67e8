package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de demande d'achat
const (
	RequestStatusPending    = "PENDING"
	RequestStatusAccepted   = "ACCEPTED"
	RequestStatusRejected   = "REJECTED"
	RequestStatusWaitlisted = "WAITLISTED"
	RequestStatusArchived   = "ARCHIVED"
)

// ARCHIVED est terminal, tout le reste peut y aboutir.
var requestTransitions = map[string]map[string]bool{
	RequestStatusPending: {
		RequestStatusAccepted:   true,
		RequestStatusRejected:   true,
		RequestStatusWaitlisted: true,
		RequestStatusArchived:   true,
	},
	RequestStatusAccepted: {
		RequestStatusArchived: true,
	},
	RequestStatusRejected: {
		RequestStatusArchived: true,
	},
	RequestStatusWaitlisted: {
		RequestStatusAccepted: true,
		RequestStatusRejected: true,
		RequestStatusArchived: true,
	},
	RequestStatusArchived: {},
}

// CanTransitionRequest vérifie qu'un changement de statut est autorisé
func CanTransitionRequest(from, to string) bool {
	return requestTransitions[from][to]
}

// IsRequestStatus vérifie qu'une chaîne est un statut de demande connu
func IsRequestStatus(s string) bool {
	_, ok := requestTransitions[s]
	return ok
}

// Request est une demande de disponibilité avant achat — pas une commande.
type Request struct {
	ID            gocql.UUID `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Message       string     `json:"message"`
	ProductID     int        `json:"productId"`
	ProductName   string     `json:"productName"`
	ProductSlug   string     `json:"productSlug"`
	ProductImage  string     `json:"productImage"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"adminNotes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Messages      []Message  `json:"messages,omitempty"`
}
