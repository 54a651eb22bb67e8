package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Expéditeurs possibles d'un message
const (
	SenderCustomer = "CUSTOMER"
	SenderAdmin    = "ADMIN"
)

// Message est une note du fil de discussion d'une commande ou d'une demande.
// Append-only : jamais modifié ni supprimé.
type Message struct {
	ID        gocql.UUID `json:"id"`
	Sender    string     `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}
