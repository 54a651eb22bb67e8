package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hairrent_back_end/internal/database"
)

// Événements temps réel du back-office, diffusés via Redis pub/sub vers
// les websockets admin connectées.

const AdminEventsChannel = "admin:events"

type AdminEvent struct {
	Type        string    `json:"type"`
	ResourceID  string    `json:"resourceId"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Customer    string    `json:"customer,omitempty"`
	At          time.Time `json:"at"`
}

// PublishAdminEvent diffuse un événement au canal admin. Best-effort.
func PublishAdminEvent(eventType, resourceID, orderNumber, customer string) {
	if database.Redis == nil {
		return
	}

	event := AdminEvent{
		Type:        eventType,
		ResourceID:  resourceID,
		OrderNumber: orderNumber,
		Customer:    customer,
		At:          time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := database.Redis.Publish(context.Background(), AdminEventsChannel, data).Err(); err != nil {
		log.Println("⚠️ Erreur publication événement admin:", err)
	}
}
