package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// AdminEventsFeed pousse au back-office les événements boutique en temps réel
// (nouvelle commande, nouvelle demande, preuve de paiement déposée)
func AdminEventsFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal des événements admin
	pubsub := database.Redis.Subscribe(ctx, services.AdminEventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Message de connexion
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Flux d'événements boutique activé",
	})

	// Boucle d'écoute
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
