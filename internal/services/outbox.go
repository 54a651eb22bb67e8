package services

import (
	"log"
	"time"

	"github.com/gocql/gocql"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/utils"
)

// Outbox de notifications : chaque email est d'abord enregistré, puis envoyé.
// Le changement de statut et l'envoi ne sont pas transactionnels — l'outbox
// garde une trace des échecs et un worker les rejoue.

const (
	OutboxPending = "PENDING"
	OutboxSent    = "SENT"
	OutboxFailed  = "FAILED"

	outboxMaxAttempts   = 5
	outboxRetryInterval = time.Minute
	outboxPendingGrace  = 5 * time.Minute
)

// shouldRetryOutbox décide si une notification doit être rejouée.
// FAILED tant que le plafond de tentatives n'est pas atteint. PENDING
// seulement après le délai de grâce : la ligne est alors orpheline d'un
// envoi interrompu entre l'écriture et le marquage.
func shouldRetryOutbox(status string, attempts int, createdAt time.Time) bool {
	if attempts >= outboxMaxAttempts {
		return false
	}
	switch status {
	case OutboxFailed:
		return true
	case OutboxPending:
		return time.Since(createdAt) > outboxPendingGrace
	}
	return false
}

// Notify enregistre la notification dans l'outbox puis tente l'envoi immédiat.
// L'erreur retournée est consultative : les appelants ne doivent jamais
// annuler l'opération métier sur un échec d'email.
func Notify(kind, to, subject, html string) error {
	session, err := database.GetShopSession()
	if err != nil {
		// Sans outbox on tente quand même l'envoi direct
		log.Println("⚠️ Outbox indisponible, envoi direct:", err)
		return utils.SendEmail(to, subject, html)
	}

	id := gocql.TimeUUID()
	now := time.Now()

	if err := session.Query(`
		INSERT INTO notification_outbox (id, kind, recipient, subject, html, status, attempts, last_error, created_at, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, kind, to, subject, html, OutboxPending, 0, "", now, nil,
	).Exec(); err != nil {
		log.Println("⚠️ Erreur écriture outbox:", err)
	}

	sendErr := utils.SendEmail(to, subject, html)
	markOutbox(session, id, sendErr, 1)
	return sendErr
}

func markOutbox(session *gocql.Session, id gocql.UUID, sendErr error, attempts int) {
	if sendErr == nil {
		if err := session.Query(`UPDATE notification_outbox SET status = ?, attempts = ?, sent_at = ? WHERE id = ?`,
			OutboxSent, attempts, time.Now(), id).Exec(); err != nil {
			log.Println("⚠️ Erreur mise à jour outbox:", err)
		}
		return
	}

	if err := session.Query(`UPDATE notification_outbox SET status = ?, attempts = ?, last_error = ? WHERE id = ?`,
		OutboxFailed, attempts, sendErr.Error(), id).Exec(); err != nil {
		log.Println("⚠️ Erreur mise à jour outbox:", err)
	}
}

// StartOutboxWorker lance le rejeu périodique des notifications échouées
func StartOutboxWorker() {
	go func() {
		ticker := time.NewTicker(outboxRetryInterval)
		defer ticker.Stop()

		for range ticker.C {
			retryFailedNotifications()
		}
	}()
	log.Println("✅ Worker outbox de notifications démarré")
}

func retryFailedNotifications() {
	session, err := database.GetShopSession()
	if err != nil {
		log.Println("⚠️ Outbox worker: session indisponible:", err)
		return
	}

	// Scan complet puis filtre en mémoire : le volume de notifications d'une
	// boutique reste très faible
	iter := session.Query(`SELECT id, recipient, subject, html, status, attempts, created_at FROM notification_outbox`).Iter()

	var (
		id        gocql.UUID
		recipient string
		subject   string
		html      string
		status    string
		attempts  int
		createdAt time.Time
	)

	type pending struct {
		id        gocql.UUID
		recipient string
		subject   string
		html      string
		attempts  int
	}
	var toRetry []pending

	for iter.Scan(&id, &recipient, &subject, &html, &status, &attempts, &createdAt) {
		if shouldRetryOutbox(status, attempts, createdAt) {
			toRetry = append(toRetry, pending{id, recipient, subject, html, attempts})
		}
	}
	if err := iter.Close(); err != nil {
		log.Println("⚠️ Outbox worker: erreur lecture:", err)
		return
	}

	for _, n := range toRetry {
		sendErr := utils.SendEmail(n.recipient, n.subject, n.html)
		markOutbox(session, n.id, sendErr, n.attempts+1)
		if sendErr == nil {
			log.Printf("📧 Notification rejouée avec succès → %s", n.recipient)
		}
	}
}
