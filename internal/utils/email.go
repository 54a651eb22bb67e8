package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un email HTML via SMTP.
// Si SMTP_USER n'est pas configuré, le message est loggé en console et
// l'envoi est considéré comme réussi — mode développement assumé, tous
// les appelants traitent déjà l'échec d'email comme non bloquant.
func SendEmail(to, subject, html string) error {
	smtpUser := os.Getenv("SMTP_USER")
	if smtpUser == "" {
		log.Println("---------------------------------------------------")
		log.Println("⚠️ SMTP_USER non configuré — email loggé en console")
		log.Println("To:", to)
		log.Println("Subject:", subject)
		log.Println("Body:", html)
		log.Println("---------------------------------------------------")
		return nil
	}

	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "info@hair-rent.co.za"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 465
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(smtpUser),
		mail.WithPassword(os.Getenv("SMTP_PASS")),
	}
	// 465 = SSL implicite, sinon STARTTLS obligatoire
	if port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// AdminEmail retourne l'adresse de notification admin
func AdminEmail() string {
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		return v
	}
	return "sales@hair-rent.co.za"
}

// PublicURL retourne la base des liens insérés dans les emails
func PublicURL() string {
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}
