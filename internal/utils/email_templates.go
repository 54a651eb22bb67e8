package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hairrent_back_end/internal/models"
)

// Gabarits d'emails de la boutique. Pas de moteur de templates : de
// l'interpolation pure, avec l'en-tête et le pied de page fixes du shop.

func letterhead(tagline, color string) string {
	h := `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 8px;">
    <div style="text-align: center; margin-bottom: 20px;">
        <h2 style="color: #333;">Hair Rent Shop</h2>`
	if tagline != "" {
		h += fmt.Sprintf(`
        <h3 style="color: %s;">%s</h3>`, color, tagline)
	}
	return h + `
    </div>
`
}

func footer() string {
	return fmt.Sprintf(`
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #888; text-align: center;">
        <p>&copy; %d Hair Rent Shop. All rights reserved.</p>
        <p>If you have any questions, please reply to this email.</p>
    </div>
</div>
`, time.Now().Year())
}

// rands formate un montant texte WooCommerce en rands: "R 1234.50"
func rands(amount string) string {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "R " + amount
	}
	return fmt.Sprintf("R %.2f", f)
}

func itemsTable(items []models.OrderItem, total string) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(`
        <tr>
            <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
            <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
        </tr>`, item.ProductName, rands(item.Price)))
	}

	return fmt.Sprintf(`
    <table style="width: 100%%; border-collapse: collapse;">%s
        <tr>
            <td style="padding: 15px 10px; font-weight: bold; font-size: 1.1em;">Total:</td>
            <td style="padding: 15px 10px; text-align: right; font-weight: bold; font-size: 1.1em; color: #8B4513;">%s</td>
        </tr>
    </table>
`, rows.String(), rands(total))
}

func orderNumberBox(orderNumber string) string {
	return fmt.Sprintf(`
    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p style="margin: 0;"><strong>Order Number:</strong> #%s</p>
    </div>
`, orderNumber)
}

// =============================================
// EMAILS DEMANDES D'ACHAT
// =============================================

// RequestStatusEmail compose l'email de changement de statut d'une demande
// (ACCEPTED / REJECTED / WAITLISTED)
func RequestStatusEmail(req models.Request, status, adminNote string) (string, string) {
	subject := fmt.Sprintf("Request Update: %s - %s", req.ProductName, status)

	var body string
	switch status {
	case models.RequestStatusAccepted:
		body = fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Great news! Your purchase request for <strong>%s</strong> has been <strong>ACCEPTED</strong>.</p>
    <p>We will be in touch shortly with payment details and shipping arrangements.</p>%s`,
			req.CustomerName, req.ProductName, adminNoteBlock(adminNote))
	case models.RequestStatusRejected:
		body = fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Thank you for your interest in <strong>%s</strong>.</p>
    <p>Unfortunately, we are unable to fulfill your request at this time. The request has been marked as <strong>REJECTED</strong> (likely due to the item being sold or unavailable).</p>%s
    <p>Please check our shop for other available items.</p>`,
			req.CustomerName, req.ProductName, adminNoteBlock(adminNote))
	case models.RequestStatusWaitlisted:
		body = fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>We have received your request for <strong>%s</strong>.</p>
    <p>You have been added to our <strong>WAITLIST</strong>. We will notify you via email as soon as this item (or a similar one) becomes available.</p>%s`,
			req.CustomerName, req.ProductName, adminNoteBlock(adminNote))
	}

	return subject, letterhead("", "") + body + footer()
}

func adminNoteBlock(note string) string {
	if note == "" {
		return ""
	}
	return fmt.Sprintf(`
    <p><strong>Note from Admin:</strong> %s</p>`, note)
}

// RequestReplyEmail compose l'email de réponse admin sur une demande
func RequestReplyEmail(req models.Request, message string) (string, string) {
	subject := fmt.Sprintf("Re: Purchase Request for %s", req.ProductName)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>You have a new message regarding your request for <strong>%s</strong>:</p>
    <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #0070f3; margin: 20px 0;">
        %s
    </div>`,
		req.CustomerName, req.ProductName, strings.ReplaceAll(message, "\n", "<br>"))

	return subject, letterhead("", "") + body + footer()
}

// =============================================
// EMAILS COMMANDES
// =============================================

// OrderReceivedEmail compose l'accusé de réception initial (sans détails EFT).
// Désactivé au niveau de la création de commande pour l'instant.
func OrderReceivedEmail(order models.Order) (string, string) {
	subject := fmt.Sprintf("Order Request Received - #%s", order.OrderNumber)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Thank you for your order request! We've received your inquiry and will review it shortly.</p>
%s
    <h3 style="color: #333;">Requested Items:</h3>
%s
    <div style="background-color: #fff3cd; padding: 15px; border-left: 4px solid #ffc107; margin: 20px 0;">
        <h4 style="margin-top: 0; color: #856404;">Next Steps</h4>
        <p style="margin: 5px 0;">We're checking availability of your requested items.</p>
        <p style="margin: 5px 0;">You'll receive an email once we've reviewed your order with:</p>
        <ul style="margin: 10px 0; padding-left: 20px;">
            <li>Confirmation of availability</li>
            <li>Payment instructions (if approved)</li>
        </ul>
    </div>
    <p>This usually takes a few hours during business hours. We'll be in touch soon!</p>`,
		order.CustomerName, orderNumberBox(order.OrderNumber), itemsTable(order.Items, order.Total))

	return subject, letterhead("Order Request Received", "#4CAF50") + body + footer()
}

// OrderApprovedEmail compose l'email d'approbation avec coordonnées EFT,
// lien de dépôt de preuve de paiement, et QR code du lien.
func OrderApprovedEmail(order models.Order) (string, string) {
	subject := fmt.Sprintf("Order Approved - Payment Details - #%s", order.OrderNumber)

	uploadURL := fmt.Sprintf("%s/orders/%s", PublicURL(), order.OrderNumber)

	qrBlock := ""
	if qr, err := GenerateLinkQR(uploadURL); err == nil {
		qrBlock = fmt.Sprintf(`
    <div style="text-align: center; margin: 10px 0;">
        <img src="%s" alt="Upload link QR code" width="128" height="128" />
        <p style="font-size: 0.8rem; color: #888; margin: 5px 0;">Scan to open your order page</p>
    </div>`, qr)
	}

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Great news! Your order has been <strong>approved</strong> and the items are available for you.</p>
%s
    <h3 style="color: #333;">Order Items:</h3>
%s
    <div style="background-color: #d4edda; padding: 15px; border-left: 4px solid #28a745; margin: 20px 0;">
        <h4 style="margin-top: 0; color: #155724;">EFT Payment Details</h4>
        <p style="margin: 5px 0;"><strong>Bank:</strong> FNB</p>
        <p style="margin: 5px 0;"><strong>Account Name:</strong> HR-SMP</p>
        <p style="margin: 5px 0;"><strong>Account Type:</strong> Cheque</p>
        <p style="margin: 5px 0;"><strong>Account Number:</strong> 6301 3876 529</p>
        <p style="margin: 5px 0;"><strong>Branch Code:</strong> 200 607</p>
        <p style="margin: 5px 0;"><strong>Reference:</strong> %s</p>
    </div>
    <p><strong>Important:</strong> Please use your <strong>Name &amp; Surname</strong> as the payment reference.</p>
    <p>We will process your order once payment is confirmed. This usually takes 1-2 business days.</p>
    <div style="text-align: center; margin: 20px 0;">
        <a href="%s" style="display: inline-block; padding: 12px 24px; background: #8B4513; color: white; text-decoration: none; border-radius: 4px; font-weight: bold;">
            Upload Proof of Payment
        </a>
    </div>
%s
    <p style="font-size: 0.9rem; color: #666;">After making the payment, please upload your proof of payment using the link above. This will help us process your order faster.</p>`,
		order.CustomerName, orderNumberBox(order.OrderNumber), itemsTable(order.Items, order.Total),
		order.CustomerName, uploadURL, qrBlock)

	return subject, letterhead("Order Approved! 🎉", "#4CAF50") + body + footer()
}

// PaymentConfirmedEmail compose l'email de confirmation de paiement (statut PAID)
func PaymentConfirmedEmail(order models.Order) (string, string) {
	subject := fmt.Sprintf("Payment Confirmed - Order #%s", order.OrderNumber)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Great news! We've received and confirmed your payment for order <strong>#%s</strong>.</p>
    <div style="background-color: #d4edda; padding: 15px; border-left: 4px solid #28a745; margin: 20px 0;">
        <p style="margin: 0; color: #155724;"><strong>✓ Payment Status:</strong> Confirmed</p>
    </div>
    <h3 style="color: #333;">Order Summary:</h3>
%s
    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <h4 style="margin-top: 0; color: #333;">What's Next?</h4>
        <p style="margin: 5px 0;">We're now processing your order and will prepare your items for delivery/collection.</p>
        <p style="margin: 5px 0;">You'll receive another email with tracking/collection details soon.</p>
    </div>
    <p>Thank you for choosing Hair Rent Shop! If you have any questions, feel free to reply to this email.</p>`,
		order.CustomerName, order.OrderNumber, itemsTable(order.Items, order.Total))

	return subject, letterhead("Payment Confirmed! 🎉", "#28a745") + body + footer()
}

// OrderWaitlistedEmail compose l'avis de mise en liste d'attente
func OrderWaitlistedEmail(order models.Order) (string, string) {
	subject := fmt.Sprintf("Order Update - Waitlisted - #%s", order.OrderNumber)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Thank you for your order request.</p>
%s
    <p>Some of your requested items are not available right now, so your order has been placed on our <strong>WAITLIST</strong>.</p>
    <p>We will notify you via email as soon as the items become available.</p>`,
		order.CustomerName, orderNumberBox(order.OrderNumber))

	return subject, letterhead("Order Waitlisted", "#ffc107") + body + footer()
}

// OrderRejectedEmail compose l'avis d'indisponibilité
func OrderRejectedEmail(order models.Order) (string, string) {
	subject := fmt.Sprintf("Order Update - #%s", order.OrderNumber)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Thank you for your order request.</p>
%s
    <p>Unfortunately, we are unable to fulfill your order at this time. The requested items are no longer available.</p>
    <p>Please check our shop for other available items — new stock arrives regularly.</p>`,
		order.CustomerName, orderNumberBox(order.OrderNumber))

	return subject, letterhead("Order Update", "#dc3545") + body + footer()
}

// OrderReplyEmail compose l'email de nouveau message sur une commande
func OrderReplyEmail(order models.Order, message string) (string, string) {
	subject := fmt.Sprintf("New Message - Order #%s", order.OrderNumber)

	body := fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>You have received a new message regarding your order <strong>#%s</strong>:</p>
    <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #007bff; margin: 20px 0;">
        <p style="margin: 0; white-space: pre-wrap;">%s</p>
    </div>
    <div style="text-align: center; margin: 20px 0;">
        <a href="%s/orders/%s" style="display: inline-block; padding: 12px 24px; background: #007bff; color: white; text-decoration: none; border-radius: 4px; font-weight: bold;">
            View Order &amp; Reply
        </a>
    </div>`,
		order.CustomerName, order.OrderNumber, message, PublicURL(), order.OrderNumber)

	return subject, letterhead("New Message Received", "#007bff") + body + footer()
}

// =============================================
// EMAILS ADMIN
// =============================================

// AdminOrderNotification compose l'avis admin de nouvelle commande.
// Désactivé au niveau de la création de commande pour l'instant.
func AdminOrderNotification(order models.Order) (string, string) {
	subject := fmt.Sprintf("New Order Received - #%s", order.OrderNumber)

	var itemsList strings.Builder
	for _, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf(`
        <li>%s - %s</li>`, item.ProductName, rands(item.Price)))
	}

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 8px;">
    <h2 style="color: #333;">New Order Received</h2>
    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p style="margin: 5px 0;"><strong>Order Number:</strong> #%s</p>
        <p style="margin: 5px 0;"><strong>Customer:</strong> %s</p>
        <p style="margin: 5px 0;"><strong>Email:</strong> %s</p>
        <p style="margin: 5px 0;"><strong>Phone:</strong> %s</p>
    </div>
    <h3>Order Items:</h3>
    <ul>%s</ul>
    <p style="font-size: 1.2em;"><strong>Total:</strong> %s</p>
    <p><strong>Payment Method:</strong> EFT</p>
    <p><strong>Status:</strong> Awaiting Payment</p>
    <p style="margin-top: 20px;">Please check the admin panel for full order details.</p>
</div>`,
		order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		itemsList.String(), rands(order.Total))

	return subject, html
}

// POPUploadedNotification compose l'avis admin de dépôt d'une preuve de paiement
func POPUploadedNotification(order models.Order, popURL string) (string, string) {
	subject := fmt.Sprintf("Proof of Payment Uploaded - Order #%s", order.OrderNumber)

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 8px;">
    <div style="text-align: center; margin-bottom: 20px;">
        <h2 style="color: #333;">Hair Rent Shop - Admin Notification</h2>
        <h3 style="color: #007bff;">Proof of Payment Uploaded</h3>
    </div>
    <p>A customer has uploaded proof of payment for their order.</p>
    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p style="margin: 5px 0;"><strong>Order Number:</strong> #%s</p>
        <p style="margin: 5px 0;"><strong>Customer Name:</strong> %s</p>
        <p style="margin: 5px 0;"><strong>Customer Email:</strong> %s</p>
        <p style="margin: 5px 0;"><strong>File:</strong> %s</p>
    </div>
    <div style="background-color: #d1ecf1; padding: 15px; border-left: 4px solid #0c5460; margin: 20px 0;">
        <p style="margin: 0; color: #0c5460;"><strong>Action Required:</strong> Please review the proof of payment and mark the order as PAID if the payment is confirmed.</p>
    </div>
    <div style="text-align: center; margin: 20px 0;">
        <a href="%s/admin/orders" style="display: inline-block; padding: 12px 24px; background: #007bff; color: white; text-decoration: none; border-radius: 4px; font-weight: bold;">
            View Order in Admin Panel
        </a>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #888; text-align: center;">
        <p>&copy; %d Hair Rent Shop - Admin Notification</p>
    </div>
</div>`,
		order.OrderNumber, order.CustomerName, order.CustomerEmail, popURL, PublicURL(), time.Now().Year())

	return subject, html
}
