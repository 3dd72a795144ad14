// Package notifications defines the concrete messages Santhai sends:
// order confirmations, status updates, admin alerts and test messages.
// Rendering from the store's message templates happens in the notifier
// service; the types here only carry the finished content to a channel.
package notifications

import (
	"github.com/muthuvel/santhai/pkg/mail"
	"github.com/muthuvel/santhai/pkg/notification"
)

// OrderConfirmation is sent to the customer after checkout.
type OrderConfirmation struct {
	Subject  string
	HTMLBody string
	WhatsApp notification.WhatsAppData
	SMTP     *mail.SMTP

	SendWhatsApp bool
}

func (n *OrderConfirmation) Via() []string {
	channels := []string{"mail"}
	if n.SendWhatsApp {
		channels = append(channels, "whatsapp")
	}
	return channels
}

func (n *OrderConfirmation) ToMail() notification.MailData {
	return notification.MailData{Subject: n.Subject, Body: n.HTMLBody, SMTP: n.SMTP}
}

func (n *OrderConfirmation) ToWhatsApp() notification.WhatsAppData {
	return n.WhatsApp
}

// OrderStatusUpdate is sent to the customer when an admin moves the
// order to a new status.
type OrderStatusUpdate struct {
	Subject  string
	HTMLBody string
	WhatsApp notification.WhatsAppData
	SMTP     *mail.SMTP

	SendWhatsApp bool
}

func (n *OrderStatusUpdate) Via() []string {
	channels := []string{"mail"}
	if n.SendWhatsApp {
		channels = append(channels, "whatsapp")
	}
	return channels
}

func (n *OrderStatusUpdate) ToMail() notification.MailData {
	return notification.MailData{Subject: n.Subject, Body: n.HTMLBody, SMTP: n.SMTP}
}

func (n *OrderStatusUpdate) ToWhatsApp() notification.WhatsAppData {
	return n.WhatsApp
}

// AdminAlert is a plain email to the store operator: new order placed,
// settings changed, low stock.
type AdminAlert struct {
	Subject  string
	HTMLBody string
	SMTP     *mail.SMTP
}

func (n *AdminAlert) Via() []string { return []string{"mail"} }

func (n *AdminAlert) ToMail() notification.MailData {
	return notification.MailData{Subject: n.Subject, Body: n.HTMLBody, SMTP: n.SMTP}
}

// TestMessage verifies the configured SMTP or Twilio credentials from
// the admin settings page.
type TestMessage struct {
	Channel  string // "mail" or "whatsapp"
	Subject  string
	Body     string
	WhatsApp notification.WhatsAppData
	SMTP     *mail.SMTP
}

func (n *TestMessage) Via() []string { return []string{n.Channel} }

func (n *TestMessage) ToMail() notification.MailData {
	return notification.MailData{Subject: n.Subject, Body: n.Body, SMTP: n.SMTP}
}

func (n *TestMessage) ToWhatsApp() notification.WhatsAppData {
	return n.WhatsApp
}
