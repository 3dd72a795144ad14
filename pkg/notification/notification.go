// Package notification provides a multi-channel notification system for Santhai.
//
// Define a Notification:
//
//	type OrderConfirmation struct { Order models.Order }
//	func (n *OrderConfirmation) Via() []string { return []string{"mail", "whatsapp"} }
//	func (n *OrderConfirmation) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Order " + n.Order.OrderNumber + " confirmed",
//	        Body:    "<h1>Thank you!</h1>",
//	    }
//	}
//	func (n *OrderConfirmation) ToWhatsApp() notification.WhatsAppData {
//	    return notification.WhatsAppData{To: n.Order.DeliveryPhone, Body: "..."}
//	}
//
// Send:
//
//	notification.Send("user@example.com", &OrderConfirmation{Order: order})
package notification

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/muthuvel/santhai/pkg/http"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/mail"
)

// ------------------- Channel data structs -------------------

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
	SMTP    *mail.SMTP
}

// WhatsAppData carries a WhatsApp message sent through the Twilio API.
type WhatsAppData struct {
	To   string // E.164 number, without the whatsapp: prefix
	Body string
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// ------------------- Notification interface -------------------

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "whatsapp", "webhook".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// WhatsAppable can be implemented to support the WhatsApp channel.
type WhatsAppable interface {
	ToWhatsApp() WhatsAppData
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// ------------------- Global config -------------------

// TwilioConfig holds the credentials for the WhatsApp channel. From is
// the store's WhatsApp-enabled Twilio number.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

var twilio TwilioConfig

// SetTwilio configures the WhatsApp channel. Called whenever the store
// settings are loaded or saved.
func SetTwilio(cfg TwilioConfig) { twilio = cfg }

// ------------------- Send -------------------

// Send dispatches the notification through all channels returned by Via().
// address is typically an email address used for the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in background goroutines.
func SendAsync(address string, n Notification) {
	go func() {
		if errs := Send(address, n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	}()
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "whatsapp":
		w, ok := n.(WhatsAppable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement WhatsAppable", n)
		}
		return SendWhatsApp(w.ToWhatsApp())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

// ------------------- Mail channel -------------------

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	msg := mail.To(to).Subject(d.Subject).Body(body)
	if d.SMTP != nil {
		msg = msg.UseConfig(*d.SMTP)
	}
	return msg.Send()
}

// ------------------- WhatsApp channel -------------------

// SendWhatsApp posts one message to the Twilio Messages API. Exported so
// the campaign fan-out can call it directly without a Notification type.
func SendWhatsApp(d WhatsAppData) error {
	if twilio.AccountSID == "" || twilio.AuthToken == "" {
		return fmt.Errorf("notification: twilio credentials not configured")
	}
	if d.To == "" {
		return fmt.Errorf("notification: whatsapp recipient is empty")
	}

	form := url.Values{}
	form.Set("From", "whatsapp:"+twilio.From)
	form.Set("To", "whatsapp:"+d.To)
	form.Set("Body", d.Body)

	endpoint := fmt.Sprintf(
		"https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json",
		twilio.AccountSID)

	basic := base64.StdEncoding.EncodeToString(
		[]byte(twilio.AccountSID + ":" + twilio.AuthToken))

	resp, err := http.Post(endpoint).
		Header("Content-Type", "application/x-www-form-urlencoded").
		Header("Authorization", "Basic "+basic).
		Body(form.Encode()).
		Timeout(10 * time.Second).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: twilio send: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: twilio returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// ------------------- Webhook channel -------------------

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := http.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
