package services

import (
	"fmt"
	"strings"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/notifications"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/metrics"
	"github.com/muthuvel/santhai/pkg/notification"
	"gorm.io/gorm"
)

var notificationsSent = metrics.NewCounter("santhai", "notifications_total",
	"Order notifications by channel and outcome.", []string{"channel", "status"})

// NotifierService renders the store's message templates and fans the
// result out through the notification channels. Every attempt for an
// order is recorded in notification_logs; failures are logged there and
// swallowed, never bubbling up into the write that triggered them.
type NotifierService struct {
	orders   *repositories.OrderRepository
	users    *repositories.UserRepository
	logs     *repositories.NotificationLogRepository
	settings *SettingsService
}

func NewNotifierService(db *gorm.DB, settings *SettingsService) *NotifierService {
	return &NotifierService{
		orders:   repositories.NewOrderRepository(db),
		users:    repositories.NewUserRepository(db),
		logs:     repositories.NewNotificationLogRepository(db),
		settings: settings,
	}
}

// renderTemplate substitutes the {placeholder} tokens the admin may use
// in message templates.
func renderTemplate(tpl string, vars map[string]string) string {
	out := tpl
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}

func orderVars(order models.Order, user models.User, settings models.StoreSettings) map[string]string {
	return map[string]string{
		"customer_name": user.DisplayName(),
		"order_number":  order.OrderNumber,
		"total_amount":  fmt.Sprintf("%.2f", order.Total),
		"status":        order.Status,
		"tracking_url":  order.TrackingURL,
		"website_url":   settings.Website,
	}
}

// OrderPlaced sends the confirmation to the customer and an alert to the
// store operator.
func (s *NotifierService) OrderPlaced(orderID uint) error {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return fmt.Errorf("notifier: load order: %w", err)
	}
	user, err := s.users.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("notifier: load user: %w", err)
	}
	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	s.applyTwilio(settings)

	vars := orderVars(order, user, settings)
	subject := renderTemplate(settings.OrderEmailSubject, vars)
	smtp, haveSMTP := s.settings.SMTPConfig()

	whatsAppBody := renderTemplate(settings.OrderWhatsAppTemplate, vars)
	if settings.OrderWhatsAppTemplate == "" {
		whatsAppBody = fmt.Sprintf("Hi %s, your order %s for ₹%.2f has been received. We will confirm it shortly.",
			user.DisplayName(), order.OrderNumber, order.Total)
	}

	n := &notifications.OrderConfirmation{
		Subject:      subject,
		HTMLBody:     orderEmailHTML(order, user, settings),
		SendWhatsApp: settings.WhatsAppEnabled && order.DeliveryPhone != "",
		WhatsApp: notification.WhatsAppData{
			To:   order.DeliveryPhone,
			Body: whatsAppBody,
		},
	}
	if haveSMTP {
		n.SMTP = &smtp
	}

	s.deliver(order, user.Email, subject, n)

	// Operator alert, best effort, not logged per order.
	if haveSMTP && settings.Email != "" {
		alert := &notifications.AdminAlert{
			Subject: fmt.Sprintf("New order %s - ₹%.2f", order.OrderNumber, order.Total),
			HTMLBody: fmt.Sprintf("<p>%s placed order <strong>%s</strong> for ₹%.2f (%d items).</p>",
				user.DisplayName(), order.OrderNumber, order.Total, len(order.Items)),
			SMTP: &smtp,
		}
		notification.Send(settings.Email, alert)
	}
	return nil
}

// StatusChanged tells the customer the order moved to a new status.
func (s *NotifierService) StatusChanged(orderID uint, from, to string) error {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return fmt.Errorf("notifier: load order: %w", err)
	}
	user, err := s.users.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("notifier: load user: %w", err)
	}
	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	s.applyTwilio(settings)

	vars := orderVars(order, user, settings)
	subject := fmt.Sprintf("Order %s is now %s", order.OrderNumber, to)
	smtp, haveSMTP := s.settings.SMTPConfig()

	tpl := settings.DeliveryWhatsAppTemplate
	if tpl == "" {
		tpl = "Hi {customer_name}, your order {order_number} is now {status}."
	}

	n := &notifications.OrderStatusUpdate{
		Subject: subject,
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your order <strong>%s</strong> moved from %s to <strong>%s</strong>.</p>%s",
			user.DisplayName(), order.OrderNumber, from, to, trackingHTML(order)),
		SendWhatsApp: settings.WhatsAppEnabled && order.DeliveryPhone != "",
		WhatsApp: notification.WhatsAppData{
			To:   order.DeliveryPhone,
			Body: renderTemplate(tpl, vars),
		},
	}
	if haveSMTP {
		n.SMTP = &smtp
	}

	s.deliver(order, user.Email, subject, n)
	return nil
}

// SettingsChanged emails the store operator that configuration was saved.
func (s *NotifierService) SettingsChanged(actorID uint) error {
	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	smtp, haveSMTP := s.settings.SMTPConfig()
	if !haveSMTP || settings.Email == "" {
		return nil
	}

	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return fmt.Errorf("notifier: load actor: %w", err)
	}

	alert := &notifications.AdminAlert{
		Subject: "Store settings updated",
		HTMLBody: fmt.Sprintf("<p>Store settings were updated by <strong>%s</strong>.</p>",
			actor.DisplayName()),
		SMTP: &smtp,
	}
	if errs := notification.Send(settings.Email, alert); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// TestEmail sends a throwaway message to verify the SMTP section.
func (s *NotifierService) TestEmail(to string) error {
	smtp, ok := s.settings.SMTPConfig()
	if !ok {
		return fmt.Errorf("notifier: smtp is not configured")
	}
	msg := &notifications.TestMessage{
		Channel: "mail",
		Subject: "Santhai test email",
		Body:    "<p>Your SMTP settings are working.</p>",
		SMTP:    &smtp,
	}
	if errs := notification.Send(to, msg); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// TestWhatsApp sends a throwaway message to verify the Twilio section.
func (s *NotifierService) TestWhatsApp(to string) error {
	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	s.applyTwilio(settings)

	msg := &notifications.TestMessage{
		Channel:  "whatsapp",
		WhatsApp: notification.WhatsAppData{To: to, Body: "Your Santhai WhatsApp settings are working."},
	}
	if errs := notification.Send("", msg); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// deliver sends each channel separately so the log records per-channel
// outcomes.
func (s *NotifierService) deliver(order models.Order, email, subject string, n notification.Notification) {
	for _, channel := range n.Via() {
		entry := models.NotificationLog{
			OrderID: order.ID,
			Channel: channelName(channel),
			Subject: subject,
		}
		switch channel {
		case "mail":
			entry.Recipient = email
		case "whatsapp":
			entry.Recipient = order.DeliveryPhone
		}
		if err := s.logs.Create(&entry); err != nil {
			logger.Error("notifier: log create", "error", err)
		}

		errs := notification.Send(email, single{n: n, channel: channel})
		if len(errs) > 0 {
			notificationsSent.WithLabelValues(entry.Channel, "failed").Inc()
			s.logs.MarkFailed(entry.ID, errs[0].Error()) //nolint:errcheck
			continue
		}
		notificationsSent.WithLabelValues(entry.Channel, "sent").Inc()
		s.logs.MarkSent(entry.ID) //nolint:errcheck
	}
}

func channelName(via string) string {
	if via == "mail" {
		return models.NotificationChannelEmail
	}
	return models.NotificationChannelWhatsApp
}

// single narrows a multi-channel notification to one channel for
// per-channel logging.
type single struct {
	n       notification.Notification
	channel string
}

func (s single) Via() []string { return []string{s.channel} }

func (s single) ToMail() notification.MailData {
	if m, ok := s.n.(notification.Mailable); ok {
		return m.ToMail()
	}
	return notification.MailData{}
}

func (s single) ToWhatsApp() notification.WhatsAppData {
	if w, ok := s.n.(notification.WhatsAppable); ok {
		return w.ToWhatsApp()
	}
	return notification.WhatsAppData{}
}

func (s *NotifierService) applyTwilio(settings models.StoreSettings) {
	notification.SetTwilio(notification.TwilioConfig{
		AccountSID: settings.TwilioAccountSID,
		AuthToken:  settings.TwilioAuthToken,
		From:       settings.WhatsAppNumber,
	})
}

func trackingHTML(order models.Order) string {
	if order.TrackingNumber == "" {
		return ""
	}
	return fmt.Sprintf(`<p>Tracking: %s (%s) <a href="%s">Track your order</a></p>`,
		order.TrackingNumber, order.DeliveryPartner, order.TrackingURL)
}

func orderEmailHTML(order models.Order, user models.User, settings models.StoreSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", user.DisplayName())
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> has been received.</p>", order.OrderNumber)
	b.WriteString("<table border='1' cellpadding='6' cellspacing='0'><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%g %s</td><td>₹%.2f</td></tr>",
			item.ProductName, item.Quantity, item.Unit, item.LineTotal())
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: ₹%.2f<br>Tax: ₹%.2f<br>Delivery: ₹%.2f<br><strong>Total: ₹%.2f</strong></p>",
		order.Subtotal, order.TaxAmount, order.DeliveryCharge, order.Total)
	fmt.Fprintf(&b, "<p>%s<br>%s</p>", settings.StoreName, settings.Phone)
	return b.String()
}
