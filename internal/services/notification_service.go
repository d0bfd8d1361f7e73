// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/config"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

// SendWelcomeEmail greets a newly registered customer.
func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	data := map[string]interface{}{
		"Name":      user.Name,
		"StoreName": s.config.Store.Name,
		"StoreURL":  s.config.Frontend.BaseURL,
	}

	subject := fmt.Sprintf("Welcome to %s", s.config.Store.Name)
	tmpl := s.getEmailTemplate("welcome")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// SendOrderConfirmation is sent right after an order is placed.
func (s *NotificationService) SendOrderConfirmation(order *models.Order, email, name string) error {
	data := map[string]interface{}{
		"Name":           name,
		"OrderID":        order.ID,
		"TotalAmount":    order.TotalAmount,
		"ShippingAmount": order.ShippingAmount,
		"Currency":       order.Currency,
		"ItemCount":      len(order.Items),
		"PaymentMethod":  "Cash on delivery",
		"OrderURL":       fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
		"StoreName":      s.config.Store.Name,
	}

	subject := fmt.Sprintf("Order Confirmation - %s", order.ID)
	tmpl := s.getEmailTemplate("order_confirmation")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, subject, body)
}

// SendOrderStatusUpdate notifies the buyer when an order moves through
// its lifecycle.
func (s *NotificationService) SendOrderStatusUpdate(order *models.Order, email, name string) error {
	data := map[string]interface{}{
		"Name":      name,
		"OrderID":   order.ID,
		"Status":    order.Status,
		"OrderURL":  fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
		"StoreName": s.config.Store.Name,
	}

	subject := fmt.Sprintf("Order Update - %s", order.ID)
	tmpl := s.getEmailTemplate("order_status")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, subject, body)
}

// SendAccountStatusNotification tells a user their account was suspended
// or reactivated by an admin.
func (s *NotificationService) SendAccountStatusNotification(user *models.User, reason string) error {
	data := map[string]interface{}{
		"Name":      user.Name,
		"Status":    user.Status,
		"Reason":    reason,
		"StoreName": s.config.Store.Name,
	}

	subject := "Account Status Update"
	tmpl := s.getEmailTemplate("account_status")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	// In a real implementation, these would be loaded from files or database
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Name}}!</h2>
	<p>Thank you for joining {{.StoreName}}. Browse our collection and furnish your home:</p>
	<a href="{{.StoreURL}}">Start Shopping</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
		"order_confirmation": {
			Subject: "Order Confirmation",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.Name}}!</h2>
	<p>We received your order <strong>{{.OrderID}}</strong> ({{.ItemCount}} item(s)).</p>
	<p>Total: {{.TotalAmount}} {{.Currency}} (including {{.ShippingAmount}} {{.Currency}} shipping)</p>
	<p>Payment: {{.PaymentMethod}}</p>
	<a href="{{.OrderURL}}">View Your Order</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
		"order_status": {
			Subject: "Order Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrderURL}}">Track Your Order</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
		"account_status": {
			Subject: "Account Status Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your account status changed to <strong>{{.Status}}</strong>.</p>
	{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
