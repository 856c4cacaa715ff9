package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"shopapi/internal/models"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Mailer sends HTML mail over SMTP. When credentials are missing it
// skips delivery with a log line instead of failing, so an unconfigured
// environment behaves like a no-op notifier.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) configured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Password != ""
}

func (m *Mailer) SendWelcome(email, name string) error {
	if !m.configured() {
		log.Println("[MAIL] [INFO] smtp not configured, skipping welcome email")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Welcome %s!</h2>", name)
	b.WriteString("<p>Thank you for registering with our platform. We're excited to have you on board!</p>")
	b.WriteString("<p>You can now start placing orders and managing your account.</p>")
	b.WriteString("<p>Best regards,<br>The Team</p>")

	return m.send(email, "Welcome to Our Platform!", b.String())
}

func (m *Mailer) SendOrderConfirmation(email, name string, order *models.Order) error {
	if !m.configured() {
		log.Println("[MAIL] [INFO] smtp not configured, skipping order confirmation email")
		return nil
	}

	var b strings.Builder
	b.WriteString("<h2>Order Confirmation</h2>")
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	b.WriteString("<p>Thank you for your order! Here are the details:</p>")
	fmt.Fprintf(&b, "<h3>Order Number: %d</h3>", order.OrderNumber)
	fmt.Fprintf(&b, "<p>Order Date: %s</p>", order.OrderDate.Format("2006-01-02"))

	b.WriteString("<table border=\"1\" cellpadding=\"10\" cellspacing=\"0\">")
	b.WriteString("<thead><tr><th>Product</th><th>Quantity</th><th>Price</th><th>Total</th></tr></thead><tbody>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>$%.2f</td><td>$%.2f</td></tr>",
			item.ProductName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}
	b.WriteString("</tbody></table>")

	fmt.Fprintf(&b, "<h3>Total Amount: $%.2f</h3>", order.TotalAmount)
	fmt.Fprintf(&b, "<p>Payment Method: %s</p>", order.PaymentMethod)
	fmt.Fprintf(&b, "<p>Status: %s</p>", order.Status)
	b.WriteString("<p>We'll send you updates about your order status.</p>")
	b.WriteString("<p>Best regards,<br>The Team</p>")

	return m.send(email, fmt.Sprintf("Order Confirmation - %d", order.OrderNumber), b.String())
}

func (m *Mailer) send(to, subject, html string) error {
	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(b.String()))
}
