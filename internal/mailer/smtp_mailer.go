// Package mailer sends order notification mails over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/circuitbreaker"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
)

var (
	ErrNoRecipients     = errors.New("no recipients")
	ErrInvalidRecipient = errors.New("recipient address contains a line break")
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// AdminInbox receives new-order alerts.
	AdminInbox []string
	ShopName   string
}

type SMTPMailer struct {
	cfg     Config
	auth    smtp.Auth
	send    SendFunc
	breaker *circuitbreaker.Breaker
	now     func() time.Time
}

func NewSMTPMailer(cfg Config, breaker *circuitbreaker.Breaker) *SMTPMailer {
	if cfg.ShopName == "" {
		cfg.ShopName = "Homage Publishers"
	}
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.Settings{Name: "smtp"})
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		cfg:     cfg,
		auth:    auth,
		send:    smtp.SendMail,
		breaker: breaker,
		now:     time.Now,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("Your order %s has been approved", shortID(order))
	intro := "Good news! Your order has been approved and is being prepared."
	return m.deliver(ctx, domain.NotificationOrderConfirmation, []string{order.ShippingInfo.Email}, subject, customerBody(order, intro))
}

func (m *SMTPMailer) SendShippingNotification(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("Your order %s is out for delivery", shortID(order))
	intro := "Your order has left our warehouse and is on its way to you."
	return m.deliver(ctx, domain.NotificationShippingNotification, []string{order.ShippingInfo.Email}, subject, customerBody(order, intro))
}

func (m *SMTPMailer) SendDeliveryConfirmation(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("Your order %s has been delivered", shortID(order))
	intro := "Your order has been delivered. Thank you for shopping with us."
	return m.deliver(ctx, domain.NotificationDeliveryConfirmation, []string{order.ShippingInfo.Email}, subject, customerBody(order, intro))
}

func (m *SMTPMailer) SendNewOrderAlert(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("New order %s from %s", shortID(order), order.ShippingInfo.Name)
	return m.deliver(ctx, domain.NotificationNewOrderAlert, m.cfg.AdminInbox, subject, alertBody(order))
}

func (m *SMTPMailer) deliver(ctx context.Context, kind domain.NotificationKind, to []string, subject, body string) error {
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if strings.ContainsAny(addr, "\r\n") {
			return fmt.Errorf("%s: %w", kind, ErrInvalidRecipient)
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("%s: %w", kind, ErrNoRecipients)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.compose(recipients, subject, body)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	err := m.breaker.Do(func() error {
		return m.send(addr, m.auth, m.cfg.From, recipients, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to send %s mail: %w", kind, err)
	}

	logger.FromContext(ctx).InfoContext(ctx, "mail sent",
		"kind", string(kind),
		"recipients", len(recipients))
	return nil
}

func (m *SMTPMailer) compose(to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", encodeHeader(m.cfg.ShopName), m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", encodeHeader(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// encodeHeader turns values with control or non-ASCII bytes into an RFC 2047
// encoded word, so they cannot start a new header line.
func encodeHeader(v string) string {
	return mime.QEncoding.Encode("utf-8", v)
}

func shortID(order *domain.Order) string {
	return strings.ToUpper(order.ID.String()[:8])
}
