// Package mailer sends the digest email over SMTP.
package mailer

import (
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender sends HTML email through a configured SMTP relay.
type Sender struct {
	cfg Config
}

// NewSender creates a new SMTP sender.
func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers one HTML message to the recipients. Subjects are
// RFC 2047-encoded so Korean titles survive transport.
func (s *Sender) Send(to []string, subject, htmlBody string) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp is not configured (SMTP_HOST / SMTP_FROM)")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.From + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(base64.StdEncoding.EncodeToString([]byte(htmlBody)))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	log.Printf("[Mailer] Sending %q to %d recipients via %s", subject, len(to), addr)
	if err := smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	log.Printf("[Mailer] Sent successfully")
	return nil
}
