// internal/services/mailer.go
package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type EmailMessage struct {
	To          []string
	ReplyTo     string
	Subject     string
	HTMLBody    string
	Attachments []EmailAttachment
}

// Mailer abstracts outbound email so tests can substitute a stub.
type Mailer interface {
	Send(msg *EmailMessage) error
}

type SMTPMailer struct {
	config *config.Config
}

func NewSMTPMailer(config *config.Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) Send(msg *EmailMessage) error {
	if m.config.Email.SMTPHost == "" || m.config.Email.SMTPUsername == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      msg.To,
			"subject": msg.Subject,
		}).Info("Email sending skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", m.config.Email.SMTPUsername, m.config.Email.SMTPPassword, m.config.Email.SMTPHost)

	body, err := m.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", m.config.Email.SMTPHost, m.config.Email.SMTPPort)
	if err := smtp.SendMail(addr, auth, m.config.Email.FromEmail, msg.To, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage renders a multipart/mixed MIME message with an HTML
// part and optional base64 attachments.
func (m *SMTPMailer) buildMessage(msg *EmailMessage) ([]byte, error) {
	boundary, err := utils.GenerateRandomString(28)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.config.Email.FromName), m.config.Email.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To[0])
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.HTMLBody)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(msg.HTMLBody)
	buf.WriteString("\r\n")

	for _, att := range msg.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(att.Filename))
			if contentType == "" {
				contentType = "application/octet-stream"
			}
		}

		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename)

		encoded := base64.StdEncoding.EncodeToString(att.Data)
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes(), nil
}
