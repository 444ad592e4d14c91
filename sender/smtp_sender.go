package sender

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"notification-service/models"

	"go.uber.org/zap"
)

//go:embed templates/notification.html
var templateFS embed.FS

var notificationTmpl = template.Must(template.ParseFS(templateFS, "templates/notification.html"))

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	logger   *zap.Logger
}

func NewSMTPSender(logger *zap.Logger) (*SMTPSender, error) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASS")

	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if port == "" {
		return nil, fmt.Errorf("SMTP_PORT not set")
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}

	return &SMTPSender{host, port, username, password, logger}, nil
}

func (s *SMTPSender) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) bool {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		"From: " + s.username + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, msg); err != nil {
		s.logger.Error("smtp send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *SMTPSender) SendNotificationEmail(ctx context.Context, n *models.Notification) bool {
	body, err := RenderNotificationEmail(n)
	if err != nil {
		s.logger.Error("notification email render failed",
			zap.String("notification_id", n.ID),
			zap.Error(err),
		)
		return false
	}
	return s.SendHTMLEmail(ctx, n.UserEmail, n.Title, body)
}

// RenderNotificationEmail builds the generic mail body from the
// notification's title and message.
func RenderNotificationEmail(n *models.Notification) (string, error) {
	var buf bytes.Buffer
	err := notificationTmpl.Execute(&buf, struct {
		Title   string
		Message string
	}{n.Title, n.Message})
	return buf.String(), err
}
