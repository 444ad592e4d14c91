package sender

import (
	"context"

	"notification-service/models"
)

// EmailSender reports delivery outcome as a bool: true means the transport
// accepted the message. Transport failures are a delivery outcome, not an
// error; implementations log the cause and return false.
type EmailSender interface {
	SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) bool
	// SendNotificationEmail sends the generic templated mail built from the
	// notification's own title and message.
	SendNotificationEmail(ctx context.Context, n *models.Notification) bool
}
