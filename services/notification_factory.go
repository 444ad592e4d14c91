package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notification-service/models"

	"github.com/google/uuid"
)

// NotificationFactory translates inbound event commands into fully-formed
// PENDING notifications. Each build generates a fresh id and stamps the
// current instant; both are injectable so tests can pin them.
type NotificationFactory struct {
	now   func() time.Time
	newID func() string
}

func NewNotificationFactory() *NotificationFactory {
	return &NotificationFactory{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (f *NotificationFactory) NewLoginNotification(cmd models.LoginCommand) *models.Notification {
	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Login detected",
		"Your account was accessed from IP: "+cmd.IP,
		models.TypeSecurityLogin,
		[]models.Channel{models.ChannelEmail, models.ChannelWebSocket},
		"",
		f.now(),
	)
}

func (f *NotificationFactory) NewOrderNotification(cmd models.OrderCommand) *models.Notification {
	metadata, _ := json.Marshal(struct {
		OrderID       string `json:"orderId"`
		PointOfSaleID string `json:"pointOfSaleId"`
	}{cmd.OrderID, cmd.PointOfSaleID})

	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"New Order Received",
		fmt.Sprintf("You have a new order #%s to prepare", cmd.OrderID),
		models.TypeSellerNewOrder,
		[]models.Channel{models.ChannelWebSocket, models.ChannelEmail},
		string(metadata),
		f.now(),
	)
}

func (f *NotificationFactory) NewOrderStatusNotification(cmd models.OrderCommand) *models.Notification {
	metadata, _ := json.Marshal(struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}{cmd.OrderID, cmd.OrderStatus})

	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Order Status Update",
		fmt.Sprintf("Order #%s is now %s", cmd.OrderID, humanizeOrderStatus(cmd.OrderStatus)),
		models.TypeOrderConfirmed,
		[]models.Channel{models.ChannelEmail, models.ChannelWebSocket},
		string(metadata),
		f.now(),
	)
}

func (f *NotificationFactory) NewPasswordResetRequestNotification(cmd models.PasswordResetCommand) *models.Notification {
	metadata, _ := json.Marshal(struct {
		VerificationCode string `json:"verificationCode"`
		Action           string `json:"action"`
	}{cmd.VerificationCode, "password_reset_request"})

	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Código de Verificación - Recuperación de Contraseña",
		"Se ha solicitado un código de verificación para recuperar tu contraseña. Código: "+cmd.VerificationCode,
		models.TypeSecurityPasswordReset,
		[]models.Channel{models.ChannelEmail},
		string(metadata),
		f.now(),
	)
}

func (f *NotificationFactory) NewPasswordResetVerifiedNotification(cmd models.PasswordResetCommand) *models.Notification {
	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Código Verificado Exitosamente",
		"Tu código de verificación ha sido validado correctamente",
		models.TypeSecurityPasswordReset,
		[]models.Channel{models.ChannelWebSocket},
		`{"action":"password_reset_verified"}`,
		f.now(),
	)
}

func (f *NotificationFactory) NewPasswordResetCompletedNotification(cmd models.PasswordResetCommand) *models.Notification {
	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Contraseña Actualizada Exitosamente",
		"Tu contraseña ha sido cambiada correctamente",
		models.TypeSecurityPasswordReset,
		[]models.Channel{models.ChannelEmail, models.ChannelWebSocket},
		`{"action":"password_reset_completed"}`,
		f.now(),
	)
}

func (f *NotificationFactory) NewPaymentCompletedNotification(cmd models.PaymentCommand) *models.Notification {
	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Pago Completado",
		fmt.Sprintf("Tu pago de $%.2f para la orden #%s ha sido completado exitosamente", cmd.Amount, cmd.OrderID),
		models.TypePaymentCompleted,
		[]models.Channel{models.ChannelEmail, models.ChannelWebSocket},
		buildPaymentMetadata(cmd, "completed"),
		f.now(),
	)
}

func (f *NotificationFactory) NewPaymentFailedNotification(cmd models.PaymentCommand) *models.Notification {
	return models.NewNotification(
		f.newID(),
		cmd.UserID,
		cmd.Email,
		"Pago Fallido",
		fmt.Sprintf("Hubo un problema con tu pago para la orden #%s. Por favor intenta nuevamente", cmd.OrderID),
		models.TypePaymentFailed,
		[]models.Channel{models.ChannelEmail, models.ChannelWebSocket},
		buildPaymentMetadata(cmd, "failed"),
		f.now(),
	)
}

func buildPaymentMetadata(cmd models.PaymentCommand, status string) string {
	currency := cmd.Currency
	if currency == "" {
		currency = "COP"
	}
	return fmt.Sprintf(
		`{"orderId":%q,"amount":%.2f,"paymentMethod":%q,"paymentStatus":%q,"currency":%q}`,
		cmd.OrderID, cmd.Amount, cmd.PaymentMethod, status, currency,
	)
}

// humanizeOrderStatus maps a raw order status token to its display phrase.
// Unknown tokens pass through unchanged; the raw token is what lands in
// metadata either way.
func humanizeOrderStatus(status string) string {
	switch strings.ToLower(status) {
	case "confirmed":
		return "confirmed and in preparation"
	case "preparation":
		return "being prepared"
	case "ready":
		return "ready for pickup"
	case "delivered":
		return "delivered"
	case "refunded":
		return "refunded"
	default:
		return status
	}
}
