package models

import "encoding/json"

// Event types as they appear on the bus.
const (
	EventLoginSuccess           = "login.success"
	EventOrderCreated           = "order.created"
	EventOrderStatusChanged     = "order.status_changed"
	EventPasswordResetRequested = "password_reset.requested"
	EventPasswordResetVerified  = "password_reset.verified"
	EventPasswordResetCompleted = "password_reset.completed"
	EventPaymentCompleted       = "payment.completed"
	EventPaymentFailed          = "payment.failed"
)

// EventPayload is the bus envelope: an event type plus its kind-specific
// command, kept raw until the consumer dispatches it.
type EventPayload struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// LoginCommand carries a successful-login event.
type LoginCommand struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	IP     string `json:"ip"`
}

// OrderCommand carries new-order and order-status-change events.
type OrderCommand struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	OrderID       string `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	PointOfSaleID string `json:"point_of_sale_id"`
}

// PasswordResetCommand carries the three password-reset lifecycle events.
type PasswordResetCommand struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	VerificationCode string `json:"verification_code"`
}

// PaymentCommand carries payment-completed and payment-failed events.
type PaymentCommand struct {
	UserID        string  `json:"user_id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	OrderID       string  `json:"order_id"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
	Currency      string  `json:"currency"`
}
