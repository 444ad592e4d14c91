package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Channel is a delivery medium. Only EMAIL and WEB_SOCKET are exercised by
// the current event kinds; the set stays open for extension.
type Channel string

const (
	ChannelEmail     Channel = "EMAIL"
	ChannelPush      Channel = "PUSH"
	ChannelInApp     Channel = "IN_APP"
	ChannelSMS       Channel = "SMS"
	ChannelWebSocket Channel = "WEB_SOCKET"
)

type NotificationType string

const (
	TypeSecurityLogin         NotificationType = "SECURITY_LOGIN"
	TypeOrderConfirmed        NotificationType = "ORDER_CONFIRMED"
	TypeSecurityPasswordReset NotificationType = "SECURITY_PASSWORD_RESET"
	TypeOrderInPreparation    NotificationType = "ORDER_IN_PREPARATION"
	TypeOrderReady            NotificationType = "ORDER_READY"
	TypeOrderDelivered        NotificationType = "ORDER_DELIVERED"
	TypeOrderRefunded         NotificationType = "ORDER_REFUNDED"
	TypeSellerNewOrder        NotificationType = "SELLER_NEW_ORDER"
	TypeSystem                NotificationType = "SYSTEM"
	TypePaymentCompleted      NotificationType = "PAYMENT_COMPLETED"
	TypePaymentProcessed      NotificationType = "PAYMENT_PROCESSED"
	TypePaymentFailed         NotificationType = "PAYMENT_FAILED"
	TypePaymentCreated        NotificationType = "PAYMENT_CREATED"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "PENDING"
	StatusSent    NotificationStatus = "SENT"
	StatusRead    NotificationStatus = "READ"
	StatusFailed  NotificationStatus = "FAILED"
)

// DeliveryAttempt records one try to deliver over one channel. Attempts are
// appended, never mutated; insertion order is chronological.
type DeliveryAttempt struct {
	Channel    Channel   `json:"channel"`
	Successful bool      `json:"successful"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChannelList and DeliveryAttemptList are stored as JSONB columns.
type ChannelList []Channel

func (c ChannelList) Value() (driver.Value, error) {
	if c == nil {
		c = ChannelList{}
	}
	return json.Marshal(c)
}

func (c *ChannelList) Scan(value interface{}) error {
	return scanJSON(value, c, "ChannelList")
}

type DeliveryAttemptList []DeliveryAttempt

func (d DeliveryAttemptList) Value() (driver.Value, error) {
	if d == nil {
		d = DeliveryAttemptList{}
	}
	return json.Marshal(d)
}

func (d *DeliveryAttemptList) Scan(value interface{}) error {
	return scanJSON(value, d, "DeliveryAttemptList")
}

func scanJSON(value, dest interface{}, what string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T for %s", value, what)
	}
}

// Notification is the aggregate root: one notification with its full
// delivery history. Channels is fixed at construction; DeliveryAttempts
// grows append-only; Status moves out of PENDING only via
// AddDeliveryAttempt and reaches READ only via MarkAsRead.
type Notification struct {
	ID               string              `json:"id" gorm:"primaryKey;size:36"`
	UserID           string              `json:"user_id" gorm:"index"`
	UserEmail        string              `json:"user_email"`
	Title            string              `json:"title"`
	Message          string              `json:"message"`
	Type             NotificationType    `json:"type" gorm:"size:40;index"`
	Status           NotificationStatus  `json:"status" gorm:"size:20;index"`
	Channels         ChannelList         `json:"channels" gorm:"type:jsonb"`
	DeliveryAttempts DeliveryAttemptList `json:"delivery_attempts" gorm:"type:jsonb"`
	CreatedAt        time.Time           `json:"created_at" gorm:"index"`
	ReadAt           *time.Time          `json:"read_at,omitempty"`
	Metadata         string              `json:"metadata,omitempty"`
}

// NewNotification constructs a PENDING notification with an empty attempt
// ledger.
func NewNotification(id, userID, userEmail, title, message string, t NotificationType, channels []Channel, metadata string, createdAt time.Time) *Notification {
	return &Notification{
		ID:               id,
		UserID:           userID,
		UserEmail:        userEmail,
		Title:            title,
		Message:          message,
		Type:             t,
		Status:           StatusPending,
		Channels:         append(ChannelList{}, channels...),
		DeliveryAttempts: DeliveryAttemptList{},
		CreatedAt:        createdAt,
		Metadata:         metadata,
	}
}

// AddDeliveryAttempt appends one attempt and derives the status from its
// outcome: SENT on success, FAILED otherwise. A notification already marked
// READ keeps that status; the attempt is still recorded.
func (n *Notification) AddDeliveryAttempt(channel Channel, successful bool, errMsg string, at time.Time) {
	n.DeliveryAttempts = append(n.DeliveryAttempts, DeliveryAttempt{
		Channel:    channel,
		Successful: successful,
		Error:      errMsg,
		Timestamp:  at,
	})
	if n.Status == StatusRead {
		return
	}
	if successful {
		n.Status = StatusSent
	} else {
		n.Status = StatusFailed
	}
}

// MarkAsRead moves the notification to READ and stamps ReadAt. Repeated
// calls refresh the timestamp.
func (n *Notification) MarkAsRead(at time.Time) {
	n.Status = StatusRead
	n.ReadAt = &at
}

// IsUnread reports whether the notification still awaits the user's
// attention: delivered or pending, but neither read nor failed.
func (n *Notification) IsUnread() bool {
	return n.Status == StatusPending || n.Status == StatusSent
}
