package models

import "time"

// NotificationResponse is the query projection served over HTTP.
type NotificationResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	UserEmail string     `json:"user_email"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	Metadata  string     `json:"metadata,omitempty"`
}

// ToResponse maps the aggregate to its query projection.
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		UserEmail: n.UserEmail,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
		Metadata:  n.Metadata,
	}
}
