package services

import (
	"context"
	"fmt"
	"time"

	"notification-service/models"
	"notification-service/repository"

	"go.uber.org/zap"
)

// QueryService answers read-side questions about a user's notifications and
// performs the read-state transition. Absence is never an error: a missing
// id yields a nil response for GetByID and a silent no-op for MarkAsRead.
type QueryService interface {
	GetByUserID(ctx context.Context, userID string) ([]models.NotificationResponse, error)
	GetByID(ctx context.Context, id string) (*models.NotificationResponse, error)
	GetUnreadByUserID(ctx context.Context, userID string) ([]models.NotificationResponse, error)
	MarkAsRead(ctx context.Context, id string) error
}

type queryService struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewQueryService(repo repository.NotificationRepository, logger *zap.Logger) QueryService {
	return &queryService{repo: repo, logger: logger, now: time.Now}
}

func (s *queryService) GetByUserID(ctx context.Context, userID string) ([]models.NotificationResponse, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get notifications for user %s: %w", userID, err)
	}
	return toResponses(notifications), nil
}

func (s *queryService) GetByID(ctx context.Context, id string) (*models.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification %s: %w", id, err)
	}
	if n == nil {
		return nil, nil
	}
	resp := n.ToResponse()
	return &resp, nil
}

func (s *queryService) GetUnreadByUserID(ctx context.Context, userID string) ([]models.NotificationResponse, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get unread notifications for user %s: %w", userID, err)
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		if notifications[i].IsUnread() {
			responses = append(responses, notifications[i].ToResponse())
		}
	}
	return responses, nil
}

func (s *queryService) MarkAsRead(ctx context.Context, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("mark notification %s as read: %w", id, err)
	}
	if n == nil {
		s.logger.Warn("mark as read for unknown notification", zap.String("notification_id", id))
		return nil
	}

	n.MarkAsRead(s.now())
	if _, err := s.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("mark notification %s as read: %w", id, err)
	}
	return nil
}

func toResponses(notifications []models.Notification) []models.NotificationResponse {
	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}
	return responses
}
