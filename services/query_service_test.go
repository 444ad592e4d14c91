package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"notification-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestQueryService(repo *MockNotificationRepository) *queryService {
	svc := NewQueryService(repo, zap.NewNop()).(*queryService)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	return svc
}

func storedNotification(id string, status models.NotificationStatus) models.Notification {
	n := models.NewNotification(
		id,
		"user123",
		"test@example.com",
		"Test Title",
		"Test Message",
		models.TypeOrderConfirmed,
		[]models.Channel{models.ChannelEmail},
		"",
		time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	)
	n.Status = status
	return *n
}

func TestGetByUserID(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := newTestQueryService(repo)

	stored := []models.Notification{
		storedNotification("n2", models.StatusSent),
		storedNotification("n1", models.StatusRead),
	}
	repo.On("FindByUserID", mock.Anything, "user123").Return(stored, nil)

	responses, err := svc.GetByUserID(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Len(t, responses, 2)
	// Repository ordering is preserved.
	assert.Equal(t, "n2", responses[0].ID)
	assert.Equal(t, "n1", responses[1].ID)
	assert.Equal(t, "Test Title", responses[0].Title)
	assert.Equal(t, string(models.StatusSent), responses[0].Status)
}

func TestGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		n := storedNotification("n1", models.StatusSent)
		repo.On("FindByID", mock.Anything, "n1").Return(&n, nil)

		resp, err := svc.GetByID(context.Background(), "n1")

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, "n1", resp.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

		resp, err := svc.GetByID(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		repo.On("FindByID", mock.Anything, "n1").Return(nil, errors.New("db down"))

		resp, err := svc.GetByID(context.Background(), "n1")

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestGetUnreadByUserID(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := newTestQueryService(repo)

	stored := []models.Notification{
		storedNotification("n1", models.StatusSent),
		storedNotification("n2", models.StatusPending),
		storedNotification("n3", models.StatusRead),
		storedNotification("n4", models.StatusFailed),
	}
	repo.On("FindByUserID", mock.Anything, "user123").Return(stored, nil)

	responses, err := svc.GetUnreadByUserID(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, "n1", responses[0].ID)
	assert.Equal(t, "n2", responses[1].ID)
}

func TestQueryMarkAsRead(t *testing.T) {
	t.Run("MarksAndSaves", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		n := storedNotification("n1", models.StatusSent)
		repo.On("FindByID", mock.Anything, "n1").Return(&n, nil)

		var saved *models.Notification
		repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.Notification)
		}).Return(nil, nil)

		err := svc.MarkAsRead(context.Background(), "n1")

		assert.NoError(t, err)
		assert.Equal(t, models.StatusRead, saved.Status)
		assert.NotNil(t, saved.ReadAt)
		assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), *saved.ReadAt)
	})

	t.Run("UnknownIDIsNoOp", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

		err := svc.MarkAsRead(context.Background(), "missing")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("SaveErrorPropagates", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := newTestQueryService(repo)

		n := storedNotification("n1", models.StatusSent)
		repo.On("FindByID", mock.Anything, "n1").Return(&n, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		err := svc.MarkAsRead(context.Background(), "n1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mark notification n1 as read")
	})
}
