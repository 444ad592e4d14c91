package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedTime(sec int) time.Time {
	return time.Date(2025, 6, 15, 10, 30, sec, 0, time.UTC)
}

func newTestNotification() *Notification {
	return NewNotification(
		"notif123",
		"user123",
		"test@example.com",
		"Test Title",
		"Test Message",
		TypeOrderConfirmed,
		[]Channel{ChannelEmail, ChannelWebSocket},
		`{"key":"value"}`,
		fixedTime(0),
	)
}

func TestNewNotification(t *testing.T) {
	n := newTestNotification()

	assert.Equal(t, StatusPending, n.Status)
	assert.Empty(t, n.DeliveryAttempts)
	assert.Equal(t, ChannelList{ChannelEmail, ChannelWebSocket}, n.Channels)
	assert.Nil(t, n.ReadAt)
	assert.Equal(t, fixedTime(0), n.CreatedAt)
}

func TestAddDeliveryAttempt(t *testing.T) {
	t.Run("SuccessSetsSent", func(t *testing.T) {
		n := newTestNotification()

		n.AddDeliveryAttempt(ChannelEmail, true, "", fixedTime(1))

		assert.Equal(t, StatusSent, n.Status)
		assert.Len(t, n.DeliveryAttempts, 1)
		attempt := n.DeliveryAttempts[0]
		assert.Equal(t, ChannelEmail, attempt.Channel)
		assert.True(t, attempt.Successful)
		assert.Empty(t, attempt.Error)
		assert.Equal(t, fixedTime(1), attempt.Timestamp)
	})

	t.Run("FailureSetsFailed", func(t *testing.T) {
		n := newTestNotification()

		n.AddDeliveryAttempt(ChannelEmail, false, "Connection timeout", fixedTime(1))

		assert.Equal(t, StatusFailed, n.Status)
		assert.Len(t, n.DeliveryAttempts, 1)
		assert.Equal(t, "Connection timeout", n.DeliveryAttempts[0].Error)
	})

	t.Run("MostRecentAttemptWins", func(t *testing.T) {
		n := newTestNotification()

		n.AddDeliveryAttempt(ChannelEmail, false, "First attempt failed", fixedTime(1))
		n.AddDeliveryAttempt(ChannelEmail, true, "", fixedTime(2))
		assert.Equal(t, StatusSent, n.Status)
		assert.Len(t, n.DeliveryAttempts, 2)

		n.AddDeliveryAttempt(ChannelWebSocket, false, "socket closed", fixedTime(3))
		assert.Equal(t, StatusFailed, n.Status)
		assert.Len(t, n.DeliveryAttempts, 3)
	})

	t.Run("ReadStatusIsSticky", func(t *testing.T) {
		n := newTestNotification()
		n.MarkAsRead(fixedTime(1))

		n.AddDeliveryAttempt(ChannelEmail, true, "", fixedTime(2))

		assert.Equal(t, StatusRead, n.Status)
		assert.Len(t, n.DeliveryAttempts, 1)
	})
}

func TestMarkAsRead(t *testing.T) {
	t.Run("SetsStatusAndTimestamp", func(t *testing.T) {
		n := newTestNotification()

		n.MarkAsRead(fixedTime(5))

		assert.Equal(t, StatusRead, n.Status)
		assert.NotNil(t, n.ReadAt)
		assert.Equal(t, fixedTime(5), *n.ReadAt)
	})

	t.Run("SecondCallRefreshesReadAt", func(t *testing.T) {
		n := newTestNotification()

		n.MarkAsRead(fixedTime(5))
		first := *n.ReadAt
		n.MarkAsRead(fixedTime(9))

		assert.Equal(t, StatusRead, n.Status)
		assert.False(t, n.ReadAt.Before(first))
		assert.Equal(t, fixedTime(9), *n.ReadAt)
	})
}

func TestIsUnread(t *testing.T) {
	n := newTestNotification()
	assert.True(t, n.IsUnread())

	n.AddDeliveryAttempt(ChannelEmail, true, "", fixedTime(1))
	assert.True(t, n.IsUnread())

	n.AddDeliveryAttempt(ChannelEmail, false, "smtp down", fixedTime(2))
	assert.False(t, n.IsUnread())

	n.MarkAsRead(fixedTime(3))
	assert.False(t, n.IsUnread())
}

func TestJSONBColumnRoundTrip(t *testing.T) {
	t.Run("ChannelList", func(t *testing.T) {
		original := ChannelList{ChannelWebSocket, ChannelEmail, ChannelSMS}

		value, err := original.Value()
		assert.NoError(t, err)

		var restored ChannelList
		assert.NoError(t, restored.Scan(value))
		assert.Equal(t, original, restored)
	})

	t.Run("DeliveryAttemptList", func(t *testing.T) {
		original := DeliveryAttemptList{
			{Channel: ChannelEmail, Successful: false, Error: "timeout", Timestamp: fixedTime(1)},
			{Channel: ChannelEmail, Successful: true, Timestamp: fixedTime(2)},
		}

		value, err := original.Value()
		assert.NoError(t, err)

		var restored DeliveryAttemptList
		assert.NoError(t, restored.Scan(value))
		assert.Equal(t, original, restored)
	})

	t.Run("ScanAcceptsString", func(t *testing.T) {
		var restored ChannelList
		assert.NoError(t, restored.Scan(`["EMAIL","WEB_SOCKET"]`))
		assert.Equal(t, ChannelList{ChannelEmail, ChannelWebSocket}, restored)
	})

	t.Run("ScanRejectsUnsupportedType", func(t *testing.T) {
		var restored ChannelList
		assert.Error(t, restored.Scan(42))
	})
}

func TestNotificationSerializationRoundTrip(t *testing.T) {
	n := newTestNotification()
	n.AddDeliveryAttempt(ChannelEmail, false, "greylisted", fixedTime(1))
	n.AddDeliveryAttempt(ChannelEmail, true, "", fixedTime(2))
	n.MarkAsRead(fixedTime(3))

	data, err := json.Marshal(n)
	assert.NoError(t, err)

	var restored Notification
	assert.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, n.ID, restored.ID)
	assert.Equal(t, n.UserID, restored.UserID)
	assert.Equal(t, n.UserEmail, restored.UserEmail)
	assert.Equal(t, n.Title, restored.Title)
	assert.Equal(t, n.Message, restored.Message)
	assert.Equal(t, n.Type, restored.Type)
	assert.Equal(t, n.Status, restored.Status)
	assert.Equal(t, n.Channels, restored.Channels)
	assert.Equal(t, n.DeliveryAttempts, restored.DeliveryAttempts)
	assert.True(t, n.CreatedAt.Equal(restored.CreatedAt))
	assert.True(t, n.ReadAt.Equal(*restored.ReadAt))
	assert.Equal(t, n.Metadata, restored.Metadata)
}
