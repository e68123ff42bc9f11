package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inlineQueue выполняет задания сразу в вызывающей горутине
type inlineQueue struct {
	err       error
	scheduled []time.Duration
}

func (q *inlineQueue) Enqueue(job Job) error {
	if q.err != nil {
		return q.err
	}
	job(context.Background())
	return nil
}

func (q *inlineQueue) ScheduleJob(_ Job, delay time.Duration) {
	q.scheduled = append(q.scheduled, delay)
}

type fakeNotificationStorage struct {
	saved     []models.Notification
	createErr error
	read      map[uuid.UUID]bool
}

func (f *fakeNotificationStorage) CreateNotification(_ context.Context, n models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeNotificationStorage) FindNotifications(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	result := []models.Notification{}
	for _, n := range f.saved {
		if n.UserID == userID {
			n.IsRead = f.read[n.ID]
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationStorage) CountUnreadNotifications(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.saved {
		if n.UserID == userID && !f.read[n.ID] {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStorage) MarkNotificationRead(_ context.Context, userID, notificationID uuid.UUID) (bool, error) {
	for _, n := range f.saved {
		if n.ID == notificationID && n.UserID == userID {
			f.read[n.ID] = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStorage) MarkAllNotificationsRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range f.saved {
		if n.UserID == userID {
			f.read[n.ID] = true
		}
	}
	return nil
}

func (f *fakeNotificationStorage) DeleteNotification(_ context.Context, userID, notificationID uuid.UUID) (bool, error) {
	for i, n := range f.saved {
		if n.ID == notificationID && n.UserID == userID {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakePublisher struct {
	events []interface{}
}

func (p *fakePublisher) Publish(_ context.Context, event interface{}) error {
	p.events = append(p.events, event)
	return nil
}

func TestNotificationServiceNotify(t *testing.T) {
	storage := &fakeNotificationStorage{read: map[uuid.UUID]bool{}}
	publisher := &fakePublisher{}
	service := NewNotificationService(storage, &inlineQueue{}, publisher)
	user, orderID := uuid.New(), uuid.New()

	service.Notify(user, &orderID, models.NotificationOrderPlaced, "Заказ оформлен", "Ваш заказ принят")

	require.Len(t, storage.saved, 1)
	saved := storage.saved[0]
	assert.Equal(t, user, saved.UserID)
	assert.Equal(t, &orderID, saved.OrderID)
	assert.Equal(t, models.NotificationOrderPlaced, saved.Kind)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(models.Notification)
	require.True(t, ok)
	assert.Equal(t, saved.ID, event.ID)
}

func TestNotificationServiceNotifyFailuresAreSwallowed(t *testing.T) {
	publisher := &fakePublisher{}

	failingStorage := &fakeNotificationStorage{createErr: errors.New("db down"), read: map[uuid.UUID]bool{}}
	NewNotificationService(failingStorage, &inlineQueue{}, publisher).
		Notify(uuid.New(), nil, models.NotificationNewOrder, "t", "m")
	assert.Empty(t, publisher.events)

	storage := &fakeNotificationStorage{read: map[uuid.UUID]bool{}}
	NewNotificationService(storage, &inlineQueue{err: ErrJobQueueIsFull}, publisher).
		Notify(uuid.New(), nil, models.NotificationNewOrder, "t", "m")
	assert.Empty(t, storage.saved)

	NewNotificationService(storage, &inlineQueue{}, nil).
		Notify(uuid.New(), nil, models.NotificationNewOrder, "t", "m")
	assert.Len(t, storage.saved, 1)
}

func TestNotificationServiceInbox(t *testing.T) {
	storage := &fakeNotificationStorage{read: map[uuid.UUID]bool{}}
	service := NewNotificationService(storage, &inlineQueue{}, nil)
	ctx := context.Background()
	user, stranger := uuid.New(), uuid.New()

	service.Notify(user, nil, models.NotificationOrderStatus, "a", "a")
	service.Notify(user, nil, models.NotificationOrderStatus, "b", "b")
	service.Notify(stranger, nil, models.NotificationOrderStatus, "c", "c")

	count, err := service.UnreadCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := service.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.ErrorIs(t, service.MarkRead(ctx, stranger, list[0].ID), ErrNotificationNotFound)
	require.NoError(t, service.MarkRead(ctx, user, list[0].ID))

	count, err = service.UnreadCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, service.MarkAllRead(ctx, user))
	count, err = service.UnreadCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, service.Delete(ctx, user, list[1].ID))
	assert.ErrorIs(t, service.Delete(ctx, user, list[1].ID), ErrNotificationNotFound)

	count, err = service.UnreadCount(ctx, stranger)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
