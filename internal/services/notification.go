package services

import (
	"context"
	"errors"
	"time"

	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotificationNotFound = errors.New("уведомление не найдено")

// Время на сохранение и публикацию одного уведомления
const notificationTimeout = 5 * time.Second

// NotificationService сохраняет уведомления пользователей и публикует их в брокер
type NotificationService struct {
	storage   notificationStorage
	queue     jobEnqueuer
	publisher eventPublisher // nil, если брокер не настроен
	now       func() time.Time
}

type notificationStorage interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	FindNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error)
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error
	DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) (bool, error)
}

type jobEnqueuer interface {
	Enqueue(job Job) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// NewNotificationService создает сервис уведомлений. publisher может быть nil.
func NewNotificationService(storage notificationStorage, queue jobEnqueuer, publisher eventPublisher) *NotificationService {
	return &NotificationService{
		storage:   storage,
		queue:     queue,
		publisher: publisher,
		now:       time.Now,
	}
}

// Notify ставит доставку уведомления в очередь заданий. Ошибки только логируются.
func (n *NotificationService) Notify(userID uuid.UUID, orderID *uuid.UUID, kind models.NotificationKind, title, message string) {
	notification := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		OrderID:   orderID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: utils.NewRFC3339Date(n.now().UTC()),
	}

	err := n.queue.Enqueue(func(ctx context.Context) {
		n.deliver(ctx, notification)
	})
	if err != nil {
		logger.Log.Error("failed to enqueue notification",
			zap.String("userID", userID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func (n *NotificationService) deliver(ctx context.Context, notification models.Notification) {
	ctx, cancel := context.WithTimeout(ctx, notificationTimeout)
	defer cancel()

	if err := n.storage.CreateNotification(ctx, notification); err != nil {
		logger.Log.Error("failed to store notification",
			zap.String("notificationID", notification.ID.String()),
			zap.Error(err),
		)
		return
	}

	if n.publisher == nil {
		return
	}

	if err := n.publisher.Publish(ctx, notification); err != nil {
		logger.Log.Error("failed to publish notification",
			zap.String("notificationID", notification.ID.String()),
			zap.Error(err),
		)
	}
}

func (n *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	return n.storage.FindNotifications(ctx, userID)
}

func (n *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return n.storage.CountUnreadNotifications(ctx, userID)
}

func (n *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	found, err := n.storage.MarkNotificationRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (n *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return n.storage.MarkAllNotificationsRead(ctx, userID)
}

func (n *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	found, err := n.storage.DeleteNotification(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}
