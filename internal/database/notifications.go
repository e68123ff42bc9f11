package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
)

const (
	InsertNotificationQuery = `
		INSERT INTO
			notifications (id, user_id, order_id, kind, title, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	SelectNotificationsQuery = `
		SELECT
			id,
			user_id,
			order_id,
			kind,
			title,
			message,
			is_read,
			created_at
		FROM
			notifications
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT 100
	`
	CountUnreadNotificationsQuery = `
		SELECT
			COUNT(*)
		FROM
			notifications
		WHERE
			user_id = $1 AND NOT is_read
	`
	MarkNotificationReadQuery = `
		UPDATE
			notifications
		SET
			is_read = TRUE
		WHERE
			id = $1 AND user_id = $2
	`
	MarkAllNotificationsReadQuery = `
		UPDATE
			notifications
		SET
			is_read = TRUE
		WHERE
			user_id = $1 AND NOT is_read
	`
	DeleteNotificationQuery = `
		DELETE FROM
			notifications
		WHERE
			id = $1 AND user_id = $2
	`
)

// CreateNotification сохраняет уведомление пользователя
func (d *Database) CreateNotification(ctx context.Context, n models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	_, err := d.db.Exec(ctx, InsertNotificationQuery, n.ID, n.UserID, n.OrderID, string(n.Kind), n.Title, n.Message)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

// FindNotifications возвращает последние уведомления пользователя
func (d *Database) FindNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	rows, err := d.db.Query(ctx, SelectNotificationsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска уведомлений: %w", err)
	}
	defer rows.Close()

	result := []models.Notification{}
	for rows.Next() {
		var (
			n         models.Notification
			kind      string
			createdAt time.Time
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &kind, &n.Title, &n.Message, &n.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с уведомлением: %w", err)
		}
		n.Kind = models.NotificationKind(kind)
		n.CreatedAt = utils.NewRFC3339Date(createdAt)
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

func (d *Database) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := d.db.QueryRow(ctx, CountUnreadNotificationsQuery, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета уведомлений: %w", err)
	}
	return count, nil
}

// MarkNotificationRead отмечает уведомление прочитанным и сообщает, было ли оно найдено
func (d *Database) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	tag, err := d.db.Exec(ctx, MarkNotificationReadQuery, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления уведомления: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (d *Database) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := d.db.Exec(ctx, MarkAllNotificationsReadQuery, userID); err != nil {
		return fmt.Errorf("ошибка обновления уведомлений: %w", err)
	}
	return nil
}

// DeleteNotification удаляет уведомление и сообщает, было ли оно найдено
func (d *Database) DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteNotificationQuery, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления уведомления: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
