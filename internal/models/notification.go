package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationOrderPlaced NotificationKind = "order_placed"
	NotificationNewOrder    NotificationKind = "new_order"
	NotificationOrderStatus NotificationKind = "order_status"
	NotificationNewReview   NotificationKind = "new_review"
)

type Notification struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"userId"`
	OrderID   *uuid.UUID        `json:"orderId,omitempty"`
	Kind      NotificationKind  `json:"kind"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"isRead"`
	CreatedAt utils.RFC3339Date `json:"createdAt"`
}
