package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// forwardTransitions линейная цепочка статусов заказа.
var forwardTransitions = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

// IsValid сообщает, известен ли статус.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Cancellable сообщает, можно ли отменить заказ в этом статусе.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода: один шаг вперед по цепочке
// или отмена из pending/confirmed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == StatusCancelled {
		return s.Cancellable()
	}
	return forwardTransitions[s] == next
}

type OrderType string

const (
	OrderTypeImmediate OrderType = "immediate"
	OrderTypeScheduled OrderType = "scheduled"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Order struct {
	ID              uuid.UUID          `json:"id"`
	CustomerID      uuid.UUID          `json:"customerId"`
	ShopID          uuid.UUID          `json:"shopId"`
	ShopName        string             `json:"shopName,omitempty"`
	Token           string             `json:"token"`
	OrderNumber     string             `json:"orderNumber"`
	Status          OrderStatus        `json:"status"`
	OrderType       OrderType          `json:"orderType"`
	ScheduledTime   *utils.RFC3339Date `json:"scheduledTime,omitempty"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus"`
	Notes           string             `json:"notes,omitempty"`
	PreparationTime *int               `json:"preparationTime,omitempty"`
	PlacedAt        utils.RFC3339Date  `json:"placedAt"`
	ConfirmedAt     *utils.RFC3339Date `json:"confirmedAt,omitempty"`
	PreparingAt     *utils.RFC3339Date `json:"preparingAt,omitempty"`
	ReadyAt         *utils.RFC3339Date `json:"readyAt,omitempty"`
	CompletedAt     *utils.RFC3339Date `json:"completedAt,omitempty"`
	CancelledAt     *utils.RFC3339Date `json:"cancelledAt,omitempty"`
	Items           []OrderItem        `json:"items"`
}

// OrderItem позиция заказа. Название и цена зафиксированы на момент оформления.
type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menuItemId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Note       string          `json:"note,omitempty"`
}

// PlaceOrderRequest тело запроса на оформление заказа. Цены клиента не принимаются.
type PlaceOrderRequest struct {
	ShopID        *string            `json:"shopId"`
	Items         []PlaceOrderItem   `json:"items"`
	PaymentMethod *PaymentMethod     `json:"paymentMethod"`
	OrderType     *OrderType         `json:"orderType"`
	ScheduledTime *utils.RFC3339Date `json:"scheduledTime"`
	Notes         *string            `json:"notes"`
}

type PlaceOrderItem struct {
	MenuItemID *string `json:"menuItemId"`
	Quantity   *int    `json:"quantity"`
	Note       *string `json:"note"`
}

type StatusUpdateRequest struct {
	Status          *OrderStatus `json:"status"`
	PreparationTime *int         `json:"preparationTime"`
}
