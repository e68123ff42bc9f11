package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Определяем ошибки, связанные с заказами
var (
	ErrShopNotFound            = errors.New("магазин не найден")
	ErrShopClosed              = errors.New("магазин сейчас не принимает заказы")
	ErrMenuItemNotFound        = errors.New("позиция меню не найдена")
	ErrMenuItemWrongShop       = errors.New("позиция меню принадлежит другому магазину")
	ErrMenuItemUnavailable     = errors.New("позиция меню недоступна")
	ErrOrderNotFound           = errors.New("заказ не найден")
	ErrForbidden               = errors.New("доступ запрещен")
	ErrInvalidStatusTransition = errors.New("недопустимый переход статуса заказа")
	ErrTokenAllocation         = errors.New("не удалось выделить токен заказа")
)

const (
	DefaultTokenAttempts = 10

	maxOrderLines      = 50
	maxLineQuantity    = 99
	maxNoteLength      = 200
	maxPreparationTime = 600
)

// OrderService представляет сервис для работы с заказами
type OrderService struct {
	storage     orderStorage  // Хранилище данных для работы с заказами
	notifier    orderNotifier // Отправка уведомлений о заказах
	now         func() time.Time
	backoff     func() time.Duration
	maxAttempts int
}

// Интерфейс хранилища для работы с заказами
type orderStorage interface {
	FindShopByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	FindMenuItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]models.MenuItem, error)
	CreateOrder(ctx context.Context, order models.Order, from, to time.Time, assign database.TokenAssigner) (*models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderByToken(ctx context.Context, customerID uuid.UUID, token string) (*models.Order, error)
	FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	FindOrdersByShop(ctx context.Context, shopID uuid.UUID, status *models.OrderStatus) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus, at time.Time, preparationTime *int) (bool, error)
}

// orderNotifier отправляет уведомление асинхронно. Ошибки доставки не возвращаются вызывающему.
type orderNotifier interface {
	Notify(userID uuid.UUID, orderID *uuid.UUID, kind models.NotificationKind, title, message string)
}

// OrderOption настраивает OrderService.
type OrderOption func(*OrderService)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) OrderOption {
	return func(o *OrderService) {
		o.now = now
	}
}

// WithRetryPolicy задает число попыток выделения токена и паузу между ними.
func WithRetryPolicy(attempts int, backoff func() time.Duration) OrderOption {
	return func(o *OrderService) {
		o.maxAttempts = attempts
		o.backoff = backoff
	}
}

// randomBackoff случайная пауза от 150 до 300 мс.
func randomBackoff() time.Duration {
	return 150*time.Millisecond + rand.N(151*time.Millisecond)
}

// NewOrderService создает новый экземпляр OrderService
func NewOrderService(storage orderStorage, notifier orderNotifier, opts ...OrderOption) *OrderService {
	o := &OrderService{
		storage:     storage,
		notifier:    notifier,
		now:         time.Now,
		backoff:     randomBackoff,
		maxAttempts: DefaultTokenAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// orderLine проверенная строка заказа
type orderLine struct {
	menuItemID uuid.UUID
	quantity   int
	note       string
}

// orderDraft проверенный запрос на оформление заказа
type orderDraft struct {
	shopID        uuid.UUID
	lines         []orderLine
	paymentMethod models.PaymentMethod
	orderType     models.OrderType
	scheduledTime *time.Time
	notes         string
}

// validatePlaceOrder проверяет запрос до обращения к хранилищу
func validatePlaceOrder(req models.PlaceOrderRequest, now time.Time) (*orderDraft, error) {
	draft := &orderDraft{}

	if req.ShopID == nil {
		return nil, newValidationError("не указан магазин")
	}
	shopID, err := uuid.Parse(*req.ShopID)
	if err != nil {
		return nil, newValidationError("некорректный идентификатор магазина")
	}
	draft.shopID = shopID

	if len(req.Items) == 0 {
		return nil, newValidationError("заказ не содержит позиций")
	}
	if len(req.Items) > maxOrderLines {
		return nil, newValidationError(fmt.Sprintf("заказ не может содержать более %d позиций", maxOrderLines))
	}

	for i, item := range req.Items {
		if item.MenuItemID == nil {
			return nil, newValidationError(fmt.Sprintf("позиция %d: не указан идентификатор", i+1))
		}
		menuItemID, err := uuid.Parse(*item.MenuItemID)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("позиция %d: некорректный идентификатор", i+1))
		}
		if item.Quantity == nil || *item.Quantity < 1 || *item.Quantity > maxLineQuantity {
			return nil, newValidationError(fmt.Sprintf("позиция %d: количество должно быть от 1 до %d", i+1, maxLineQuantity))
		}

		line := orderLine{menuItemID: menuItemID, quantity: *item.Quantity}
		if item.Note != nil {
			line.note = strings.TrimSpace(*item.Note)
			if len([]rune(line.note)) > maxNoteLength {
				return nil, newValidationError(fmt.Sprintf("позиция %d: комментарий длиннее %d символов", i+1, maxNoteLength))
			}
		}
		draft.lines = append(draft.lines, line)
	}

	if req.PaymentMethod == nil {
		return nil, newValidationError("не указан способ оплаты")
	}
	switch *req.PaymentMethod {
	case models.PaymentCash, models.PaymentUPI, models.PaymentCard:
		draft.paymentMethod = *req.PaymentMethod
	default:
		return nil, newValidationError(fmt.Sprintf("неизвестный способ оплаты: %s", *req.PaymentMethod))
	}

	draft.orderType = models.OrderTypeImmediate
	if req.OrderType != nil {
		draft.orderType = *req.OrderType
	}
	switch draft.orderType {
	case models.OrderTypeImmediate:
		if req.ScheduledTime != nil {
			return nil, newValidationError("время указывается только для запланированного заказа")
		}
	case models.OrderTypeScheduled:
		if req.ScheduledTime == nil {
			return nil, newValidationError("не указано время запланированного заказа")
		}
		if !req.ScheduledTime.After(now) {
			return nil, newValidationError("время запланированного заказа должно быть в будущем")
		}
		scheduled := req.ScheduledTime.UTC()
		draft.scheduledTime = &scheduled
	default:
		return nil, newValidationError(fmt.Sprintf("неизвестный тип заказа: %s", draft.orderType))
	}

	if req.Notes != nil {
		draft.notes = strings.TrimSpace(*req.Notes)
	}

	return draft, nil
}

// PlaceOrder проверяет, оценивает и сохраняет заказ, назначая ему токен магазина на текущие сутки UTC.
// Конфликт токена с конкурентным заказом повторяется не более maxAttempts раз.
func (o *OrderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, req models.PlaceOrderRequest) (*models.Order, error) {
	now := o.now().UTC()

	draft, err := validatePlaceOrder(req, now)
	if err != nil {
		return nil, err
	}

	shop, err := o.storage.FindShopByID(ctx, draft.shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	if !shop.IsOpen {
		return nil, ErrShopClosed
	}

	order, err := o.priceOrder(ctx, shop, draft)
	if err != nil {
		return nil, err
	}
	order.CustomerID = customerID
	order.OrderNumber = newOrderNumber(now)
	order.PlacedAt = utils.NewRFC3339Date(now)

	from, to := DayWindow(now)
	assign := NextToken(from)

	for attempt := 1; ; attempt++ {
		created, err := o.storage.CreateOrder(ctx, *order, from, to, assign)
		if err == nil {
			created.ShopName = shop.Name
			o.notifyPlaced(shop, created)

			logger.Log.Info("order placed",
				zap.String("orderID", created.ID.String()),
				zap.String("shopID", shop.ID.String()),
				zap.String("token", created.Token),
				zap.Int("attempt", attempt),
			)
			return created, nil
		}

		// Повторяем только конфликт токена, остальные ошибки возвращаем сразу
		if !errors.Is(err, database.ErrDuplicateOrderToken) {
			return nil, err
		}

		logger.Log.Warn("order token conflict",
			zap.String("shopID", shop.ID.String()),
			zap.Int("attempt", attempt),
		)

		if attempt >= o.maxAttempts {
			break
		}

		if err := sleep(ctx, o.backoff()); err != nil {
			return nil, err
		}
	}

	return nil, ErrTokenAllocation
}

// priceOrder собирает позиции заказа по ценам каталога на момент оформления
func (o *OrderService) priceOrder(ctx context.Context, shop *models.Shop, draft *orderDraft) (*models.Order, error) {
	ids := make([]uuid.UUID, 0, len(draft.lines))
	seen := make(map[uuid.UUID]bool, len(draft.lines))
	for _, line := range draft.lines {
		if !seen[line.menuItemID] {
			seen[line.menuItemID] = true
			ids = append(ids, line.menuItemID)
		}
	}

	items, err := o.storage.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[uuid.UUID]models.MenuItem, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}

	order := &models.Order{
		ShopID:        shop.ID,
		Status:        models.StatusPending,
		OrderType:     draft.orderType,
		ScheduledTime: utils.NewNullableRFC3339Date(draft.scheduledTime),
		Subtotal:      decimal.Zero,
		Discount:      decimal.Zero,
		PaymentMethod: draft.paymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Notes:         draft.notes,
	}

	for _, line := range draft.lines {
		item, ok := catalog[line.menuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, line.menuItemID)
		}
		if item.ShopID != shop.ID {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemWrongShop, item.Name)
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemUnavailable, item.Name)
		}

		subtotal := item.Price.Mul(decimal.NewFromInt(int64(line.quantity)))
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.quantity,
			Subtotal:   subtotal,
			Note:       line.note,
		})
		order.Subtotal = order.Subtotal.Add(subtotal)
	}

	order.Total = order.Subtotal.Sub(order.Discount)
	return order, nil
}

func (o *OrderService) notifyPlaced(shop *models.Shop, order *models.Order) {
	orderID := order.ID

	o.notifier.Notify(order.CustomerID, &orderID, models.NotificationOrderPlaced,
		"Заказ оформлен",
		fmt.Sprintf("Ваш заказ №%s в «%s» принят. Сумма: %s", order.Token, shop.Name, order.Total.StringFixed(2)),
	)
	o.notifier.Notify(shop.OwnerID, &orderID, models.NotificationNewOrder,
		"Новый заказ",
		fmt.Sprintf("Поступил заказ №%s на сумму %s", order.Token, order.Total.StringFixed(2)),
	)
}

// GetOrder возвращает заказ покупателю или владельцу магазина
func (o *OrderService) GetOrder(ctx context.Context, user *models.User, orderID uuid.UUID) (*models.Order, error) {
	order, err := o.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.CustomerID == user.ID || user.Role == models.RoleAdmin {
		return order, nil
	}

	if user.Role == models.RoleShopkeeper {
		shop, err := o.storage.FindShopByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if shop != nil && shop.ID == order.ShopID {
			return order, nil
		}
	}

	return nil, ErrForbidden
}

// GetOrderByToken возвращает последний заказ покупателя с указанным токеном
func (o *OrderService) GetOrderByToken(ctx context.Context, customerID uuid.UUID, token string) (*models.Order, error) {
	order, err := o.storage.FindOrderByToken(ctx, customerID, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListCustomerOrders возвращает заказы покупателя, новые первыми
func (o *OrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return o.storage.FindOrdersByCustomer(ctx, customerID)
}

// ListShopOrders возвращает заказы магазина владельца с необязательным фильтром по статусу
func (o *OrderService) ListShopOrders(ctx context.Context, ownerID uuid.UUID, status *models.OrderStatus) ([]models.Order, error) {
	if status != nil && !status.IsValid() {
		return nil, newValidationError(fmt.Sprintf("неизвестный статус: %s", *status))
	}

	shop, err := o.storage.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	return o.storage.FindOrdersByShop(ctx, shop.ID, status)
}

// UpdateStatus переводит заказ магазина владельца в следующий статус
func (o *OrderService) UpdateStatus(ctx context.Context, ownerID, orderID uuid.UUID, req models.StatusUpdateRequest) (*models.Order, error) {
	if req.Status == nil || !req.Status.IsValid() {
		return nil, newValidationError("некорректный статус заказа")
	}
	if req.PreparationTime != nil && (*req.PreparationTime < 1 || *req.PreparationTime > maxPreparationTime) {
		return nil, newValidationError(fmt.Sprintf("время приготовления должно быть от 1 до %d минут", maxPreparationTime))
	}

	shop, err := o.storage.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	order, err := o.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.ShopID != shop.ID {
		return nil, ErrOrderNotFound
	}

	var preparationTime *int
	if *req.Status == models.StatusPreparing {
		preparationTime = req.PreparationTime
	}

	updated, err := o.transition(ctx, order, *req.Status, preparationTime)
	if err != nil {
		return nil, err
	}

	orderID = updated.ID
	o.notifier.Notify(updated.CustomerID, &orderID, models.NotificationOrderStatus,
		"Статус заказа изменен",
		statusMessage(updated),
	)

	return updated, nil
}

// CancelOrder отменяет заказ покупателя, если он еще не готовится
func (o *OrderService) CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := o.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}

	updated, err := o.transition(ctx, order, models.StatusCancelled, nil)
	if err != nil {
		return nil, err
	}

	id := updated.ID
	o.notifier.Notify(updated.CustomerID, &id, models.NotificationOrderStatus,
		"Заказ отменен",
		statusMessage(updated),
	)

	shop, err := o.storage.FindShopByID(ctx, updated.ShopID)
	if err != nil {
		logger.Log.Error("failed to load shop for cancel notification", zap.Error(err))
	} else if shop != nil {
		o.notifier.Notify(shop.OwnerID, &id, models.NotificationOrderStatus,
			"Заказ отменен покупателем",
			fmt.Sprintf("Заказ №%s отменен покупателем", updated.Token),
		)
	}

	return updated, nil
}

// transition применяет переход статуса условным обновлением. Если заказ успел
// измениться конкурентно, возвращается ErrInvalidStatusTransition.
func (o *OrderService) transition(ctx context.Context, order *models.Order, to models.OrderStatus, preparationTime *int) (*models.Order, error) {
	if !order.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, to)
	}

	ok, err := o.storage.UpdateOrderStatus(ctx, order.ID, order.Status, to, o.now().UTC(), preparationTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: заказ изменен одновременно", ErrInvalidStatusTransition)
	}

	updated, err := o.storage.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	logger.Log.Info("order status changed",
		zap.String("orderID", order.ID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

func statusMessage(order *models.Order) string {
	switch order.Status {
	case models.StatusConfirmed:
		return fmt.Sprintf("Заказ №%s подтвержден", order.Token)
	case models.StatusPreparing:
		if order.PreparationTime != nil {
			return fmt.Sprintf("Заказ №%s готовится, примерно %d мин.", order.Token, *order.PreparationTime)
		}
		return fmt.Sprintf("Заказ №%s готовится", order.Token)
	case models.StatusReady:
		return fmt.Sprintf("Заказ №%s готов, заберите его на кассе", order.Token)
	case models.StatusCompleted:
		return fmt.Sprintf("Заказ №%s выдан. Приятного аппетита!", order.Token)
	case models.StatusCancelled:
		return fmt.Sprintf("Заказ №%s отменен", order.Token)
	}
	return fmt.Sprintf("Заказ №%s: %s", order.Token, order.Status)
}

// sleep ждет d или отмены контекста
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
