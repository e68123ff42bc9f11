package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Определение пользовательских ошибок
var (
	ErrDuplicateOrderToken = errors.New("токен заказа уже занят") // Конкурентный заказ получил тот же токен
)

// SQL-запросы для работы с заказами
const (
	SelectDayTokensQuery = `
		SELECT
			token
		FROM
			orders
		WHERE
			shop_id = $1
			AND placed_at >= $2
			AND placed_at < $3
	`
	InsertOrderQuery = `
		INSERT INTO
			orders (
				id, customer_id, shop_id, token, order_number, status, order_type, scheduled_time,
				subtotal, discount, total, payment_method, payment_status, notes, placed_at
			)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	InsertOrderItemQuery = `
		INSERT INTO
			order_items (id, order_id, menu_item_id, name, unit_price, quantity, subtotal, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	selectOrdersQuery = `
		SELECT
			o.id,
			o.customer_id,
			o.shop_id,
			s.name,
			o.token,
			o.order_number,
			o.status,
			o.order_type,
			o.scheduled_time,
			o.subtotal,
			o.discount,
			o.total,
			o.payment_method,
			o.payment_status,
			o.notes,
			o.preparation_time,
			o.placed_at,
			o.confirmed_at,
			o.preparing_at,
			o.ready_at,
			o.completed_at,
			o.cancelled_at
		FROM
			orders o
			JOIN shops s ON s.id = o.shop_id
	`
	SelectOrderItemsQuery = `
		SELECT
			id,
			order_id,
			menu_item_id,
			name,
			unit_price,
			quantity,
			subtotal,
			note
		FROM
			order_items
		WHERE
			order_id = ANY($1::uuid[])
		ORDER BY
			name
	`
	updateOrderStatusQuery = `
		UPDATE
			orders
		SET
			status = $2,
			%s = $3,
			preparation_time = COALESCE($4, preparation_time),
			payment_status = CASE WHEN $2 = 'completed' THEN 'paid' ELSE payment_status END
		WHERE
			id = $1
			AND status = $5
	`
	DeleteCompletedOrdersQuery = `
		DELETE FROM
			orders
		WHERE
			status = 'completed'
			AND completed_at < $1
	`
)

// statusTimestampColumns колонка с временем перехода для каждого статуса
var statusTimestampColumns = map[models.OrderStatus]string{
	models.StatusConfirmed: "confirmed_at",
	models.StatusPreparing: "preparing_at",
	models.StatusReady:     "ready_at",
	models.StatusCompleted: "completed_at",
	models.StatusCancelled: "cancelled_at",
}

// Определение статуса заказа с возможностью преобразования в/из базы данных
type OrderStatusDB struct {
	models.OrderStatus
}

// Реализация интерфейса sql.Scanner для чтения статуса заказа из базы данных
func (s *OrderStatusDB) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("статус заказа должен быть строкой, а не %T", value)
	}

	*s = OrderStatusDB{models.OrderStatus(strVal)}
	return nil
}

// Реализация интерфейса driver.Valuer для преобразования статуса заказа в строку перед записью в базу данных
func (s OrderStatusDB) Value() (driver.Value, error) {
	return string(s.OrderStatus), nil
}

// TokenAssigner вычисляет токен нового заказа по всем токенам магазина за сутки.
// dayTokens пуст, если сегодня у магазина заказов еще не было.
type TokenAssigner func(dayTokens []string) string

// CreateOrder в одной транзакции читает токены магазина в окне [from, to),
// назначает новый токен и сохраняет заказ вместе с позициями.
// Конфликт по (shop_id, token) возвращается как ErrDuplicateOrderToken.
func (d *Database) CreateOrder(ctx context.Context, order models.Order, from, to time.Time, assign TokenAssigner) (*models.Order, error) {
	order.ID = uuid.New()

	err := d.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, SelectDayTokensQuery, order.ShopID, from, to)
		if err != nil {
			return fmt.Errorf("ошибка чтения токенов за сутки: %w", err)
		}
		dayTokens, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("ошибка чтения токенов за сутки: %w", err)
		}

		order.Token = assign(dayTokens)

		var scheduledTime *time.Time
		if order.ScheduledTime != nil {
			scheduledTime = &order.ScheduledTime.Time
		}

		_, err = tx.Exec(ctx, InsertOrderQuery,
			order.ID, order.CustomerID, order.ShopID, order.Token, order.OrderNumber,
			OrderStatusDB{order.Status}, string(order.OrderType), scheduledTime,
			order.Subtotal, order.Discount, order.Total,
			string(order.PaymentMethod), string(order.PaymentStatus), order.Notes, order.PlacedAt.Time,
		)
		if err != nil {
			if constraint, ok := uniqueViolation(err); ok && constraint == "orders_shop_id_token_key" {
				return ErrDuplicateOrderToken
			}
			return fmt.Errorf("ошибка создания заказа: %w", err)
		}

		// Вставляем каждую позицию заказа
		for i := range order.Items {
			item := &order.Items[i]
			item.ID = uuid.New()

			_, err = tx.Exec(ctx, InsertOrderItemQuery,
				item.ID, order.ID, item.MenuItemID, item.Name, item.UnitPrice, item.Quantity, item.Subtotal, item.Note,
			)
			if err != nil {
				return fmt.Errorf("ошибка создания позиции заказа: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order                                                       models.Order
		status                                                      OrderStatusDB
		orderType, paymentMethod, paymentStatus                     string
		scheduledTime                                               *time.Time
		placedAt                                                    time.Time
		confirmedAt, preparingAt, readyAt, completedAt, cancelledAt *time.Time
	)

	err := row.Scan(
		&order.ID, &order.CustomerID, &order.ShopID, &order.ShopName, &order.Token, &order.OrderNumber,
		&status, &orderType, &scheduledTime, &order.Subtotal, &order.Discount, &order.Total,
		&paymentMethod, &paymentStatus, &order.Notes, &order.PreparationTime, &placedAt,
		&confirmedAt, &preparingAt, &readyAt, &completedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = status.OrderStatus
	order.OrderType = models.OrderType(orderType)
	order.PaymentMethod = models.PaymentMethod(paymentMethod)
	order.PaymentStatus = models.PaymentStatus(paymentStatus)
	order.ScheduledTime = utils.NewNullableRFC3339Date(scheduledTime)
	order.PlacedAt = utils.NewRFC3339Date(placedAt)
	order.ConfirmedAt = utils.NewNullableRFC3339Date(confirmedAt)
	order.PreparingAt = utils.NewNullableRFC3339Date(preparingAt)
	order.ReadyAt = utils.NewNullableRFC3339Date(readyAt)
	order.CompletedAt = utils.NewNullableRFC3339Date(completedAt)
	order.CancelledAt = utils.NewNullableRFC3339Date(cancelledAt)
	order.Items = []models.OrderItem{}

	return &order, nil
}

// Поиск заказа по его ID вместе с позициями
func (d *Database) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return d.findOrder(ctx, selectOrdersQuery+" WHERE o.id = $1", orderID)
}

// Поиск последнего заказа покупателя с указанным токеном
func (d *Database) FindOrderByToken(ctx context.Context, customerID uuid.UUID, token string) (*models.Order, error) {
	return d.findOrder(ctx, selectOrdersQuery+" WHERE o.customer_id = $1 AND o.token = $2 ORDER BY o.placed_at DESC LIMIT 1", customerID, token)
}

func (d *Database) findOrder(ctx context.Context, query string, args ...interface{}) (*models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(ctx, query, args...))
	if err != nil {
		// Если заказ не найден, возвращаем nil без ошибки
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска заказа: %w", err)
	}

	orders := []models.Order{*order}
	if err := attachOrderItems(ctx, d.db, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// Поиск всех заказов покупателя, новые первыми
func (d *Database) FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return d.findOrders(ctx, selectOrdersQuery+" WHERE o.customer_id = $1 ORDER BY o.placed_at DESC", customerID)
}

// Поиск заказов магазина с необязательным фильтром по статусу, новые первыми
func (d *Database) FindOrdersByShop(ctx context.Context, shopID uuid.UUID, status *models.OrderStatus) ([]models.Order, error) {
	if status != nil {
		return d.findOrders(ctx, selectOrdersQuery+" WHERE o.shop_id = $1 AND o.status = $2 ORDER BY o.placed_at DESC", shopID, OrderStatusDB{*status})
	}
	return d.findOrders(ctx, selectOrdersQuery+" WHERE o.shop_id = $1 ORDER BY o.placed_at DESC", shopID)
}

func (d *Database) findOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов: %w", err)
	}
	defer rows.Close()

	result := []models.Order{}
	// Обрабатываем каждую строку результата
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}
		result = append(result, *order)
	}

	// Проверка на ошибки при итерации по строкам
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	if err := attachOrderItems(ctx, d.db, result); err != nil {
		return nil, err
	}

	return result, nil
}

// attachOrderItems загружает позиции для всех заказов одним запросом
func attachOrderItems(ctx context.Context, q DBExecutor, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, order := range orders {
		ids[i] = order.ID.String()
		index[order.ID] = i
	}

	rows, err := q.Query(ctx, SelectOrderItemsQuery, ids)
	if err != nil {
		return fmt.Errorf("ошибка поиска позиций заказа: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    models.OrderItem
			orderID uuid.UUID
		)
		if err := rows.Scan(&item.ID, &orderID, &item.MenuItemID, &item.Name, &item.UnitPrice, &item.Quantity, &item.Subtotal, &item.Note); err != nil {
			return fmt.Errorf("ошибка обработки строки с позицией заказа: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка итерации по строкам: %w", err)
	}
	return nil
}

// UpdateOrderStatus переводит заказ из статуса from в статус to и фиксирует время перехода.
// Возвращает false, если заказ уже не находится в статусе from.
func (d *Database) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus, at time.Time, preparationTime *int) (bool, error) {
	column, ok := statusTimestampColumns[to]
	if !ok {
		return false, fmt.Errorf("для статуса %s нет отметки времени", to)
	}

	tag, err := d.db.Exec(ctx, fmt.Sprintf(updateOrderStatusQuery, column),
		orderID, OrderStatusDB{to}, at, preparationTime, OrderStatusDB{from},
	)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления статуса заказа: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteCompletedOrdersBefore удаляет завершенные заказы, закрытые раньше before
func (d *Database) DeleteCompletedOrdersBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := d.db.Exec(ctx, DeleteCompletedOrdersQuery, before)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления завершенных заказов: %w", err)
	}
	return tag.RowsAffected(), nil
}
