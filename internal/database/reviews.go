package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrDuplicateReview = errors.New("отзыв на заказ уже оставлен")
)

const (
	InsertReviewQuery = `
		INSERT INTO
			reviews (id, order_id, customer_id, shop_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	SelectReviewsByShopQuery = `
		SELECT
			r.id,
			r.order_id,
			r.customer_id,
			u.name,
			r.shop_id,
			r.rating,
			r.comment,
			r.created_at
		FROM
			reviews r
			JOIN users u ON u.id = r.customer_id
		WHERE
			r.shop_id = $1
		ORDER BY
			r.created_at DESC
	`
	SelectReviewExistsQuery = `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE order_id = $1)
	`
)

// CreateReview сохраняет отзыв. Повторный отзыв на тот же заказ возвращает ErrDuplicateReview.
func (d *Database) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	var createdAt time.Time
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	err := d.db.QueryRow(ctx, InsertReviewQuery,
		review.ID, review.OrderID, review.CustomerID, review.ShopID, review.Rating, review.Comment,
	).Scan(&createdAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	review.CreatedAt = utils.NewRFC3339Date(createdAt)
	return &review, nil
}

// FindReviewsByShop возвращает отзывы магазина, новые первыми
func (d *Database) FindReviewsByShop(ctx context.Context, shopID uuid.UUID) ([]models.Review, error) {
	rows, err := d.db.Query(ctx, SelectReviewsByShopQuery, shopID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска отзывов: %w", err)
	}
	defer rows.Close()

	result := []models.Review{}
	for rows.Next() {
		var (
			review    models.Review
			createdAt time.Time
		)
		if err := rows.Scan(&review.ID, &review.OrderID, &review.CustomerID, &review.CustomerName,
			&review.ShopID, &review.Rating, &review.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с отзывом: %w", err)
		}
		review.CreatedAt = utils.NewRFC3339Date(createdAt)
		result = append(result, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// HasReview сообщает, оставлен ли отзыв на заказ
func (d *Database) HasReview(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var exists bool
	if err := d.db.QueryRow(ctx, SelectReviewExistsQuery, orderID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки отзыва: %w", err)
	}
	return exists, nil
}
