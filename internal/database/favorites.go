package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrDuplicateFavorite = errors.New("магазин уже в избранном")
	ErrUnknownShop       = errors.New("магазин не существует")
)

const (
	InsertFavoriteQuery = `
		INSERT INTO
			favorites (customer_id, shop_id)
		VALUES ($1, $2)
	`
	DeleteFavoriteQuery = `
		DELETE FROM
			favorites
		WHERE
			customer_id = $1 AND shop_id = $2
	`
)

// CreateFavorite добавляет магазин в избранное покупателя
func (d *Database) CreateFavorite(ctx context.Context, customerID, shopID uuid.UUID) error {
	if _, err := d.db.Exec(ctx, InsertFavoriteQuery, customerID, shopID); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrDuplicateFavorite
		}
		if isForeignKeyViolation(err) {
			return ErrUnknownShop
		}
		return fmt.Errorf("ошибка добавления в избранное: %w", err)
	}
	return nil
}

// DeleteFavorite убирает магазин из избранного и сообщает, был ли он там
func (d *Database) DeleteFavorite(ctx context.Context, customerID, shopID uuid.UUID) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteFavoriteQuery, customerID, shopID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления из избранного: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindFavorites возвращает избранные магазины покупателя, последние добавленные первыми
func (d *Database) FindFavorites(ctx context.Context, customerID uuid.UUID) ([]models.Favorite, error) {
	query := `
		SELECT
			f.created_at,
			fs.*
		FROM
			favorites f
			JOIN (` + selectShopsQuery + `) fs ON fs.id = f.shop_id
		WHERE
			f.customer_id = $1
		ORDER BY
			f.created_at DESC
	`

	rows, err := d.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска избранного: %w", err)
	}
	defer rows.Close()

	result := []models.Favorite{}
	for rows.Next() {
		var (
			favorite             models.Favorite
			addedAt              time.Time
			createdAt, updatedAt time.Time
			shop                 = &favorite.Shop
		)
		if err := rows.Scan(
			&addedAt,
			&shop.ID, &shop.OwnerID, &shop.Name, &shop.Slug, &shop.Description, &shop.Address,
			&shop.Phone, &shop.Cuisine, &shop.ImageURL, &shop.IsOpen, &createdAt, &updatedAt,
			&shop.Rating, &shop.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с избранным: %w", err)
		}
		shop.CreatedAt = utils.NewRFC3339Date(createdAt)
		shop.UpdatedAt = utils.NewRFC3339Date(updatedAt)
		favorite.CreatedAt = utils.NewRFC3339Date(addedAt)
		result = append(result, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
