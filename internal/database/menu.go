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

const (
	InsertMenuItemQuery = `
		INSERT INTO
			menu_items (id, shop_id, name, description, price, category, is_available, is_popular, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	UpdateMenuItemQuery = `
		UPDATE
			menu_items
		SET
			name = $3,
			description = $4,
			price = $5,
			category = $6,
			is_available = $7,
			is_popular = $8,
			image_url = $9,
			updated_at = now()
		WHERE
			id = $1 AND shop_id = $2
	`
	DeleteMenuItemQuery = `
		DELETE FROM
			menu_items
		WHERE
			id = $1 AND shop_id = $2
	`
	ToggleMenuItemQuery = `
		UPDATE
			menu_items
		SET
			is_available = NOT is_available,
			updated_at = now()
		WHERE
			id = $1 AND shop_id = $2
	`
	selectMenuItemsQuery = `
		SELECT
			id,
			shop_id,
			name,
			description,
			price,
			category,
			is_available,
			is_popular,
			image_url,
			created_at,
			updated_at
		FROM
			menu_items
	`
)

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var (
		item                 models.MenuItem
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&item.ID, &item.ShopID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.IsAvailable, &item.IsPopular, &item.ImageURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = utils.NewRFC3339Date(createdAt)
	item.UpdatedAt = utils.NewRFC3339Date(updatedAt)
	return &item, nil
}

// CreateMenuItem добавляет позицию в меню магазина
func (d *Database) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	_, err := d.db.Exec(ctx, InsertMenuItemQuery,
		item.ID, item.ShopID, item.Name, item.Description, item.Price,
		item.Category, item.IsAvailable, item.IsPopular, item.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания позиции меню: %w", err)
	}

	return d.FindMenuItem(ctx, item.ID)
}

// UpdateMenuItem сохраняет позицию меню. Возвращает nil, если позиция не принадлежит магазину.
func (d *Database) UpdateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	tag, err := d.db.Exec(ctx, UpdateMenuItemQuery,
		item.ID, item.ShopID, item.Name, item.Description, item.Price,
		item.Category, item.IsAvailable, item.IsPopular, item.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления позиции меню: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return d.FindMenuItem(ctx, item.ID)
}

// DeleteMenuItem удаляет позицию меню магазина и сообщает, была ли она найдена
func (d *Database) DeleteMenuItem(ctx context.Context, shopID, itemID uuid.UUID) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteMenuItemQuery, itemID, shopID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления позиции меню: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ToggleMenuItemAvailability инвертирует доступность позиции меню
func (d *Database) ToggleMenuItemAvailability(ctx context.Context, shopID, itemID uuid.UUID) (*models.MenuItem, error) {
	tag, err := d.db.Exec(ctx, ToggleMenuItemQuery, itemID, shopID)
	if err != nil {
		return nil, fmt.Errorf("ошибка изменения доступности позиции меню: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return d.FindMenuItem(ctx, itemID)
}

func (d *Database) FindMenuItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := scanMenuItem(d.db.QueryRow(ctx, selectMenuItemsQuery+" WHERE id = $1", itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска позиции меню: %w", err)
	}
	return item, nil
}

// FindMenuItemsByShop возвращает меню магазина: сначала популярные, затем по категории и названию
func (d *Database) FindMenuItemsByShop(ctx context.Context, shopID uuid.UUID) ([]models.MenuItem, error) {
	return d.findMenuItems(ctx, selectMenuItemsQuery+" WHERE shop_id = $1 ORDER BY is_popular DESC, category, name", shopID)
}

// FindMenuItemsByIDs возвращает найденные позиции меню. Отсутствующие идентификаторы пропускаются.
func (d *Database) FindMenuItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]models.MenuItem, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	return d.findMenuItems(ctx, selectMenuItemsQuery+" WHERE id = ANY($1::uuid[])", ids)
}

func (d *Database) findMenuItems(ctx context.Context, query string, args ...interface{}) ([]models.MenuItem, error) {
	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска позиций меню: %w", err)
	}
	defer rows.Close()

	result := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с позицией меню: %w", err)
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
