package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrDuplicateShop = errors.New("у владельца уже есть магазин")
	ErrDuplicateSlug = errors.New("slug магазина уже занят")
)

const (
	InsertShopQuery = `
		INSERT INTO
			shops (id, owner_id, name, slug, description, address, phone, cuisine, image_url, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	UpdateShopQuery = `
		UPDATE
			shops
		SET
			name = $2,
			description = $3,
			address = $4,
			phone = $5,
			cuisine = $6,
			image_url = $7,
			is_open = $8,
			updated_at = now()
		WHERE
			id = $1
	`
	selectShopsQuery = `
		SELECT
			s.id,
			s.owner_id,
			s.name,
			s.slug,
			s.description,
			s.address,
			s.phone,
			s.cuisine,
			s.image_url,
			s.is_open,
			s.created_at,
			s.updated_at,
			COALESCE(r.rating, 0)::float8 AS rating,
			COALESCE(r.review_count, 0) AS review_count
		FROM
			shops s
			LEFT JOIN (
				SELECT shop_id, AVG(rating) AS rating, COUNT(*) AS review_count
				FROM reviews
				GROUP BY shop_id
			) r ON r.shop_id = s.id
	`
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row rowScanner) (*models.Shop, error) {
	var (
		shop                 models.Shop
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&shop.ID, &shop.OwnerID, &shop.Name, &shop.Slug, &shop.Description, &shop.Address,
		&shop.Phone, &shop.Cuisine, &shop.ImageURL, &shop.IsOpen, &createdAt, &updatedAt,
		&shop.Rating, &shop.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	shop.CreatedAt = utils.NewRFC3339Date(createdAt)
	shop.UpdatedAt = utils.NewRFC3339Date(updatedAt)
	return &shop, nil
}

// CreateShop создает магазин. Нарушения уникальности владельца и slug различаются.
func (d *Database) CreateShop(ctx context.Context, shop models.Shop) (*models.Shop, error) {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}

	_, err := d.db.Exec(ctx, InsertShopQuery,
		shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.Description,
		shop.Address, shop.Phone, shop.Cuisine, shop.ImageURL, shop.IsOpen,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "shops_slug_key" {
				return nil, ErrDuplicateSlug
			}
			return nil, ErrDuplicateShop
		}
		return nil, fmt.Errorf("ошибка создания магазина: %w", err)
	}

	return d.FindShopByID(ctx, shop.ID)
}

// UpdateShop сохраняет изменяемые поля магазина
func (d *Database) UpdateShop(ctx context.Context, shop models.Shop) (*models.Shop, error) {
	_, err := d.db.Exec(ctx, UpdateShopQuery,
		shop.ID, shop.Name, shop.Description, shop.Address,
		shop.Phone, shop.Cuisine, shop.ImageURL, shop.IsOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления магазина: %w", err)
	}

	return d.FindShopByID(ctx, shop.ID)
}

func (d *Database) FindShopByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	return d.findShop(ctx, "s.id = $1", shopID)
}

func (d *Database) FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	return d.findShop(ctx, "s.owner_id = $1", ownerID)
}

func (d *Database) FindShopBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	return d.findShop(ctx, "s.slug = $1", slug)
}

func (d *Database) findShop(ctx context.Context, condition string, arg interface{}) (*models.Shop, error) {
	shop, err := scanShop(d.db.QueryRow(ctx, selectShopsQuery+" WHERE "+condition, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска магазина: %w", err)
	}
	return shop, nil
}

// likeEscaper экранирует служебные символы шаблона LIKE
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern шаблон ILIKE, совпадающий с подстрокой q буквально
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// shopsQuery собирает запрос поиска магазинов по фильтру
func shopsQuery(filter models.ShopFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Query != "" {
		args = append(args, containsPattern(filter.Query))
		conditions = append(conditions, fmt.Sprintf(`s.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.Cuisine != "" {
		args = append(args, filter.Cuisine)
		conditions = append(conditions, fmt.Sprintf("lower(s.cuisine) = lower($%d)", len(args)))
	}
	if filter.OpenOnly {
		conditions = append(conditions, "s.is_open")
	}

	query := selectShopsQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.name"

	return query, args
}

// FindShops возвращает магазины по фильтру, отсортированные по названию
func (d *Database) FindShops(ctx context.Context, filter models.ShopFilter) ([]models.Shop, error) {
	query, args := shopsQuery(filter)

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска магазинов: %w", err)
	}
	defer rows.Close()

	result := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с магазином: %w", err)
		}
		result = append(result, *shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
