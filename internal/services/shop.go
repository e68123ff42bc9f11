package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrShopAlreadyExists = errors.New("у владельца уже есть магазин")

// Сколько раз пробуем подобрать свободный slug
const slugAttempts = 5

// ShopService управляет магазинами
type ShopService struct {
	storage shopStorage
}

type shopStorage interface {
	CreateShop(ctx context.Context, shop models.Shop) (*models.Shop, error)
	UpdateShop(ctx context.Context, shop models.Shop) (*models.Shop, error)
	FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	FindShopBySlug(ctx context.Context, slug string) (*models.Shop, error)
	FindShops(ctx context.Context, filter models.ShopFilter) ([]models.Shop, error)
	FindMenuItemsByShop(ctx context.Context, shopID uuid.UUID) ([]models.MenuItem, error)
}

func NewShopService(storage shopStorage) *ShopService {
	return &ShopService{storage: storage}
}

// CreateShop открывает магазин владельца. Slug строится из названия,
// при коллизии к нему добавляется случайный суффикс.
func (s *ShopService) CreateShop(ctx context.Context, ownerID uuid.UUID, req models.ShopRequest) (*models.Shop, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, newValidationError("не указано название магазина")
	}

	existing, err := s.storage.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrShopAlreadyExists
	}

	shop := models.Shop{OwnerID: ownerID, IsOpen: true}
	applyShopRequest(&shop, req)

	base := slugify(shop.Name)
	slug := base
	if reservedSlugs[base] {
		slug = base + "-" + uuid.NewString()[:4]
	}
	for attempt := 1; ; attempt++ {
		shop.Slug = slug
		created, err := s.storage.CreateShop(ctx, shop)
		switch {
		case err == nil:
			logger.Log.Info("shop created", zap.String("shopID", created.ID.String()), zap.String("slug", created.Slug))
			return created, nil
		case errors.Is(err, database.ErrDuplicateShop):
			return nil, ErrShopAlreadyExists
		case errors.Is(err, database.ErrDuplicateSlug) && attempt < slugAttempts:
			slug = base + "-" + uuid.NewString()[:4]
		default:
			return nil, err
		}
	}
}

// GetMyShop возвращает магазин владельца
func (s *ShopService) GetMyShop(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	shop, err := s.storage.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// UpdateMyShop меняет переданные поля магазина владельца. Slug не меняется.
func (s *ShopService) UpdateMyShop(ctx context.Context, ownerID uuid.UUID, req models.ShopRequest) (*models.Shop, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, newValidationError("название магазина не может быть пустым")
	}

	shop, err := s.GetMyShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	applyShopRequest(shop, req)
	return s.storage.UpdateShop(ctx, *shop)
}

func (s *ShopService) ListShops(ctx context.Context, filter models.ShopFilter) ([]models.Shop, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Cuisine = strings.TrimSpace(filter.Cuisine)
	return s.storage.FindShops(ctx, filter)
}

// GetShopBySlug возвращает магазин вместе с полным меню
func (s *ShopService) GetShopBySlug(ctx context.Context, slug string) (*models.ShopWithMenu, error) {
	shop, err := s.storage.FindShopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	menu, err := s.storage.FindMenuItemsByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	return &models.ShopWithMenu{Shop: *shop, Menu: menu}, nil
}

func applyShopRequest(shop *models.Shop, req models.ShopRequest) {
	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		shop.Description = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Cuisine != nil {
		shop.Cuisine = strings.TrimSpace(*req.Cuisine)
	}
	if req.ImageURL != nil {
		shop.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.IsOpen != nil {
		shop.IsOpen = *req.IsOpen
	}
}

// reservedSlugs заняты статическими маршрутами /api/shops/*
var reservedSlugs = map[string]bool{
	"mine": true,
}

// slugify приводит название к нижнему регистру и схлопывает все, кроме букв и цифр, в дефис
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "shop"
	}
	return slug
}
