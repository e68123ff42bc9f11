package services

import (
	"context"
	"strings"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuService управляет меню магазина владельца
type MenuService struct {
	storage menuStorage
}

type menuStorage interface {
	FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, shopID, itemID uuid.UUID) (bool, error)
	ToggleMenuItemAvailability(ctx context.Context, shopID, itemID uuid.UUID) (*models.MenuItem, error)
	FindMenuItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, error)
	FindMenuItemsByShop(ctx context.Context, shopID uuid.UUID) ([]models.MenuItem, error)
}

func NewMenuService(storage menuStorage) *MenuService {
	return &MenuService{storage: storage}
}

func (m *MenuService) ownerShop(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	shop, err := m.storage.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// ownedItem возвращает позицию, только если она принадлежит магазину
func (m *MenuService) ownedItem(ctx context.Context, shopID, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := m.storage.FindMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ShopID != shopID {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// CreateItem добавляет позицию в меню магазина владельца
func (m *MenuService) CreateItem(ctx context.Context, ownerID uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, newValidationError("не указано название позиции")
	}
	if req.Price == nil {
		return nil, newValidationError("не указана цена позиции")
	}

	shop, err := m.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item := models.MenuItem{ShopID: shop.ID, IsAvailable: true}
	if err := applyMenuItemRequest(&item, req); err != nil {
		return nil, err
	}

	return m.storage.CreateMenuItem(ctx, item)
}

// UpdateItem меняет переданные поля позиции
func (m *MenuService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	shop, err := m.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item, err := m.ownedItem(ctx, shop.ID, itemID)
	if err != nil {
		return nil, err
	}

	if err := applyMenuItemRequest(item, req); err != nil {
		return nil, err
	}

	updated, err := m.storage.UpdateMenuItem(ctx, *item)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrMenuItemNotFound
	}
	return updated, nil
}

func (m *MenuService) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	shop, err := m.ownerShop(ctx, ownerID)
	if err != nil {
		return err
	}

	deleted, err := m.storage.DeleteMenuItem(ctx, shop.ID, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMenuItemNotFound
	}
	return nil
}

// ToggleAvailability переключает доступность позиции для заказа
func (m *MenuService) ToggleAvailability(ctx context.Context, ownerID, itemID uuid.UUID) (*models.MenuItem, error) {
	shop, err := m.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item, err := m.storage.ToggleMenuItemAvailability(ctx, shop.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

func (m *MenuService) ListMyItems(ctx context.Context, ownerID uuid.UUID) ([]models.MenuItem, error) {
	shop, err := m.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return m.storage.FindMenuItemsByShop(ctx, shop.ID)
}

func applyMenuItemRequest(item *models.MenuItem, req models.MenuItemRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return newValidationError("название позиции не может быть пустым")
		}
		item.Name = name
	}
	if req.Price != nil {
		if !req.Price.GreaterThan(decimal.Zero) {
			return newValidationError("цена должна быть больше нуля")
		}
		item.Price = req.Price.Round(2)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsPopular != nil {
		item.IsPopular = *req.IsPopular
	}
	if req.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	return nil
}
