package services

import (
	"context"
	"errors"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
)

var (
	ErrAlreadyFavorite  = errors.New("магазин уже в избранном")
	ErrFavoriteNotFound = errors.New("магазина нет в избранном")
)

// FavoriteService управляет избранными магазинами покупателя
type FavoriteService struct {
	storage favoriteStorage
}

type favoriteStorage interface {
	CreateFavorite(ctx context.Context, customerID, shopID uuid.UUID) error
	DeleteFavorite(ctx context.Context, customerID, shopID uuid.UUID) (bool, error)
	FindFavorites(ctx context.Context, customerID uuid.UUID) ([]models.Favorite, error)
}

func NewFavoriteService(storage favoriteStorage) *FavoriteService {
	return &FavoriteService{storage: storage}
}

func (f *FavoriteService) AddFavorite(ctx context.Context, customerID, shopID uuid.UUID) error {
	err := f.storage.CreateFavorite(ctx, customerID, shopID)
	switch {
	case errors.Is(err, database.ErrDuplicateFavorite):
		return ErrAlreadyFavorite
	case errors.Is(err, database.ErrUnknownShop):
		return ErrShopNotFound
	}
	return err
}

func (f *FavoriteService) RemoveFavorite(ctx context.Context, customerID, shopID uuid.UUID) error {
	removed, err := f.storage.DeleteFavorite(ctx, customerID, shopID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites возвращает избранные магазины, последние добавленные первыми
func (f *FavoriteService) ListFavorites(ctx context.Context, customerID uuid.UUID) ([]models.Favorite, error) {
	return f.storage.FindFavorites(ctx, customerID)
}
