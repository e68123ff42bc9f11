package services

import (
	"context"
	"testing"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoriteKey struct {
	customerID, shopID uuid.UUID
}

type fakeFavoriteStorage struct {
	shops     map[uuid.UUID]models.Shop
	favorites map[favoriteKey]bool
}

func (f *fakeFavoriteStorage) CreateFavorite(_ context.Context, customerID, shopID uuid.UUID) error {
	if _, ok := f.shops[shopID]; !ok {
		return database.ErrUnknownShop
	}
	key := favoriteKey{customerID, shopID}
	if f.favorites[key] {
		return database.ErrDuplicateFavorite
	}
	f.favorites[key] = true
	return nil
}

func (f *fakeFavoriteStorage) DeleteFavorite(_ context.Context, customerID, shopID uuid.UUID) (bool, error) {
	key := favoriteKey{customerID, shopID}
	if !f.favorites[key] {
		return false, nil
	}
	delete(f.favorites, key)
	return true, nil
}

func (f *fakeFavoriteStorage) FindFavorites(_ context.Context, customerID uuid.UUID) ([]models.Favorite, error) {
	result := []models.Favorite{}
	for key := range f.favorites {
		if key.customerID == customerID {
			result = append(result, models.Favorite{Shop: f.shops[key.shopID]})
		}
	}
	return result, nil
}

func TestFavoriteService(t *testing.T) {
	shop := models.Shop{ID: uuid.New(), Name: "Chai Point"}
	storage := &fakeFavoriteStorage{
		shops:     map[uuid.UUID]models.Shop{shop.ID: shop},
		favorites: map[favoriteKey]bool{},
	}
	service := NewFavoriteService(storage)
	ctx := context.Background()
	customer := uuid.New()

	require.NoError(t, service.AddFavorite(ctx, customer, shop.ID))
	assert.ErrorIs(t, service.AddFavorite(ctx, customer, shop.ID), ErrAlreadyFavorite)
	assert.ErrorIs(t, service.AddFavorite(ctx, customer, uuid.New()), ErrShopNotFound)

	favorites, err := service.ListFavorites(ctx, customer)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Chai Point", favorites[0].Shop.Name)

	require.NoError(t, service.RemoveFavorite(ctx, customer, shop.ID))
	assert.ErrorIs(t, service.RemoveFavorite(ctx, customer, shop.ID), ErrFavoriteNotFound)
}
