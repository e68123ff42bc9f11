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

type fakeShopStorage struct {
	shops []models.Shop
	menu  map[uuid.UUID][]models.MenuItem
}

func (f *fakeShopStorage) CreateShop(_ context.Context, shop models.Shop) (*models.Shop, error) {
	for _, s := range f.shops {
		if s.OwnerID == shop.OwnerID {
			return nil, database.ErrDuplicateShop
		}
		if s.Slug == shop.Slug {
			return nil, database.ErrDuplicateSlug
		}
	}
	shop.ID = uuid.New()
	f.shops = append(f.shops, shop)
	return &shop, nil
}

func (f *fakeShopStorage) UpdateShop(_ context.Context, shop models.Shop) (*models.Shop, error) {
	for i := range f.shops {
		if f.shops[i].ID == shop.ID {
			f.shops[i] = shop
			return &shop, nil
		}
	}
	return nil, nil
}

func (f *fakeShopStorage) find(match func(models.Shop) bool) *models.Shop {
	for _, s := range f.shops {
		if match(s) {
			found := s
			return &found
		}
	}
	return nil
}

func (f *fakeShopStorage) FindShopByOwner(_ context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	return f.find(func(s models.Shop) bool { return s.OwnerID == ownerID }), nil
}

func (f *fakeShopStorage) FindShopBySlug(_ context.Context, slug string) (*models.Shop, error) {
	return f.find(func(s models.Shop) bool { return s.Slug == slug }), nil
}

func (f *fakeShopStorage) FindShops(_ context.Context, filter models.ShopFilter) ([]models.Shop, error) {
	result := []models.Shop{}
	for _, s := range f.shops {
		if filter.OpenOnly && !s.IsOpen {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeShopStorage) FindMenuItemsByShop(_ context.Context, shopID uuid.UUID) ([]models.MenuItem, error) {
	return f.menu[shopID], nil
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Chai Point":          "chai-point",
		"  Dosa & Co.  ":      "dosa-co",
		"Café 24/7":           "café-24-7",
		"!!!":                 "shop",
		"Already-Slugged--Up": "already-slugged-up",
	}
	for name, want := range tests {
		assert.Equal(t, want, slugify(name), name)
	}
}

func TestShopServiceCreateShop(t *testing.T) {
	storage := &fakeShopStorage{}
	service := NewShopService(storage)
	ctx := context.Background()
	owner := uuid.New()

	shop, err := service.CreateShop(ctx, owner, models.ShopRequest{Name: ptr("Chai Point"), Cuisine: ptr(" Indian ")})
	require.NoError(t, err)
	assert.Equal(t, "chai-point", shop.Slug)
	assert.Equal(t, "Indian", shop.Cuisine)
	assert.True(t, shop.IsOpen)

	_, err = service.CreateShop(ctx, owner, models.ShopRequest{Name: ptr("Second")})
	assert.ErrorIs(t, err, ErrShopAlreadyExists)

	other, err := service.CreateShop(ctx, uuid.New(), models.ShopRequest{Name: ptr("Chai  Point!")})
	require.NoError(t, err)
	assert.Regexp(t, `^chai-point-[0-9a-f]{4}$`, other.Slug)

	_, err = service.CreateShop(ctx, uuid.New(), models.ShopRequest{Name: ptr(" ")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShopServiceCreateShopAvoidsReservedSlug(t *testing.T) {
	storage := &fakeShopStorage{}
	service := NewShopService(storage)
	ctx := context.Background()

	for _, name := range []string{"Mine", " MINE! "} {
		shop, err := service.CreateShop(ctx, uuid.New(), models.ShopRequest{Name: ptr(name)})
		require.NoError(t, err)
		assert.Regexp(t, `^mine-[0-9a-f]{4}$`, shop.Slug, name)
	}

	shop, err := service.CreateShop(ctx, uuid.New(), models.ShopRequest{Name: ptr("Mine Craft")})
	require.NoError(t, err)
	assert.Equal(t, "mine-craft", shop.Slug)
}

func TestShopServiceUpdateMyShop(t *testing.T) {
	storage := &fakeShopStorage{}
	service := NewShopService(storage)
	ctx := context.Background()
	owner := uuid.New()

	_, err := service.UpdateMyShop(ctx, owner, models.ShopRequest{IsOpen: ptr(false)})
	assert.ErrorIs(t, err, ErrShopNotFound)

	created, err := service.CreateShop(ctx, owner, models.ShopRequest{Name: ptr("Chai Point")})
	require.NoError(t, err)

	updated, err := service.UpdateMyShop(ctx, owner, models.ShopRequest{IsOpen: ptr(false), Phone: ptr("+91 98450 00000")})
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, "+91 98450 00000", updated.Phone)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Slug, updated.Slug)

	_, err = service.UpdateMyShop(ctx, owner, models.ShopRequest{Name: ptr("")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShopServiceGetShopBySlug(t *testing.T) {
	storage := &fakeShopStorage{menu: map[uuid.UUID][]models.MenuItem{}}
	service := NewShopService(storage)
	ctx := context.Background()

	shop, err := service.CreateShop(ctx, uuid.New(), models.ShopRequest{Name: ptr("Chai Point")})
	require.NoError(t, err)
	storage.menu[shop.ID] = []models.MenuItem{{ID: uuid.New(), ShopID: shop.ID, Name: "Masala chai"}}

	found, err := service.GetShopBySlug(ctx, "chai-point")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, found.ID)
	assert.Len(t, found.Menu, 1)

	_, err = service.GetShopBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrShopNotFound)
}
