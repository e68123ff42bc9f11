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

type fakeReviewStorage struct {
	orders  map[uuid.UUID]models.Order
	shop    models.Shop
	reviews []models.Review
}

func (f *fakeReviewStorage) FindOrder(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *fakeReviewStorage) FindShopByID(_ context.Context, shopID uuid.UUID) (*models.Shop, error) {
	if shopID != f.shop.ID {
		return nil, nil
	}
	return &f.shop, nil
}

func (f *fakeReviewStorage) FindShopBySlug(_ context.Context, slug string) (*models.Shop, error) {
	if slug != f.shop.Slug {
		return nil, nil
	}
	return &f.shop, nil
}

func (f *fakeReviewStorage) CreateReview(_ context.Context, review models.Review) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.OrderID == review.OrderID {
			return nil, database.ErrDuplicateReview
		}
	}
	review.ID = uuid.New()
	f.reviews = append(f.reviews, review)
	return &review, nil
}

func (f *fakeReviewStorage) FindReviewsByShop(_ context.Context, shopID uuid.UUID) ([]models.Review, error) {
	result := []models.Review{}
	for _, r := range f.reviews {
		if r.ShopID == shopID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReviewStorage) HasReview(_ context.Context, orderID uuid.UUID) (bool, error) {
	for _, r := range f.reviews {
		if r.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func TestReviewServiceCreateReview(t *testing.T) {
	owner, customer := uuid.New(), uuid.New()
	shop := models.Shop{ID: uuid.New(), OwnerID: owner, Slug: "chai-point"}
	completed := models.Order{ID: uuid.New(), CustomerID: customer, ShopID: shop.ID, Status: models.StatusCompleted, Token: "20251227001"}
	pending := models.Order{ID: uuid.New(), CustomerID: customer, ShopID: shop.ID, Status: models.StatusPending}

	storage := &fakeReviewStorage{
		orders: map[uuid.UUID]models.Order{completed.ID: completed, pending.ID: pending},
		shop:   shop,
	}
	notifier := &fakeNotifier{}
	service := NewReviewService(storage, notifier)
	ctx := context.Background()

	eligibility, err := service.CheckEligibility(ctx, customer, completed.ID)
	require.NoError(t, err)
	assert.True(t, eligibility.Eligible)

	review, err := service.CreateReview(ctx, customer, models.ReviewRequest{
		OrderID: ptr(completed.ID.String()),
		Rating:  ptr(5),
		Comment: ptr(" Great chai "),
	})
	require.NoError(t, err)
	assert.Equal(t, shop.ID, review.ShopID)
	assert.Equal(t, "Great chai", review.Comment)
	assert.Equal(t, []models.NotificationKind{models.NotificationNewReview}, notifier.kinds())
	assert.Equal(t, owner, notifier.sent[0].userID)

	_, err = service.CreateReview(ctx, customer, models.ReviewRequest{OrderID: ptr(completed.ID.String()), Rating: ptr(4)})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	eligibility, err = service.CheckEligibility(ctx, customer, completed.ID)
	require.NoError(t, err)
	assert.False(t, eligibility.Eligible)
	assert.Equal(t, ErrAlreadyReviewed.Error(), eligibility.Reason)

	reviews, err := service.ListShopReviews(ctx, "chai-point")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = service.ListShopReviews(ctx, "unknown")
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestReviewServiceRejections(t *testing.T) {
	customer := uuid.New()
	shop := models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	pending := models.Order{ID: uuid.New(), CustomerID: customer, ShopID: shop.ID, Status: models.StatusPending}
	storage := &fakeReviewStorage{orders: map[uuid.UUID]models.Order{pending.ID: pending}, shop: shop}
	service := NewReviewService(storage, &fakeNotifier{})
	ctx := context.Background()

	tests := []struct {
		name     string
		customer uuid.UUID
		req      models.ReviewRequest
		wantErr  error
	}{
		{name: "not completed", customer: customer, req: models.ReviewRequest{OrderID: ptr(pending.ID.String()), Rating: ptr(5)}, wantErr: ErrReviewNotAllowed},
		{name: "foreign order", customer: uuid.New(), req: models.ReviewRequest{OrderID: ptr(pending.ID.String()), Rating: ptr(5)}, wantErr: ErrOrderNotFound},
		{name: "rating too high", customer: customer, req: models.ReviewRequest{OrderID: ptr(pending.ID.String()), Rating: ptr(6)}, wantErr: ErrValidation},
		{name: "rating missing", customer: customer, req: models.ReviewRequest{OrderID: ptr(pending.ID.String())}, wantErr: ErrValidation},
		{name: "bad order id", customer: customer, req: models.ReviewRequest{OrderID: ptr("42"), Rating: ptr(3)}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateReview(ctx, tt.customer, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	eligibility, err := service.CheckEligibility(ctx, customer, pending.ID)
	require.NoError(t, err)
	assert.False(t, eligibility.Eligible)
	assert.Equal(t, ErrReviewNotAllowed.Error(), eligibility.Reason)

	_, err = service.CheckEligibility(ctx, uuid.New(), pending.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
