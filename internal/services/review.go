package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
)

var (
	ErrReviewNotAllowed = errors.New("отзыв можно оставить только на выданный заказ")
	ErrAlreadyReviewed  = errors.New("отзыв на этот заказ уже оставлен")
)

const maxCommentLength = 1000

// ReviewService управляет отзывами на заказы
type ReviewService struct {
	storage  reviewStorage
	notifier orderNotifier
}

type reviewStorage interface {
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindShopByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	FindShopBySlug(ctx context.Context, slug string) (*models.Shop, error)
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	FindReviewsByShop(ctx context.Context, shopID uuid.UUID) ([]models.Review, error)
	HasReview(ctx context.Context, orderID uuid.UUID) (bool, error)
}

func NewReviewService(storage reviewStorage, notifier orderNotifier) *ReviewService {
	return &ReviewService{storage: storage, notifier: notifier}
}

// CreateReview сохраняет отзыв покупателя на его выданный заказ и уведомляет владельца магазина
func (r *ReviewService) CreateReview(ctx context.Context, customerID uuid.UUID, req models.ReviewRequest) (*models.Review, error) {
	if req.OrderID == nil {
		return nil, newValidationError("не указан заказ")
	}
	orderID, err := uuid.Parse(*req.OrderID)
	if err != nil {
		return nil, newValidationError("некорректный идентификатор заказа")
	}
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return nil, newValidationError("оценка должна быть от 1 до 5")
	}

	var comment string
	if req.Comment != nil {
		comment = strings.TrimSpace(*req.Comment)
		if len([]rune(comment)) > maxCommentLength {
			return nil, newValidationError(fmt.Sprintf("отзыв длиннее %d символов", maxCommentLength))
		}
	}

	order, err := r.customerOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusCompleted {
		return nil, ErrReviewNotAllowed
	}

	review, err := r.storage.CreateReview(ctx, models.Review{
		OrderID:    order.ID,
		CustomerID: customerID,
		ShopID:     order.ShopID,
		Rating:     *req.Rating,
		Comment:    comment,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	shop, err := r.storage.FindShopByID(ctx, order.ShopID)
	if err == nil && shop != nil {
		r.notifier.Notify(shop.OwnerID, &order.ID, models.NotificationNewReview,
			"Новый отзыв",
			fmt.Sprintf("Заказ №%s получил оценку %d из 5", order.Token, review.Rating),
		)
	}

	return review, nil
}

// ListShopReviews возвращает отзывы магазина, новые первыми
func (r *ReviewService) ListShopReviews(ctx context.Context, slug string) ([]models.Review, error) {
	shop, err := r.storage.FindShopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return r.storage.FindReviewsByShop(ctx, shop.ID)
}

// CheckEligibility сообщает, может ли покупатель оставить отзыв на заказ, и почему нет
func (r *ReviewService) CheckEligibility(ctx context.Context, customerID, orderID uuid.UUID) (models.ReviewEligibility, error) {
	order, err := r.customerOrder(ctx, customerID, orderID)
	if err != nil {
		return models.ReviewEligibility{}, err
	}

	if order.Status != models.StatusCompleted {
		return models.ReviewEligibility{Reason: ErrReviewNotAllowed.Error()}, nil
	}

	reviewed, err := r.storage.HasReview(ctx, order.ID)
	if err != nil {
		return models.ReviewEligibility{}, err
	}
	if reviewed {
		return models.ReviewEligibility{Reason: ErrAlreadyReviewed.Error()}, nil
	}

	return models.ReviewEligibility{Eligible: true}, nil
}

func (r *ReviewService) customerOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := r.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
