package models

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_auth.go . AuthService
type AuthService interface {
	Register(ctx context.Context, req SignupRequest) (*User, error)

	Login(ctx context.Context, req LoginRequest) (*User, error)

	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)
}

//go:generate mockgen -destination=mocks/mock_jwt.go . JWTService
type JWTService interface {
	GenerateTokens(user *User) (TokenPair, error)

	ValidateToken(token string) (*Claims, error)

	ValidateRefreshToken(token string) (*Claims, error)
}

//go:generate mockgen -destination=mocks/mock_shop.go . ShopService
type ShopService interface {
	CreateShop(ctx context.Context, ownerID uuid.UUID, req ShopRequest) (*Shop, error)

	GetMyShop(ctx context.Context, ownerID uuid.UUID) (*Shop, error)

	UpdateMyShop(ctx context.Context, ownerID uuid.UUID, req ShopRequest) (*Shop, error)

	ListShops(ctx context.Context, filter ShopFilter) ([]Shop, error)

	GetShopBySlug(ctx context.Context, slug string) (*ShopWithMenu, error)
}

//go:generate mockgen -destination=mocks/mock_menu.go . MenuService
type MenuService interface {
	CreateItem(ctx context.Context, ownerID uuid.UUID, req MenuItemRequest) (*MenuItem, error)

	UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req MenuItemRequest) (*MenuItem, error)

	DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error

	ToggleAvailability(ctx context.Context, ownerID, itemID uuid.UUID) (*MenuItem, error)

	ListMyItems(ctx context.Context, ownerID uuid.UUID) ([]MenuItem, error)
}

//go:generate mockgen -destination=mocks/mock_order.go . OrderService
type OrderService interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, req PlaceOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, user *User, orderID uuid.UUID) (*Order, error)

	GetOrderByToken(ctx context.Context, customerID uuid.UUID, token string) (*Order, error)

	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]Order, error)

	ListShopOrders(ctx context.Context, ownerID uuid.UUID, status *OrderStatus) ([]Order, error)

	UpdateStatus(ctx context.Context, ownerID, orderID uuid.UUID, req StatusUpdateRequest) (*Order, error)

	CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*Order, error)
}

//go:generate mockgen -destination=mocks/mock_review.go . ReviewService
type ReviewService interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, req ReviewRequest) (*Review, error)

	ListShopReviews(ctx context.Context, slug string) ([]Review, error)

	CheckEligibility(ctx context.Context, customerID, orderID uuid.UUID) (ReviewEligibility, error)
}

//go:generate mockgen -destination=mocks/mock_favorite.go . FavoriteService
type FavoriteService interface {
	AddFavorite(ctx context.Context, customerID, shopID uuid.UUID) error

	RemoveFavorite(ctx context.Context, customerID, shopID uuid.UUID) error

	ListFavorites(ctx context.Context, customerID uuid.UUID) ([]Favorite, error)
}

//go:generate mockgen -destination=mocks/mock_notification.go . NotificationService
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]Notification, error)

	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

//go:generate mockgen -destination=mocks/mock_cleanup.go . CleanupService
type CleanupService interface {
	Cleanup(ctx context.Context) (int64, error)
}
