package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/quickserve/internal/models"
)

type key int

const (
	AuthServiceKey key = iota
	JwtServiceKey
	ShopServiceKey
	MenuServiceKey
	OrderServiceKey
	ReviewServiceKey
	FavoriteServiceKey
	NotificationServiceKey
	CleanupServiceKey
)

// Services набор сервисов, доступных обработчикам через контекст запроса.
// Незаданные сервисы в контекст не попадают.
type Services struct {
	Auth         models.AuthService
	JWT          models.JWTService
	Shop         models.ShopService
	Menu         models.MenuService
	Order        models.OrderService
	Review       models.ReviewService
	Favorite     models.FavoriteService
	Notification models.NotificationService
	Cleanup      models.CleanupService
}

func (s Services) values() map[key]interface{} {
	values := map[key]interface{}{}
	add := func(k key, service interface{}, isSet bool) {
		if isSet {
			values[k] = service
		}
	}

	add(AuthServiceKey, s.Auth, s.Auth != nil)
	add(JwtServiceKey, s.JWT, s.JWT != nil)
	add(ShopServiceKey, s.Shop, s.Shop != nil)
	add(MenuServiceKey, s.Menu, s.Menu != nil)
	add(OrderServiceKey, s.Order, s.Order != nil)
	add(ReviewServiceKey, s.Review, s.Review != nil)
	add(FavoriteServiceKey, s.Favorite, s.Favorite != nil)
	add(NotificationServiceKey, s.Notification, s.Notification != nil)
	add(CleanupServiceKey, s.Cleanup, s.Cleanup != nil)

	return values
}

func ServiceInjectorMiddleware(services Services) func(http.Handler) http.Handler {
	values := services.values()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for k, service := range values {
				ctx = context.WithValue(ctx, k, service)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetServiceFromContext достает сервис из контекста. Если сервиса нет, отвечает 500 и возвращает nil.
func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Сервис не найден в контексте по ключу %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}
