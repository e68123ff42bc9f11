package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Endpoint string
}

type Router struct {
	config   Config
	services middlewares.Services
}

func New(config Config, services middlewares.Services) *Router {
	return &Router{config: config, services: services}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middlewares.ServiceInjectorMiddleware(router.services),
		logger.RequestLogger,
	)

	shopkeeper := middlewares.RequireRole(models.RoleShopkeeper)
	customer := middlewares.RequireRole(models.RoleCustomer)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.SignupRequest]).Post("/signup", Signup)
		r.With(middlewares.JSONMiddleware[models.LoginRequest]).Post("/login", Login)
		r.Post("/refresh", RefreshTokens)
		r.With(middlewares.AuthMiddleware).Get("/verify", Verify)
	})

	r.Route("/api/shops", func(r chi.Router) {
		r.Get("/", ListShops)

		r.Route("/mine", func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware, shopkeeper)

			r.With(middlewares.JSONMiddleware[models.ShopRequest]).Post("/", CreateMyShop)
			r.Get("/", GetMyShop)
			r.With(middlewares.JSONMiddleware[models.ShopRequest]).Put("/", UpdateMyShop)
		})

		r.Get("/{slug}", GetShop)
		r.Get("/{slug}/reviews", ListShopReviews)
	})

	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware)

		r.Route("/api/menu", func(r chi.Router) {
			r.Use(shopkeeper)

			r.Get("/", ListMyMenu)
			r.With(middlewares.JSONMiddleware[models.MenuItemRequest]).Post("/", CreateMenuItem)
			r.With(middlewares.JSONMiddleware[models.MenuItemRequest]).Put("/{itemID}", UpdateMenuItem)
			r.Delete("/{itemID}", DeleteMenuItem)
			r.Patch("/{itemID}/availability", ToggleMenuItem)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.With(customer, middlewares.JSONMiddleware[models.PlaceOrderRequest]).Post("/", PlaceOrder)
			r.With(customer).Get("/", ListMyOrders)
			r.With(shopkeeper).Get("/shop", ListShopOrders)
			r.With(customer).Get("/token/{token}", GetOrderByToken)
			r.Get("/{orderID}", GetOrder)
			r.With(customer).Patch("/{orderID}/cancel", CancelOrder)
			r.With(shopkeeper, middlewares.JSONMiddleware[models.StatusUpdateRequest]).Patch("/{orderID}/status", UpdateOrderStatus)
		})

		r.Route("/api/reviews", func(r chi.Router) {
			r.Use(customer)

			r.With(middlewares.JSONMiddleware[models.ReviewRequest]).Post("/", CreateReview)
			r.Get("/eligibility/{orderID}", GetReviewEligibility)
		})

		r.Route("/api/favorites", func(r chi.Router) {
			r.Use(customer)

			r.Get("/", ListFavorites)
			r.Post("/{shopID}", AddFavorite)
			r.Delete("/{shopID}", RemoveFavorite)
		})

		r.Route("/api/notifications", func(r chi.Router) {
			r.Get("/", ListNotifications)
			r.Get("/unread-count", GetUnreadCount)
			r.Patch("/read-all", MarkAllNotificationsRead)
			r.Patch("/{notificationID}/read", MarkNotificationRead)
			r.Delete("/{notificationID}", DeleteNotification)
		})

		r.With(middlewares.RequireRole(models.RoleAdmin)).Post("/api/admin/cleanup", RunCleanup)
	})

	return r
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене ctx
func (router *Router) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              router.config.Endpoint,
		Handler:           router.get(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down http server", zap.String("address", router.config.Endpoint))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
