package router

import (
	"errors"
	"net/http"

	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorStatuses сопоставляет доменные ошибки кодам ответа. Проверяется по порядку.
var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrValidation, http.StatusBadRequest},

	{services.ErrUserIsAlreadyRegistered, http.StatusConflict},
	{services.ErrUserIsNotExist, http.StatusUnauthorized},
	{services.ErrPasswordIsIncorrect, http.StatusUnauthorized},

	{services.ErrShopNotFound, http.StatusNotFound},
	{services.ErrMenuItemNotFound, http.StatusNotFound},
	{services.ErrOrderNotFound, http.StatusNotFound},
	{services.ErrFavoriteNotFound, http.StatusNotFound},
	{services.ErrNotificationNotFound, http.StatusNotFound},

	{services.ErrShopClosed, http.StatusUnprocessableEntity},
	{services.ErrMenuItemWrongShop, http.StatusUnprocessableEntity},
	{services.ErrMenuItemUnavailable, http.StatusUnprocessableEntity},
	{services.ErrReviewNotAllowed, http.StatusUnprocessableEntity},

	{services.ErrShopAlreadyExists, http.StatusConflict},
	{services.ErrAlreadyFavorite, http.StatusConflict},
	{services.ErrAlreadyReviewed, http.StatusConflict},
	{services.ErrInvalidStatusTransition, http.StatusConflict},
	{services.ErrTokenAllocation, http.StatusConflict},

	{services.ErrForbidden, http.StatusForbidden},
}

// writeError отвечает кодом, соответствующим ошибке. Неизвестные ошибки логируются и отдаются как 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			http.Error(w, err.Error(), e.status)
			return
		}
	}

	logger.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("URI", r.RequestURI),
		zap.Error(err),
	)
	http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// uuidParam читает идентификатор из пути запроса. При ошибке отвечает 400.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, "Некорректный идентификатор", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
