package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Renal37/quickserve/internal/logger"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userFieldType определяет тип для ключа, используемого для хранения данных пользователя в контексте.
type userFieldType string

// userField является ключом для хранения информации о пользователе в контексте запроса.
const userField userFieldType = "userField"

// Заголовки для обновления пары токенов
const (
	RefreshTokenHeader    = "x-refresh-token"
	NewAccessTokenHeader  = "x-access-token"
	NewRefreshTokenHeader = "x-refresh-token"
)

// tokenSchemes допустимые схемы заголовка Authorization
var tokenSchemes = []string{"JWT ", "Bearer "}

func bearerToken(header string) string {
	for _, scheme := range tokenSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// AuthMiddleware проверяет access-токен и кладет пользователя в контекст запроса.
// Истекший access-токен обновляется по refresh-токену из заголовка x-refresh-token,
// новая пара возвращается в заголовках x-access-token и x-refresh-token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Извлекаем сервисы аутентификации и JWT из контекста запроса.
		authService := GetServiceFromContext[models.AuthService](w, r, AuthServiceKey)
		if authService == nil {
			return
		}
		jwtService := GetServiceFromContext[models.JWTService](w, r, JwtServiceKey)
		if jwtService == nil {
			return
		}

		// Получаем заголовок Authorization.
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Требуется заголовок Authorization", http.StatusForbidden)
			return
		}

		tokenString := bearerToken(authHeader)
		if tokenString == "" {
			http.Error(w, "Токен пуст", http.StatusForbidden)
			return
		}

		// Валидируем токен с помощью JWT-сервиса.
		claims, err := (*jwtService).ValidateToken(tokenString)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrTokenIsExpired):
			claims, err = refreshTokens(w, r, *jwtService)
			if err != nil {
				http.Error(w, "Токен истёк", http.StatusPaymentRequired)
				return
			}
		case errors.Is(err, services.ErrTokenIsInvalid):
			http.Error(w, "Неверный токен", http.StatusForbidden)
			return
		default:
			http.Error(w, fmt.Sprintf("Произошла ошибка при проверке токена: %s", err.Error()), http.StatusForbidden)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			http.Error(w, "Неверный токен", http.StatusForbidden)
			return
		}

		// Получаем пользователя из базы данных по идентификатору.
		user, err := (*authService).GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserIsNotExist) {
				http.Error(w, "Пользователь не существует", http.StatusForbidden)
				return
			}

			http.Error(w, fmt.Sprintf("Произошла ошибка при проверке пользователя: %s", err.Error()), http.StatusInternalServerError)
			return
		}

		// Добавляем информацию о пользователе в контекст запроса и передаем управление следующему обработчику.
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userField, user)))
	})
}

// refreshTokens выпускает новую пару токенов по refresh-токену запроса
func refreshTokens(w http.ResponseWriter, r *http.Request, jwtService models.JWTService) (*models.Claims, error) {
	refreshToken := r.Header.Get(RefreshTokenHeader)
	if refreshToken == "" {
		return nil, services.ErrTokenIsExpired
	}

	claims, err := jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, services.ErrTokenIsInvalid
	}

	pair, err := jwtService.GenerateTokens(&models.User{ID: userID, Role: claims.Role})
	if err != nil {
		return nil, err
	}

	w.Header().Set(NewAccessTokenHeader, pair.AccessToken)
	w.Header().Set(NewRefreshTokenHeader, pair.RefreshToken)

	logger.Log.Debug("access token refreshed", zap.String("userID", userID.String()))
	return claims, nil
}

// RequireRole пропускает только пользователей с одной из указанных ролей.
// Должен стоять после AuthMiddleware.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(w, r)
			if user == nil {
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "Недостаточно прав", http.StatusForbidden)
		})
	}
}

// GetUserFromContext извлекает информацию о пользователе из контекста запроса.
// В случае ошибки возвращает HTTP 500 и nil.
func GetUserFromContext(w http.ResponseWriter, r *http.Request) *models.User {
	user, ok := r.Context().Value(userField).(*models.User)

	if !ok {
		http.Error(w, "Не удалось получить пользователя из контекста", http.StatusInternalServerError)
		return nil
	}

	return user
}
