package router

import (
	"errors"
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/services"
	"github.com/google/uuid"
)

// respondWithTokens выпускает пару токенов пользователю и отправляет ее вместе с профилем
func respondWithTokens(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	jwtService := middlewares.GetServiceFromContext[models.JWTService](w, r, middlewares.JwtServiceKey)
	if jwtService == nil {
		return
	}

	pair, err := (*jwtService).GenerateTokens(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, status, models.AuthResponse{User: user, TokenPair: pair})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.SignupRequest](w, r)
	authService := middlewares.GetServiceFromContext[models.AuthService](w, r, middlewares.AuthServiceKey)
	if authService == nil {
		return
	}

	user, err := (*authService).Register(r.Context(), data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithTokens(w, r, user, http.StatusCreated)
}

func Login(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.LoginRequest](w, r)
	authService := middlewares.GetServiceFromContext[models.AuthService](w, r, middlewares.AuthServiceKey)
	if authService == nil {
		return
	}

	user, err := (*authService).Login(r.Context(), data)
	if err != nil {
		if errors.Is(err, services.ErrUserIsNotExist) || errors.Is(err, services.ErrPasswordIsIncorrect) {
			http.Error(w, "Неверный email или пароль", http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	respondWithTokens(w, r, user, http.StatusOK)
}

// Verify возвращает текущего пользователя
func Verify(w http.ResponseWriter, r *http.Request) {
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	middlewares.EncodeJSONResponse(w, user)
}

// RefreshTokens выпускает новую пару токенов по refresh-токену из заголовка x-refresh-token
func RefreshTokens(w http.ResponseWriter, r *http.Request) {
	authService := middlewares.GetServiceFromContext[models.AuthService](w, r, middlewares.AuthServiceKey)
	if authService == nil {
		return
	}
	jwtService := middlewares.GetServiceFromContext[models.JWTService](w, r, middlewares.JwtServiceKey)
	if jwtService == nil {
		return
	}

	refreshToken := r.Header.Get(middlewares.RefreshTokenHeader)
	if refreshToken == "" {
		http.Error(w, "Требуется refresh-токен", http.StatusForbidden)
		return
	}

	claims, err := (*jwtService).ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrTokenIsExpired) {
			http.Error(w, "Refresh-токен истёк", http.StatusPaymentRequired)
			return
		}
		http.Error(w, "Неверный refresh-токен", http.StatusForbidden)
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		http.Error(w, "Неверный refresh-токен", http.StatusForbidden)
		return
	}

	user, err := (*authService).GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserIsNotExist) {
			http.Error(w, "Пользователь не существует", http.StatusForbidden)
			return
		}
		writeError(w, r, err)
		return
	}

	respondWithTokens(w, r, user, http.StatusOK)
}
