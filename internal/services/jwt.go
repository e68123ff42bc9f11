package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Определяем пользовательские ошибки для обработки JWT.
var (
	ErrTokenIsInvalid = errors.New("токен недействителен")
	ErrTokenIsExpired = errors.New("токен истёк")
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// JWTService представляет сервис для работы с JWT токенами.
type JWTService struct {
	authSecretKey string // Секретный ключ, используемый для подписи и валидации токенов
	now           func() time.Time
}

// NewJWTService создает новый экземпляр JWTService с заданным секретным ключом.
func NewJWTService(authSecretKey string) *JWTService {
	return &JWTService{authSecretKey: authSecretKey, now: time.Now}
}

// GenerateTokens выпускает пару токенов: короткоживущий access и refresh на 7 дней.
func (j *JWTService) GenerateTokens(user *models.User) (models.TokenPair, error) {
	now := j.now()

	access, err := j.sign(models.Claims{
		Role: user.Role,
		Type: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := j.sign(models.Claims{
		Type: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
		},
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *JWTService) sign(claims models.Claims) (string, error) {
	// Создаем токен с подписью HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Подписываем токен секретным ключом
	tokenString, err := token.SignedString([]byte(j.authSecretKey))
	if err != nil {
		return "", fmt.Errorf("error while generating token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken проверяет валидность и срок действия access токена.
func (j *JWTService) ValidateToken(tokenString string) (*models.Claims, error) {
	return j.validate(tokenString, accessTokenType)
}

// ValidateRefreshToken проверяет refresh токен.
func (j *JWTService) ValidateRefreshToken(tokenString string) (*models.Claims, error) {
	return j.validate(tokenString, refreshTokenType)
}

func (j *JWTService) validate(tokenString, tokenType string) (*models.Claims, error) {
	claims := &models.Claims{}

	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Проверяем, что метод подписи является HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.authSecretKey), nil
	}, jwt.WithTimeFunc(j.now))

	// Обрабатываем возможные ошибки валидации токена
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenIsExpired
		}

		return nil, fmt.Errorf("%w: %s", ErrTokenIsInvalid, err.Error())
	}

	if !parsedToken.Valid || claims.Type != tokenType || claims.Subject == "" {
		return nil, ErrTokenIsInvalid
	}

	return claims, nil
}
