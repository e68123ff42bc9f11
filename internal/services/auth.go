package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Определение пользовательских ошибок
var (
	ErrUserIsAlreadyRegistered = errors.New("пользователь уже зарегистрирован")
	ErrUserIsNotExist          = errors.New("пользователь не существует")
	ErrPasswordIsIncorrect     = errors.New("пароль неверен")
)

const minPasswordLength = 6

// AuthService представляет сервис для аутентификации и управления пользователями
type AuthService struct {
	storage AuthStorage
}

// AuthStorage определяет интерфейс для взаимодействия с хранилищем данных пользователей
type AuthStorage interface {
	CreateUser(ctx context.Context, user database.UserDB) (*database.UserDB, error) // Создание нового пользователя
	FindUserByEmail(ctx context.Context, email string) (*database.UserDB, error)    // Поиск пользователя по email
	FindUserByID(ctx context.Context, userID uuid.UUID) (*database.UserDB, error)   // Поиск пользователя по идентификатору
}

// NewAuthService создает новый экземпляр AuthService с заданным хранилищем
func NewAuthService(storage AuthStorage) *AuthService {
	return &AuthService{storage: storage}
}

// Register регистрирует нового пользователя
func (auth *AuthService) Register(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	// Проверка валидности входных данных
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	role := models.RoleCustomer
	if req.Role != nil {
		role = *req.Role
	}

	// Хэширование пароля
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хэшировании пароля: %w", err)
	}

	// Создание пользователя в хранилище
	created, err := auth.storage.CreateUser(ctx, database.UserDB{
		User: models.User{
			Name:  strings.TrimSpace(*req.Name),
			Email: normalizeEmail(*req.Email),
			Role:  role,
			Hash:  string(hashedPassword),
		},
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return nil, ErrUserIsAlreadyRegistered
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return &created.User, nil
}

// Login выполняет аутентификацию пользователя
func (auth *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Email == nil || *req.Email == "" || req.Password == nil || *req.Password == "" {
		return nil, newValidationError("email и пароль обязательны")
	}

	// Поиск пользователя по email
	u, err := auth.storage.FindUserByEmail(ctx, normalizeEmail(*req.Email))
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if u == nil {
		return nil, ErrUserIsNotExist
	}

	// Сравнение пароля
	if err := bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(*req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrPasswordIsIncorrect
		}
		return nil, fmt.Errorf("ошибка при сравнении паролей: %w", err)
	}

	return &u.User, nil
}

// GetUser возвращает информацию о пользователе по идентификатору
func (auth *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := auth.storage.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	if user == nil {
		return nil, ErrUserIsNotExist
	}

	return &user.User, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateSignup проверяет валидность входных данных пользователя
func validateSignup(req models.SignupRequest) error {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return newValidationError("имя не может быть пустым")
	}
	if req.Email == nil || *req.Email == "" {
		return newValidationError("email не может быть пустым")
	}
	if _, err := mail.ParseAddress(*req.Email); err != nil {
		return newValidationError("email некорректен")
	}
	if req.Password == nil || len(*req.Password) < minPasswordLength {
		return newValidationError(fmt.Sprintf("пароль должен содержать не менее %d символов", minPasswordLength))
	}
	// Администраторы не регистрируются через публичный API
	if req.Role != nil && *req.Role != models.RoleCustomer && *req.Role != models.RoleShopkeeper {
		return newValidationError(fmt.Sprintf("недопустимая роль: %s", *req.Role))
	}
	return nil
}
