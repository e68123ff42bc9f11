package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleShopkeeper Role = "shopkeeper"
	RoleAdmin      Role = "admin"
)

// SignupRequest тело запроса на регистрацию. Поля-указатели позволяют отличить
// отсутствующее поле от пустого.
type SignupRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *Role   `json:"role"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type User struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      Role              `json:"role"`
	Hash      string            `json:"-"`
	CreatedAt utils.RFC3339Date `json:"createdAt"`
}

// TokenPair пара токенов, выдаваемая при входе и обновлении.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	User *User `json:"user"`
	TokenPair
}

// Claims содержимое access и refresh токенов.
type Claims struct {
	Role Role   `json:"role,omitempty"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}
