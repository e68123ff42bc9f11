package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
)

type Shop struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     uuid.UUID         `json:"ownerId"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Cuisine     string            `json:"cuisine"`
	ImageURL    string            `json:"imageUrl"`
	IsOpen      bool              `json:"isOpen"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	CreatedAt   utils.RFC3339Date `json:"createdAt"`
	UpdatedAt   utils.RFC3339Date `json:"updatedAt"`
}

// ShopRequest тело запроса на создание или изменение магазина.
// При изменении nil-поля остаются без изменений.
type ShopRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Cuisine     *string `json:"cuisine"`
	ImageURL    *string `json:"imageUrl"`
	IsOpen      *bool   `json:"isOpen"`
}

type ShopFilter struct {
	Query    string
	Cuisine  string
	OpenOnly bool
}

// ShopWithMenu публичное представление магазина вместе с меню.
type ShopWithMenu struct {
	Shop
	Menu []MenuItem `json:"menu"`
}
