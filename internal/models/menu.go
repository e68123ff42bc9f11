package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uuid.UUID         `json:"id"`
	ShopID      uuid.UUID         `json:"shopId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Category    string            `json:"category"`
	IsAvailable bool              `json:"isAvailable"`
	IsPopular   bool              `json:"isPopular"`
	ImageURL    string            `json:"imageUrl"`
	CreatedAt   utils.RFC3339Date `json:"createdAt"`
	UpdatedAt   utils.RFC3339Date `json:"updatedAt"`
}

type MenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	IsAvailable *bool            `json:"isAvailable"`
	IsPopular   *bool            `json:"isPopular"`
	ImageURL    *string          `json:"imageUrl"`
}
