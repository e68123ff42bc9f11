package models

import (
	"github.com/Renal37/quickserve/internal/utils"
)

// Favorite магазин в избранном покупателя.
type Favorite struct {
	Shop      Shop              `json:"shop"`
	CreatedAt utils.RFC3339Date `json:"createdAt"`
}
