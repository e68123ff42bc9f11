package models

import (
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID         `json:"id"`
	OrderID      uuid.UUID         `json:"orderId"`
	CustomerID   uuid.UUID         `json:"customerId"`
	CustomerName string            `json:"customerName,omitempty"`
	ShopID       uuid.UUID         `json:"shopId"`
	Rating       int               `json:"rating"`
	Comment      string            `json:"comment"`
	CreatedAt    utils.RFC3339Date `json:"createdAt"`
}

type ReviewRequest struct {
	OrderID *string `json:"orderId"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewEligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
