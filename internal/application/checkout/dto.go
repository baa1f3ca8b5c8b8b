package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingRequest is the delivery details captured before placing an order
type ShippingRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Address1 string `json:"address1" binding:"required,min=1,max=300"`
	Address2 string `json:"address2" binding:"max=300"`
	City     string `json:"city" binding:"required,min=1,max=100"`
	Province string `json:"province" binding:"max=100"`
	PostCode string `json:"post_code" binding:"max=20"`
	Country  string `json:"country" binding:"required,min=1,max=100"`
	Phone    string `json:"phone" binding:"max=30"`
}

// PlacedItem is one line of the order confirmation
type PlacedItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Result is the order confirmation returned after checkout
type Result struct {
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ImpactAmount decimal.Decimal `json:"impact_amount"`
	Items        []PlacedItem    `json:"items"`
	PlacedAt     time.Time       `json:"placed_at"`
}
