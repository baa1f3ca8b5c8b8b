package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemView is one cart line resolved against the live catalog
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Slug        string          `json:"slug"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	OnSale      bool            `json:"on_sale"`
}

// View is the full cart as shown to the buyer
type View struct {
	Items         []ItemView      `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
