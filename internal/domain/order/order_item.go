package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/shared"
	"github.com/helios/backend/internal/domain/shared/valueobject"
)

// CommissionRate is the marketplace share of every line item sale
var CommissionRate = decimal.NewFromFloat(0.15)

// ImpactFundRate is the share of commission set aside for the impact fund
var ImpactFundRate = decimal.NewFromFloat(0.10)

// SellerSnapshot captures the selling vendor at purchase time.
// It is written once when the line item is created and never updated,
// so later changes to the seller profile do not rewrite order history.
type SellerSnapshot struct {
	SellerID     *uuid.UUID `gorm:"type:uuid;index"`
	BusinessName string     `gorm:"type:varchar(200)"`
}

// OrderItem represents a line item on an order
// Unit price and commission are fixed at creation time
type OrderItem struct {
	shared.BaseEntity
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Seller           SellerSnapshot  `gorm:"embedded;embeddedPrefix:seller_"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item, computing the line total and the
// marketplace commission from the quantity and unit price
func NewOrderItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal, seller SellerSnapshot) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Line item must reference a product")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	lineTotal := valueobject.NewMoneyZMW(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	commission := lineTotal.Mul(CommissionRate).RoundCents()

	return &OrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		ProductName:      productName,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		LineTotal:        lineTotal.Amount(),
		CommissionAmount: commission.Amount(),
		Seller:           seller,
	}, nil
}

// ImpactContribution returns this line item's share of the impact fund,
// a fixed fraction of its commission
func (i *OrderItem) ImpactContribution() decimal.Decimal {
	return valueobject.NewMoneyZMW(i.CommissionAmount).Mul(ImpactFundRate).RoundCents().Amount()
}

// SellerEarnings returns what the seller receives for this line item
// after the marketplace commission is deducted
func (i *OrderItem) SellerEarnings() decimal.Decimal {
	return i.LineTotal.Sub(i.CommissionAmount)
}
