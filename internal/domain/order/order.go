package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that admit no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
// Fulfilment only moves forward; cancellation is allowed from any
// non-terminal state
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid
	case OrderStatusPaid:
		return target == OrderStatusProcessing
	case OrderStatusProcessing:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Order represents a customer order
// It is the aggregate root for checkout and fulfilment operations
type Order struct {
	shared.BaseEntity
	OrderNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID           *uuid.UUID      `gorm:"type:uuid;index"`
	Email            string          `gorm:"type:varchar(255);not null"`
	FullName         string          `gorm:"type:varchar(200);not null"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CommissionTotal  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CancellationNote string          `gorm:"type:text"`
	PaidAt           *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	Items            []OrderItem `gorm:"foreignKey:OrderID"`
	Shipping         *ShippingAddress
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// GenerateOrderNumber produces a human-readable order reference
// in the form ORD-YYYY-NNNNN
func GenerateOrderNumber(year int, sequence int64) string {
	return fmt.Sprintf("ORD-%d-%05d", year, sequence)
}

// NewOrder creates a new pending order
func NewOrder(orderNumber string, userID *uuid.UUID, email, fullName string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Order email cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		Email:           email,
		FullName:        fullName,
		Status:          OrderStatusPending,
		TotalAmount:     decimal.Zero,
		CommissionTotal: decimal.Zero,
	}, nil
}

// AddItem appends a line item and rolls its amounts into the order totals
func (o *Order) AddItem(item *OrderItem) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a pending order")
	}

	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.TotalAmount = o.TotalAmount.Add(item.LineTotal)
	o.CommissionTotal = o.CommissionTotal.Add(item.CommissionAmount)
	o.UpdatedAt = time.Now()

	return nil
}

// SetShippingAddress attaches the delivery address
func (o *Order) SetShippingAddress(addr *ShippingAddress) {
	addr.OrderID = o.ID
	o.Shipping = addr
	o.UpdatedAt = time.Now()
}

// UpdateStatus is the single authoritative state transition for orders.
// It validates the transition and stamps lifecycle timestamps, never
// overwriting a timestamp that is already set.
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	switch target {
	case OrderStatusPaid:
		if o.PaidAt == nil {
			o.PaidAt = &now
		}
	case OrderStatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case OrderStatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	case OrderStatusCancelled:
		if o.CancelledAt == nil {
			o.CancelledAt = &now
		}
	}

	o.Status = target
	o.UpdatedAt = now

	return nil
}

// Cancel cancels the order with an optional note explaining why
func (o *Order) Cancel(note string) error {
	if err := o.UpdateStatus(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancellationNote = note
	return nil
}

// MarkPaid records successful payment and moves the order to paid
func (o *Order) MarkPaid() error {
	return o.UpdateStatus(OrderStatusPaid)
}

// ItemsForSeller returns the line items that belong to the given seller
func (o *Order) ItemsForSeller(sellerID uuid.UUID) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.Seller.SellerID != nil && *item.Seller.SellerID == sellerID {
			items = append(items, item)
		}
	}
	return items
}

// IsOwnedBy returns true if the order was placed by the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// ShippingAddress holds the delivery address captured at checkout
type ShippingAddress struct {
	shared.BaseEntity
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Address1 string    `gorm:"type:varchar(300);not null"`
	Address2 string    `gorm:"type:varchar(300)"`
	City     string    `gorm:"type:varchar(100);not null"`
	Province string    `gorm:"type:varchar(100)"`
	PostCode string    `gorm:"type:varchar(20)"`
	Country  string    `gorm:"type:varchar(100);not null"`
	Phone    string    `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}

// NewShippingAddress creates a delivery address
func NewShippingAddress(address1, city, country string) (*ShippingAddress, error) {
	if address1 == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if country == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Country cannot be empty")
	}

	return &ShippingAddress{
		BaseEntity: shared.NewBaseEntity(),
		Address1:   address1,
		City:       city,
		Country:    country,
	}, nil
}
