package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order with its items by order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser finds all orders placed by a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByStatus finds all orders in the given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindBySeller finds all orders containing at least one line item
	// belonging to the seller
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// HasSellerItems checks whether an order contains line items
	// belonging to the seller
	HasSellerItems(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error)

	// Save creates or updates an order together with its items and address
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextSequence returns the next order number sequence value
	NextSequence(ctx context.Context) (int64, error)
}
