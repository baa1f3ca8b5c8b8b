package cart

import (
	"context"

	"github.com/google/uuid"
)

// Line is one product entry in a session cart
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the contents of one shopping session.
// Prices are never stored here; they are resolved against the live
// catalog whenever the cart is displayed or checked out.
type Cart struct {
	Lines []Line `json:"lines"`
}

// IsEmpty returns true if the cart holds no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity returns the total number of units across all lines
func (c Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Quantity returns the quantity for a product, zero if absent
func (c Cart) Quantity(productID uuid.UUID) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// StagedShipping is the delivery address captured during checkout,
// held in the session until the order is placed
type StagedShipping struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	PostCode string `json:"post_code"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// Store defines session-scoped cart persistence.
// Add is a no-op when the product is already in the cart; Update
// overwrites the quantity unconditionally.
type Store interface {
	// Get returns the cart for a session, empty if none exists
	Get(ctx context.Context, sessionID string) (Cart, error)

	// Add inserts a product line if absent, reporting whether it was added
	Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (bool, error)

	// Update overwrites the quantity of a product line
	Update(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error

	// Remove deletes a product line
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) error

	// Clear empties the session cart
	Clear(ctx context.Context, sessionID string) error

	// SetShipping stages the checkout delivery details in the session
	SetShipping(ctx context.Context, sessionID string, shipping StagedShipping) error

	// GetShipping returns the staged delivery details, nil if none staged
	GetShipping(ctx context.Context, sessionID string) (*StagedShipping, error)

	// ClearShipping discards the staged delivery details
	ClearShipping(ctx context.Context, sessionID string) error
}
