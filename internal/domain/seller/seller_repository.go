package seller

import (
	"context"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
)

// SellerRepository defines the interface for seller persistence
type SellerRepository interface {
	// FindByID finds a seller by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)

	// FindByUserID finds the seller profile linked to a user account
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error)

	// FindAll finds all sellers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Seller, error)

	// FindActive finds all approved sellers
	FindActive(ctx context.Context, filter shared.Filter) ([]Seller, error)

	// Save creates or updates a seller
	Save(ctx context.Context, seller *Seller) error

	// ExistsByUserID checks if the user already has a seller profile
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}
