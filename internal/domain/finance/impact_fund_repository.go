package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/shared"
)

// ImpactFundRepository defines the interface for impact fund persistence
type ImpactFundRepository interface {
	// FindByID finds a ledger entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImpactFundEntry, error)

	// FindAll finds all ledger entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ImpactFundEntry, error)

	// FindByOrder finds the entries recorded for an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ImpactFundEntry, error)

	// Save creates or updates a ledger entry
	Save(ctx context.Context, entry *ImpactFundEntry) error

	// Balance sums the amounts of all active entries
	Balance(ctx context.Context) (decimal.Decimal, error)
}
