package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/shared"
)

// GormImpactFundRepository implements ImpactFundRepository using GORM
type GormImpactFundRepository struct {
	db *gorm.DB
}

// NewGormImpactFundRepository creates a new GormImpactFundRepository
func NewGormImpactFundRepository(db *gorm.DB) *GormImpactFundRepository {
	return &GormImpactFundRepository{db: db}
}

// FindByID finds a ledger entry by ID
func (r *GormImpactFundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ImpactFundEntry, error) {
	var entry finance.ImpactFundEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all ledger entries matching the filter
func (r *GormImpactFundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.ImpactFundEntry, error) {
	var entries []finance.ImpactFundEntry
	query := r.db.WithContext(ctx).Model(&finance.ImpactFundEntry{})

	if entryType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", entryType)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByOrder finds the entries recorded for an order
func (r *GormImpactFundRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.ImpactFundEntry, error) {
	var entries []finance.ImpactFundEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a ledger entry
func (r *GormImpactFundRepository) Save(ctx context.Context, entry *finance.ImpactFundEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Balance sums the amounts of all active entries.
// Expenses are stored negated, so a plain SUM yields the fund balance.
func (r *GormImpactFundRepository) Balance(ctx context.Context) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.ImpactFundEntry{}).
		Where("is_active = ?", true).
		Select("SUM(amount)").
		Scan(&raw).Error; err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

// Ensure GormImpactFundRepository implements ImpactFundRepository
var _ finance.ImpactFundRepository = (*GormImpactFundRepository)(nil)
