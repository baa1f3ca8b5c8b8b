package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/helios/backend/internal/domain/seller"
	"github.com/helios/backend/internal/domain/shared"
)

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	var s seller.Seller
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByUserID finds the seller profile linked to a user account
func (r *GormSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*seller.Seller, error) {
	var s seller.Seller
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds all sellers matching the filter
func (r *GormSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]seller.Seller, error) {
	var sellers []seller.Seller
	query := r.applyFilter(r.db.WithContext(ctx).Model(&seller.Seller{}), filter)

	if err := query.Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

// FindActive finds all approved sellers
func (r *GormSellerRepository) FindActive(ctx context.Context, filter shared.Filter) ([]seller.Seller, error) {
	var sellers []seller.Seller
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&seller.Seller{}).Where("is_active = ?", true),
		filter,
	)

	if err := query.Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// ExistsByUserID checks if the user already has a seller profile
func (r *GormSellerRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&seller.Seller{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormSellerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("business_name ILIKE ? OR city ILIKE ?", searchPattern, searchPattern)
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

	return query
}

// Ensure GormSellerRepository implements SellerRepository
var _ seller.SellerRepository = (*GormSellerRepository)(nil)
