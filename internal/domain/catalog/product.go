package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/shared"
)

// Product represents a listing in the storefront catalog
// Products may belong to a seller or be house-listed (SellerID nil)
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsSale      bool            `gorm:"not null;default:false"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	SellerID    *uuid.UUID      `gorm:"type:uuid;index"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	IsAvailable bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing
func NewProduct(name, slug string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        slug,
		Price:       price,
		SalePrice:   decimal.Zero,
		IsAvailable: true,
	}, nil
}

// NewSellerProduct creates a new product listing owned by a seller
func NewSellerProduct(sellerID uuid.UUID, name, slug string, price decimal.Decimal) (*Product, error) {
	product, err := NewProduct(name, slug, price)
	if err != nil {
		return nil, err
	}
	product.SellerID = &sellerID
	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// SetPrice updates the regular price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()

	return nil
}

// StartSale puts the product on sale at the given price
func (p *Product) StartSale(salePrice decimal.Decimal) error {
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if salePrice.GreaterThan(p.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot exceed regular price")
	}

	p.IsSale = true
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()

	return nil
}

// EndSale takes the product off sale
func (p *Product) EndSale() {
	p.IsSale = false
	p.SalePrice = decimal.Zero
	p.UpdatedAt = time.Now()
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetImageURL sets the product image
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
}

// SetAvailable toggles whether the product can be purchased
func (p *Product) SetAvailable(available bool) {
	p.IsAvailable = available
	p.UpdatedAt = time.Now()
}

// EffectivePrice returns the price a buyer pays right now,
// applying the sale price when the product is on sale
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.IsSale {
		return p.SalePrice
	}
	return p.Price
}

// IsOwnedBy returns true if the product belongs to the given seller
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID != nil && *p.SellerID == sellerID
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateSlug validates the URL slug
func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 220 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 220 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}
