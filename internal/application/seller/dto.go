package seller

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/seller"
)

// SignupRequest opens a seller profile for the authenticated user
type SignupRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	Phone        string `json:"phone" binding:"max=30"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	Country      string `json:"country" binding:"max=100"`
}

// UpdateProfileRequest updates the seller's business details
type UpdateProfileRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	Phone        string `json:"phone" binding:"max=30"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	Country      string `json:"country" binding:"max=100"`
}

// UpdateBankRequest updates the seller's payout details
type UpdateBankRequest struct {
	BankName        string `json:"bank_name" binding:"required,max=100"`
	BankAccountName string `json:"bank_account_name" binding:"required,max=200"`
	BankAccountNo   string `json:"bank_account_no" binding:"required,max=50"`
	BankBranchCode  string `json:"bank_branch_code" binding:"max=50"`
}

// CreateProductRequest lists a new product for the seller
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	ImageURL    string          `json:"image_url" binding:"max=500"`
}

// UpdateProductRequest edits one of the seller's listings
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ImageURL    string           `json:"image_url" binding:"max=500"`
	IsAvailable *bool            `json:"is_available"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
}

// Profile is the seller profile as returned to clients
type Profile struct {
	SellerID     uuid.UUID `json:"seller_id"`
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Description  string    `json:"description,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	IsActive     bool      `json:"is_active"`
	JoinedAt     time.Time `json:"joined_at"`
}

// ProductView is one of the seller's listings
type ProductView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	IsSale      bool            `json:"is_sale"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	IsAvailable bool            `json:"is_available"`
	ImageURL    string          `json:"image_url,omitempty"`
}

func toProfile(s *seller.Seller) *Profile {
	return &Profile{
		SellerID:     s.ID,
		UserID:       s.UserID,
		BusinessName: s.BusinessName,
		Description:  s.Description,
		Phone:        s.Phone,
		Address:      s.Address,
		City:         s.City,
		Country:      s.Country,
		IsActive:     s.IsActive,
		JoinedAt:     s.CreatedAt,
	}
}

func toProductView(p *catalog.Product) ProductView {
	return ProductView{
		ProductID:   p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price,
		IsSale:      p.IsSale,
		SalePrice:   p.SalePrice,
		IsAvailable: p.IsAvailable,
		ImageURL:    p.ImageURL,
	}
}
