package seller

import (
	"time"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
)

// Seller represents a vendor profile attached to a user account
// New sellers start inactive and must be approved by an admin
// before their products can be sold
type Seller struct {
	shared.BaseEntity
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName    string    `gorm:"type:varchar(200);not null"`
	Description     string    `gorm:"type:text"`
	Phone           string    `gorm:"type:varchar(30)"`
	Address         string    `gorm:"type:varchar(500)"`
	City            string    `gorm:"type:varchar(100)"`
	Country         string    `gorm:"type:varchar(100)"`
	BankName        string    `gorm:"type:varchar(100)"`
	BankAccountName string    `gorm:"type:varchar(200)"`
	BankAccountNo   string    `gorm:"type:varchar(50)"`
	BankBranchCode  string    `gorm:"type:varchar(50)"`
	IsActive        bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}

// NewSeller creates a new seller profile pending admin approval
func NewSeller(userID uuid.UUID, businessName string) (*Seller, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Seller must be linked to a user account")
	}
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}

	return &Seller{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		BusinessName: businessName,
		IsActive:     false,
	}, nil
}

// UpdateProfile updates the seller's business details
func (s *Seller) UpdateProfile(businessName, description, phone, address, city, country string) error {
	if err := validateBusinessName(businessName); err != nil {
		return err
	}

	s.BusinessName = businessName
	s.Description = description
	s.Phone = phone
	s.Address = address
	s.City = city
	s.Country = country
	s.UpdatedAt = time.Now()

	return nil
}

// UpdateBankDetails updates the payout account details
func (s *Seller) UpdateBankDetails(bankName, accountName, accountNo, branchCode string) {
	s.BankName = bankName
	s.BankAccountName = accountName
	s.BankAccountNo = accountNo
	s.BankBranchCode = branchCode
	s.UpdatedAt = time.Now()
}

// Activate approves the seller for trading
func (s *Seller) Activate() error {
	if s.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Seller is already active")
	}

	s.IsActive = true
	s.UpdatedAt = time.Now()

	return nil
}

// Deactivate suspends the seller
func (s *Seller) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Seller is already inactive")
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()

	return nil
}

// validateBusinessName validates the business name
func validateBusinessName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
