package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/shared"
)

// ImpactEntryType classifies impact fund ledger entries
type ImpactEntryType string

const (
	// ImpactEntryCommission is an automatic allocation from order commission
	ImpactEntryCommission ImpactEntryType = "commission"
	// ImpactEntryDonation is a voluntary contribution
	ImpactEntryDonation ImpactEntryType = "donation"
	// ImpactEntryExpense is money paid out of the fund
	ImpactEntryExpense ImpactEntryType = "expense"
)

// IsValid checks if the entry type is known
func (t ImpactEntryType) IsValid() bool {
	switch t {
	case ImpactEntryCommission, ImpactEntryDonation, ImpactEntryExpense:
		return true
	}
	return false
}

// ImpactFundEntry is one row in the impact fund ledger.
// Contributions carry positive amounts and expenses negative ones,
// so the fund balance is a plain sum over active entries.
type ImpactFundEntry struct {
	shared.BaseEntity
	Type        ImpactEntryType `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(500)"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	UserID      *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ImpactFundEntry) TableName() string {
	return "impact_fund_entries"
}

// NewCommissionEntry records the impact fund allocation from an order.
// The purchasing user is carried when the buyer was authenticated;
// guest checkouts leave it nil.
func NewCommissionEntry(orderID uuid.UUID, userID *uuid.UUID, amount decimal.Decimal, description string) (*ImpactFundEntry, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Commission entry must reference an order")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Commission allocation must be positive")
	}

	return &ImpactFundEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        ImpactEntryCommission,
		Amount:      amount.Round(2),
		Description: description,
		OrderID:     &orderID,
		UserID:      userID,
		IsActive:    true,
	}, nil
}

// NewDonationEntry records a voluntary contribution to the fund
func NewDonationEntry(amount decimal.Decimal, description string) (*ImpactFundEntry, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Donation must be positive")
	}

	return &ImpactFundEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        ImpactEntryDonation,
		Amount:      amount.Round(2),
		Description: description,
		IsActive:    true,
	}, nil
}

// NewExpenseEntry records money spent from the fund.
// The amount is stored negated so balances stay a simple sum.
func NewExpenseEntry(amount decimal.Decimal, description string) (*ImpactFundEntry, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense entries require a description")
	}

	return &ImpactFundEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        ImpactEntryExpense,
		Amount:      amount.Round(2).Neg(),
		Description: description,
		IsActive:    true,
	}, nil
}

// Void deactivates the entry so it no longer counts toward the balance
func (e *ImpactFundEntry) Void() error {
	if !e.IsActive {
		return shared.NewDomainError("ALREADY_VOID", "Entry is already voided")
	}

	e.IsActive = false
	e.UpdatedAt = time.Now()

	return nil
}
