package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/shared"
)

// Service handles impact fund reporting and manual ledger entries
type Service struct {
	impactRepo finance.ImpactFundRepository
	logger     *zap.Logger
}

// NewService creates a new finance Service
func NewService(impactRepo finance.ImpactFundRepository, logger *zap.Logger) *Service {
	return &Service{impactRepo: impactRepo, logger: logger}
}

// FundSummary is the impact fund balance plus its recent ledger
type FundSummary struct {
	Balance decimal.Decimal           `json:"balance"`
	Entries []finance.ImpactFundEntry `json:"entries"`
}

// DonationRequest records a voluntary contribution
type DonationRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// ExpenseRequest records money spent from the fund
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
}

// Summary returns the current balance and the ledger page requested
func (s *Service) Summary(ctx context.Context, filter shared.Filter) (*FundSummary, error) {
	balance, err := s.impactRepo.Balance(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.impactRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &FundSummary{Balance: balance, Entries: entries}, nil
}

// RecordDonation adds a voluntary contribution to the ledger
func (s *Service) RecordDonation(ctx context.Context, req DonationRequest) (*finance.ImpactFundEntry, error) {
	entry, err := finance.NewDonationEntry(req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.impactRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("impact fund donation recorded",
		zap.String("amount", entry.Amount.StringFixed(2)))

	return entry, nil
}

// RecordExpense adds a fund expense to the ledger
func (s *Service) RecordExpense(ctx context.Context, req ExpenseRequest) (*finance.ImpactFundEntry, error) {
	entry, err := finance.NewExpenseEntry(req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.impactRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("impact fund expense recorded",
		zap.String("amount", entry.Amount.StringFixed(2)),
		zap.String("description", req.Description))

	return entry, nil
}

// VoidEntry deactivates a ledger entry so it no longer counts toward
// the balance
func (s *Service) VoidEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.impactRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := entry.Void(); err != nil {
		return err
	}
	return s.impactRepo.Save(ctx, entry)
}
